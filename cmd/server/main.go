package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Preetham2702/ClauseBot/internal/agent"
	"github.com/Preetham2702/ClauseBot/internal/api"
	"github.com/Preetham2702/ClauseBot/internal/config"
	"github.com/Preetham2702/ClauseBot/internal/llm"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the inference backend.
	groq := llm.NewClient(cfg.GroqAPIKey, cfg.GroqModel, cfg.GroqBaseURL)

	// Initialize the session manager.
	promptCfg := agent.PromptConfig{
		MaxDocumentChars: cfg.MaxDocumentChars,
		MaxHistoryTokens: cfg.MaxPromptTokens,
	}
	manager := agent.NewManager(groq, promptCfg, cfg.InferenceTimeout, cfg.SessionTTL, log)
	manager.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(manager, groq, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		manager.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		groq.Close()
	}()

	log.Info("starting clausebot", "port", cfg.Port, "model", cfg.GroqModel)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
