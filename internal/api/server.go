package api

import (
	"log/slog"
	"net/http"

	"github.com/Preetham2702/ClauseBot/internal/agent"
	"github.com/Preetham2702/ClauseBot/internal/config"
	"github.com/Preetham2702/ClauseBot/internal/llm"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server is the HTTP API server for clausebot.
type Server struct {
	router  chi.Router
	manager *agent.Manager
	groq    *llm.Client
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(manager *agent.Manager, groq *llm.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		manager: manager,
		groq:    groq,
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// API endpoints; bearer auth only when a key is configured.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/sessions", s.handleCreateSession)
		r.Post("/api/sessions/{sessionID}/ask", s.handleAsk)
		r.Get("/api/sessions/{sessionID}/history", s.handleHistory)
		r.Post("/api/sessions/{sessionID}/analyze", s.handleAnalyze)

		r.Post("/api/analyze-lease", s.handleAnalyzeLease)

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
