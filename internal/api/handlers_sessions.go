package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Preetham2702/ClauseBot/internal/agent"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	s.manager.Get(id)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"session_id": id})
}

type askRequest struct {
	Question     string `json:"question"`
	DocumentText string `json:"document_text,omitempty"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid_input", "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	session := s.manager.Get(sessionID)
	answer, err := session.Ask(r.Context(), req.Question, req.DocumentText)
	if err != nil {
		writeAgentError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"answer": answer})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	session := s.manager.Get(sessionID)

	turns := session.History()
	if turns == nil {
		turns = []agent.Turn{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"session_id": sessionID,
		"turns":      turns,
	})
}

type analyzeRequest struct {
	DocumentText string `json:"document_text"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid_input", "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	session := s.manager.Get(sessionID)
	result, err := session.Analyze(r.Context(), req.DocumentText)
	if err != nil {
		writeAgentError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func writeAgentError(w http.ResponseWriter, err error) {
	var invalidErr *agent.InvalidInputError
	if errors.As(err, &invalidErr) {
		jsonError(w, "invalid_input", invalidErr.Reason, http.StatusBadRequest)
		return
	}
	var backendErr *agent.BackendUnavailableError
	if errors.As(err, &backendErr) {
		jsonError(w, "backend_unavailable", backendErr.Error(), http.StatusBadGateway)
		return
	}
	jsonError(w, "internal", err.Error(), http.StatusInternalServerError)
}

func jsonError(w http.ResponseWriter, kind, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error_kind": kind,
		"message":    msg,
	})
}
