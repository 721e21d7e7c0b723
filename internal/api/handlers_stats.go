package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.groq == nil || s.groq.Stats == nil {
		jsonError(w, "internal", "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model": s.groq.Model(),
		"stats": s.groq.Stats.Snapshot(),
	})
}
