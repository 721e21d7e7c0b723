package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Preetham2702/ClauseBot/internal/annotate"
	"github.com/Preetham2702/ClauseBot/internal/docparse"
	"github.com/google/uuid"
)

// handleAnalyzeLease accepts a lease upload, extracts its text and returns
// the structured analysis together with per-page text and highlight tags.
func (s *Server) handleAnalyzeLease(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid_input", "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "invalid_input", "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !docparse.IsSupportedExtension(filename) {
		jsonError(w, "invalid_input", fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "internal", "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, "invalid_input", fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	p, err := docparse.ForFile(filename)
	if err != nil {
		jsonError(w, "invalid_input", err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Error("document parse failed", "filename", filename, "error", err)
		jsonError(w, "invalid_input", "could not parse document: "+err.Error(), http.StatusBadRequest)
		return
	}

	text := doc.Text()
	if strings.TrimSpace(text) == "" {
		jsonError(w, "invalid_input", "could not extract text from the document", http.StatusBadRequest)
		return
	}

	// The analysis is independent of any running conversation; reuse the
	// caller's session when supplied so its serialization applies.
	sessionID := r.FormValue("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	session := s.manager.Get(sessionID)

	result, err := session.Analyze(r.Context(), text)
	if err != nil {
		writeAgentError(w, err)
		return
	}

	annotations := annotate.Attribute(doc.Pages, result)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"session_id":       sessionID,
		"summary":          result.Summary,
		"pros":             result.Pros,
		"cons":             result.Cons,
		"important_points": result.ImportantPoints,
		"parse_failed":     result.ParseFailed,
		"pages":            doc.Pages,
		"annotations":      annotations,
	})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
