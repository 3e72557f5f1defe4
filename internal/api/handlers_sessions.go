package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docqa/internal/answer"
	"github.com/dgallion1/docqa/internal/document"
	"github.com/dgallion1/docqa/internal/inference"
	"github.com/dgallion1/docqa/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
)

type partResponse struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

type askResponse struct {
	Answer      string         `json:"answer"`
	AnswerHTML  string         `json:"answer_html"`
	Mode        answer.Mode    `json:"mode"`
	Summary     string         `json:"summary,omitempty"`
	SummaryHTML string         `json:"summary_html,omitempty"`
	Parts       []partResponse `json:"parts"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if _, err := document.KindForFile(filename); err != nil {
		writeServiceError(w, err)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}

	sess, err := s.sessions.Open(r.Context(), filename, data)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	snap := sess.Snapshot()
	resp := map[string]any{
		"session_id": snap.ID,
		"doc_id":     snap.DocID,
		"filename":   snap.Filename,
		"kind":       snap.Kind,
		"words":      snap.Words,
		"chunks":     snap.Chunks,
		"message":    fmt.Sprintf("%s processed, ask a question", snap.Filename),
	}
	if snap.Summary != "" {
		resp["summary"] = snap.Summary
		resp["summary_html"] = renderMarkdown(snap.Summary)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sess.Snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Close(chi.URLParam(r, "sessionID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 64<<10)).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}

	ans, err := s.sessions.Ask(r.Context(), chi.URLParam(r, "sessionID"), req.Question)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	text := ans.Text()
	resp := askResponse{
		Answer:     text,
		AnswerHTML: renderMarkdown(text),
		Mode:       ans.Mode,
		Parts:      make([]partResponse, 0, len(ans.Parts)),
	}
	if ans.Summary != nil {
		resp.Summary = ans.Summary.Render()
		resp.SummaryHTML = renderMarkdown(resp.Summary)
	}
	for _, p := range ans.Parts {
		pr := partResponse{Index: p.Index, Text: p.Render()}
		if p.Err != nil {
			pr.Error = p.Err.Error()
		}
		resp.Parts = append(resp.Parts, pr)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// writeServiceError maps session and inference errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		ufe *document.UnsupportedFormatError
		pe  *document.ParseError
		tle *session.TooLargeError
		te  *inference.TransportError
	)
	switch {
	case errors.As(err, &ufe):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, session.ErrEmptyQuestion):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, session.ErrSessionNotFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &tle):
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.As(err, &pe):
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &te):
		jsonError(w, "inference unavailable: "+err.Error(), http.StatusBadGateway)
	default:
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

// renderMarkdown converts model output to HTML. Raw HTML in the input is
// not passed through.
func renderMarkdown(src string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return ""
	}
	return buf.String()
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
