package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/docqa/internal/inference"
)

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.client == nil || s.client.Stats == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"models": map[inference.Task]string{
			inference.TaskGeneration:    s.client.Model(inference.TaskGeneration),
			inference.TaskSummarization: s.client.Model(inference.TaskSummarization),
		},
		"mode":     s.sessions.Mode(),
		"sessions": s.sessions.Sessions(),
		"stats":    s.client.Stats.Snapshot(),
	})
}
