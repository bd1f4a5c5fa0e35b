package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wooplugin/gswc/internal/feed"
)

type FeedToggleHandler struct {
	Generator *feed.Generator
}

func (h FeedToggleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid_body",
			"message": "expected {\"enabled\": true|false}",
		})
		return
	}

	if err := h.Generator.SetEnabled(r.Context(), *req.Enabled); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "toggle_failed",
			"message": err.Error(),
		})
		return
	}

	message := "Feed disabled and removed."
	if *req.Enabled {
		message = "Feed enabled."
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"enabled": *req.Enabled,
		"message": message,
	})
}
