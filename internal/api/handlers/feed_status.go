package handlers

import (
	"net/http"

	"github.com/wooplugin/gswc/internal/feed"
)

type FeedStatusHandler struct {
	Generator *feed.Generator
}

func (h FeedStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	st, err := h.Generator.Status(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "status_failed",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, st)
}
