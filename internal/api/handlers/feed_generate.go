package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/wooplugin/gswc/internal/feed"
)

type FeedGenerateHandler struct {
	Generator *feed.Generator
}

func (h FeedGenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	res, err := h.Generator.Generate(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, feed.ErrFeedDisabled):
			writeJSON(w, http.StatusConflict, map[string]any{
				"error":   "feed_disabled",
				"message": "Feed is disabled.",
			})
		case errors.Is(err, feed.ErrWriteFailed):
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":   "write_error",
				"message": "Failed to write feed file.",
			})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":   "generate_failed",
				"message": err.Error(),
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Feed generated with %d products.", res.Count),
		"count":   res.Count,
		"url":     res.URL,
	})
}
