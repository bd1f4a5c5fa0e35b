package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wooplugin/gswc/internal/settings"
)

// SettingsHandler serves /v1/settings: the whole feed configuration surface
// as definition + current value pairs.
type SettingsHandler struct {
	Store settings.Store
}

type settingView struct {
	Key     string        `json:"key"`
	Kind    settings.Kind `json:"kind"`
	Value   string        `json:"value"`
	Default string        `json:"default"`
	Options []string      `json:"options,omitempty"`
}

func (h SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.put(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	out := make([]settingView, 0, len(settings.Definitions))
	for _, def := range settings.Definitions {
		value, err := settings.GetDefault(r.Context(), h.Store, def.Key)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":   "read_settings_failed",
				"message": err.Error(),
			})
			return
		}
		out = append(out, settingView{
			Key:     def.Key,
			Kind:    def.Kind,
			Value:   value,
			Default: def.Default,
			Options: def.Options,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"settings": out,
	})
}

func (h SettingsHandler) put(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Settings map[string]string `json:"settings"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Settings) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid_body",
			"message": "expected {\"settings\": {\"feed_limit\": \"100\"}}",
		})
		return
	}

	// Validate everything before writing anything.
	for key, value := range req.Settings {
		if err := settings.Validate(key, value); err != nil {
			code := "invalid_setting"
			if errors.Is(err, settings.ErrUnknownKey) {
				code = "unknown_setting"
			}
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":   code,
				"message": err.Error(),
			})
			return
		}
	}

	for key, value := range req.Settings {
		if err := h.Store.Set(r.Context(), key, value); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":   "write_settings_failed",
				"message": err.Error(),
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"updated": len(req.Settings),
	})
}
