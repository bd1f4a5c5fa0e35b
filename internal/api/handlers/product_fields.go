package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/wooplugin/gswc/internal/fields"
)

// ProductFieldsHandler serves /v1/products/{id}/fields: the Google Shopping
// attribute set of one product, readable and writable field by field.
type ProductFieldsHandler struct {
	Resolver fields.Resolver
	Meta     fields.MetaStore
}

func (h ProductFieldsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductFieldsPath(r.URL.Path)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "not_found",
			"message": "not found",
		})
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, productID)
	case http.MethodPut:
		h.put(w, r, productID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h ProductFieldsHandler) get(w http.ResponseWriter, r *http.Request, productID uint64) {
	values, err := h.Resolver.AllFields(r.Context(), productID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "read_fields_failed",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"product_id": productID,
		"fields":     values,
	})
}

func (h ProductFieldsHandler) put(w http.ResponseWriter, r *http.Request, productID uint64) {
	var req struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Fields) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid_body",
			"message": "expected {\"fields\": {\"gtin\": \"...\"}}",
		})
		return
	}

	// Validate everything before writing anything.
	for key, value := range req.Fields {
		if err := fields.Validate(key, value); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":   "invalid_field",
				"message": err.Error(),
			})
			return
		}
	}

	for key, value := range req.Fields {
		if err := h.Meta.Set(r.Context(), productID, fields.MetaKey(key), value); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":   "write_fields_failed",
				"message": err.Error(),
			})
			return
		}
	}

	values, err := h.Resolver.AllFields(r.Context(), productID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "read_fields_failed",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"product_id": productID,
		"fields":     values,
	})
}

// parseProductFieldsPath accepts exactly /v1/products/{id}/fields.
func parseProductFieldsPath(path string) (uint64, bool) {
	suffix, ok := strings.CutPrefix(path, "/v1/products/")
	if !ok {
		return 0, false
	}

	idPart, rest, ok := strings.Cut(suffix, "/")
	if !ok || rest != "fields" {
		return 0, false
	}

	id, err := strconv.ParseUint(strings.TrimSpace(idPart), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
