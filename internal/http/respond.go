package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fintrack/internal/core"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, fields map[string]string) {
	writeJSON(w, status, errorResponse{Error: msg, Fields: fields})
}

// writeDomainError maps domain errors onto HTTP statuses. Validation
// failures become 422 with per-field messages, missing records 404,
// anything else 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErrs core.FieldErrors
	if errors.As(err, &fieldErrs) {
		writeError(w, http.StatusUnprocessableEntity, "validation failed", map[string]string(fieldErrs))
		return
	}
	if errors.Is(err, core.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found", nil)
		return
	}
	slog.ErrorContext(r.Context(), "Request failed", "error", err, "url", r.URL.Path)
	writeError(w, http.StatusInternalServerError, "internal error", nil)
}
