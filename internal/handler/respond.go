package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"sadaka/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorBody pairs a machine-readable kind with a human-readable message.
func errorBody(kind, message string) map[string]string {
	return map[string]string{"error": kind, "message": message}
}

// writeServiceError maps the service error taxonomy onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized", err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorBody("invalid_input", err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody("storage_unavailable", err.Error()))
	}
}
