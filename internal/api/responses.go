package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spigell/orienta/internal/session"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error, details any) {
	status, code := classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	writeJSON(w, status, errorEnvelope{Error: apiError{Code: code, Message: message, Details: details}})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, session.ErrInvalidArgument):
		return http.StatusBadRequest, "INVALID_ARGUMENT"
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, session.ErrCompleted):
		return http.StatusConflict, "COMPLETED"
	case errors.Is(err, session.ErrNotCompleted):
		return http.StatusConflict, "NOT_COMPLETED"
	case errors.Is(err, session.ErrConflict):
		return http.StatusConflict, "CONFLICT"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}
