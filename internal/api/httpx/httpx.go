package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mriera/bloglist-backend/internal/apperr"
)

type APIError struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, APIError{Error: msg})
}

// WriteAppError maps the error taxonomy to a status code. Anything
// outside the taxonomy is a 500 with a fixed body; internal detail
// never reaches the client.
func WriteAppError(w http.ResponseWriter, err error) {
	switch {
	case apperr.IsValidation(err):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrMalformedID):
		WriteError(w, http.StatusBadRequest, "malformed id")
	case errors.Is(err, apperr.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "invalid username or password")
	case apperr.IsAuth(err):
		WriteError(w, http.StatusUnauthorized, "missing or invalid token")
	case errors.Is(err, apperr.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not found")
	default:
		WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
