package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rosterlab/memberd/internal/model"
)

// handleError maps service errors onto HTTP statuses. Anything unrecognized,
// including data-integrity failures, is an opaque internal error: details of
// server-side failures never reach the client.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, model.ErrInvalidInput.Error())
	case errors.Is(err, model.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, model.ErrDuplicateEmail.Error())
	case errors.Is(err, model.ErrAuthenticationFailed):
		writeError(w, http.StatusUnauthorized, model.ErrAuthenticationFailed.Error())
	case errors.Is(err, model.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, model.ErrInvalidToken.Error())
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, model.ErrNotFound.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
