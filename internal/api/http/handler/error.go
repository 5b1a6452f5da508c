package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akimsavar/authwall/internal/model"
)

type messageResponse struct {
	Message string `json:"message"`
}

// statusForError maps the service error taxonomy to HTTP status codes.
// Verification failures surface as typed errors, never as bare 500s.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, model.ErrEmailTaken):
		return http.StatusConflict, "User already exists"
	case errors.Is(err, model.ErrTokenRevoked):
		return http.StatusUnauthorized, "Token revoked"
	case errors.Is(err, model.ErrTokenExpired):
		return http.StatusUnauthorized, "Token expired"
	case errors.Is(err, model.ErrTokenMalformed):
		return http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, model.ErrInvalidRefreshToken):
		return http.StatusUnauthorized, "Invalid or expired refresh token"
	case errors.Is(err, model.ErrInvalidOrExpiredResetToken):
		return http.StatusBadRequest, "Invalid or expired token"
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, model.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "Service temporarily unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, msg := statusForError(err)
	writeJSON(w, status, messageResponse{Message: msg})
}

// WriteAuthError writes a 401 with the given message. Used by the
// authentication middleware.
func WriteAuthError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusUnauthorized, messageResponse{Message: msg})
}

// WriteTokenError maps a token validation error to its response. Used by
// the authentication middleware.
func WriteTokenError(w http.ResponseWriter, err error) {
	writeError(w, err)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeJSON rejects missing or malformed payloads before anything
// reaches the lifecycle engine.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid JSON payload"})
		return false
	}
	return true
}
