package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akimsavar/authwall/internal/model"
)

func TestStatusForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "invalid credentials",
			in:         model.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid credentials",
		},
		{
			name:       "email taken",
			in:         model.ErrEmailTaken,
			wantStatus: http.StatusConflict,
			wantMsg:    "User already exists",
		},
		{
			name:       "revoked token",
			in:         model.ErrTokenRevoked,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token revoked",
		},
		{
			name:       "expired token",
			in:         model.ErrTokenExpired,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token expired",
		},
		{
			name:       "malformed token",
			in:         model.ErrTokenMalformed,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid token",
		},
		{
			name:       "invalid refresh token",
			in:         model.ErrInvalidRefreshToken,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid or expired refresh token",
		},
		{
			name:       "invalid reset token",
			in:         model.ErrInvalidOrExpiredResetToken,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid or expired token",
		},
		{
			name:       "not found",
			in:         model.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "Not found",
		},
		{
			name:       "store unavailable",
			in:         model.ErrStoreUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "Service temporarily unavailable",
		},
		{
			name:       "wrapped error keeps its mapping",
			in:         errors.Join(errors.New("query user"), model.ErrStoreUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "Service temporarily unavailable",
		},
		{
			name:       "unknown error -> internal",
			in:         errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status, msg := statusForError(tt.in)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
