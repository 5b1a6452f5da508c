package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/akimsavar/authwall/internal/logger"
	"github.com/akimsavar/authwall/internal/model"
)

// ResetService defines password-reset operations.
type ResetService interface {
	RequestReset(ctx context.Context, email string) error
	ConsumeReset(ctx context.Context, token, newSecret string) error
}

// Reset handles the password-reset HTTP endpoints.
type Reset struct {
	resetService ResetService
	logger       *logger.Logger
}

// NewReset creates a new Reset handler.
func NewReset(resetService ResetService, logger *logger.Logger) *Reset {
	return &Reset{resetService: resetService, logger: logger}
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// ForgotPassword issues a reset credential. The response is identical for
// known and unknown emails so the endpoint cannot be used to enumerate
// accounts, and delivery failure is logged but not exposed: the
// credential is issued either way.
func (h *Reset) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Email is required"})
		return
	}

	err := h.resetService.RequestReset(r.Context(), req.Email)
	switch {
	case err == nil, errors.Is(err, model.ErrNotFound):
	case errors.Is(err, model.ErrNotificationFailed):
		h.logger.Error("Reset handler: notification failed", "error", err.Error())
	default:
		h.logger.Error("Reset handler: forgot-password failed", "error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "If the email is registered, a password reset link has been sent"})
}

// ResetPassword consumes a reset credential and sets a new password.
func (h *Reset) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req resetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Password == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "New password is required"})
		return
	}

	if err := h.resetService.ConsumeReset(r.Context(), token, req.Password); err != nil {
		h.logger.Info("Reset handler: reset-password failed", "error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Password reset successful"})
}
