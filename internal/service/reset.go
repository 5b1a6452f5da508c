package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akimsavar/authwall/internal/logger"
	"github.com/akimsavar/authwall/internal/model"
	"github.com/akimsavar/authwall/internal/password"
)

// Reset issues single-use, time-limited password-reset credentials and
// consumes them exactly once.
type Reset struct {
	userStore  model.UserStore
	resetStore model.ResetCredentialStore
	notifier   model.Notifier
	clock      model.Clock
	ttl        time.Duration
	logger     *logger.Logger
}

// NewReset constructs the Reset service.
func NewReset(
	userStore model.UserStore,
	resetStore model.ResetCredentialStore,
	notifier model.Notifier,
	clock model.Clock,
	ttl time.Duration,
	logger *logger.Logger,
) *Reset {
	return &Reset{
		userStore:  userStore,
		resetStore: resetStore,
		notifier:   notifier,
		clock:      clock,
		ttl:        ttl,
		logger:     logger,
	}
}

// RequestReset mints a reset credential for the identity behind email,
// persists it, and hands it to the notifier. Unknown email returns
// ErrNotFound to this component's caller; the transport layer is expected
// to render the same generic response either way. Notifier failure is
// reported as ErrNotificationFailed but the credential stays issued.
func (r *Reset) RequestReset(ctx context.Context, email string) error {
	user, err := r.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	now := r.clock.Now()
	credential := model.ResetCredential{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(r.ttl),
		CreatedAt: now,
	}

	if err := r.resetStore.Create(ctx, credential); err != nil {
		return fmt.Errorf("failed to persist reset credential: %w", err)
	}

	r.logger.Info("Reset service: reset credential issued", "user_id", user.ID)

	if err := r.notifier.Send(ctx, email, credential.Token); err != nil {
		r.logger.Error("Reset service: failed to send reset notification",
			"user_id", user.ID,
			"error", err.Error())
		return fmt.Errorf("%w: %w", model.ErrNotificationFailed, err)
	}

	return nil
}

// ConsumeReset authorizes a password change with a reset token. Lookup,
// expiry check, verifier replacement and credential deletion happen in a
// single transaction inside the store, so a token is consumed at most once
// even under concurrent requests racing on it.
func (r *Reset) ConsumeReset(ctx context.Context, token, newSecret string) error {
	hash, err := password.Hash(newSecret)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := r.resetStore.Consume(ctx, token, hash, r.clock.Now()); err != nil {
		if errors.Is(err, model.ErrInvalidOrExpiredResetToken) {
			return model.ErrInvalidOrExpiredResetToken
		}
		return fmt.Errorf("failed to consume reset credential: %w", err)
	}

	r.logger.Info("Reset service: password reset completed")

	return nil
}
