package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ResetCredentialStore persists single-use password-reset credentials.
type ResetCredentialStore interface {
	Create(ctx context.Context, credential ResetCredential) error
	// Consume deletes the credential and replaces the owner's password
	// verifier in one transaction. It returns ErrInvalidOrExpiredResetToken
	// when the credential is absent or past expiry at the given time;
	// an expired credential is still removed. Exactly one of two racing
	// consumers can succeed.
	Consume(ctx context.Context, token string, newPasswordHash string, now time.Time) error
}

// ResetCredential is a high-entropy, time-limited, single-use token record.
type ResetCredential struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
