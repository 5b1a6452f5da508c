package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenStore persists one row per active session.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByJTI(ctx context.Context, jti string) (RefreshToken, error)
	DeleteByJTI(ctx context.Context, jti string) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}

// RefreshToken is the persisted record backing a refresh token. The token
// string itself is never stored; only a hash of it, keyed by jti.
type RefreshToken struct {
	ID        uuid.UUID
	JTI       string
	UserID    uuid.UUID
	TokenHash []byte
	IssuedAt  time.Time
	ExpiresAt time.Time
	CreatedAt time.Time
}
