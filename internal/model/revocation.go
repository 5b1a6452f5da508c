package model

import (
	"context"
	"time"
)

// RevocationStore is the append-only ledger of invalidated token ids.
// A jti present here permanently invalidates the token it identifies for
// the remainder of that token's natural lifetime.
type RevocationStore interface {
	// Revoke records the jti. Revoking an already-revoked jti is a no-op
	// success. The expiry is the token's natural expiry; backends may use
	// it to garbage-collect entries that can no longer matter.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RevocationEntry describes a single ledger row.
type RevocationEntry struct {
	JTI       string
	RevokedAt time.Time
	ExpiresAt time.Time
}
