package model

import "context"

// Notifier delivers a password-reset token to the user. Fire-and-forget
// from the engine's perspective: delivery failure never unwinds the
// already-persisted credential.
type Notifier interface {
	Send(ctx context.Context, email string, token string) error
}
