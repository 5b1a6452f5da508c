package model

import "errors"

// Sentinel errors returned by services and stores. Handlers map these to
// HTTP status codes; nothing else crosses the service boundary untyped.
var (
	// ErrNotFound is returned by stores when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned on signup when the email is already registered.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidCredentials covers both "no such email" and "wrong password".
	// Callers must not distinguish the two cases.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenMalformed means the token failed structural or signature checks.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrTokenExpired means the token is past its expiry claim.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked means the token's jti is present in the revocation ledger.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrInvalidRefreshToken means the refresh token failed any of the
	// acceptance checks beyond signature expiry: wrong type, no persisted
	// record, record bound to a different user, or record expired.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrInvalidOrExpiredResetToken means the reset credential is absent,
	// already consumed, or past its TTL.
	ErrInvalidOrExpiredResetToken = errors.New("invalid or expired reset token")

	// ErrStoreUnavailable means the store timed out or refused the
	// connection. Retryable by the caller; never retried internally.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrNotificationFailed means the notifier could not deliver the reset
	// message. Non-fatal: the reset credential is still issued.
	ErrNotificationFailed = errors.New("notification failed")
)
