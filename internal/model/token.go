package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenType tags a token as access or refresh. The tag is checked
// explicitly wherever a token is accepted, never inferred from context.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// TokenClaims is the parsed content of a signed token.
type TokenClaims struct {
	UserID    uuid.UUID
	JTI       string
	Type      TokenType
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager creates and parses signed access/refresh tokens.
type TokenManager interface {
	Issue(userID uuid.UUID, tokenType TokenType) (token string, claims TokenClaims, err error)
	Parse(token string) (TokenClaims, error)
}
