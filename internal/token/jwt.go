package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/akimsavar/authwall/internal/model"
)

// Claims represents JWT claims with token type and user ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"user_id"`
	TokenType string    `json:"typ"`
}

// Config holds the process-wide signing secret and token lifetimes.
// Loaded once at startup and immutable afterwards; swapping the key is a
// config change, not a code change.
type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// JWT implements model.TokenManager backed by symmetric HMAC.
type JWT struct {
	config Config
	clock  model.Clock
}

// NewJWT creates a new JWT token manager from the provided config.
func NewJWT(cfg Config, clock model.Clock) *JWT {
	return &JWT{config: cfg, clock: clock}
}

var _ model.TokenManager = (*JWT)(nil)

// Issue creates a signed token of the given type. Every token carries a
// fresh uuid jti so it can be revoked individually.
func (j *JWT) Issue(userID uuid.UUID, tokenType model.TokenType) (string, model.TokenClaims, error) {
	ttl := j.config.AccessTTL
	if tokenType == model.TokenTypeRefresh {
		ttl = j.config.RefreshTTL
	}

	now := j.clock.Now()
	claims := model.TokenClaims{
		UserID:    userID,
		JTI:       uuid.NewString(),
		Type:      tokenType,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        claims.JTI,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
		UserID:    userID,
		TokenType: string(tokenType),
	})

	tokenString, err := token.SignedString([]byte(j.config.Secret))
	if err != nil {
		return "", model.TokenClaims{}, fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return tokenString, claims, nil
}

// Parse validates signature and expiry and extracts the claims.
// Expiry failure is reported as model.ErrTokenExpired, every other
// structural or signature failure as model.ErrTokenMalformed, so callers
// can give precise diagnostics.
func (j *JWT) Parse(tokenString string) (model.TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.config.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.TokenClaims{}, model.ErrTokenExpired
		}
		return model.TokenClaims{}, fmt.Errorf("%w: %w", model.ErrTokenMalformed, err)
	}
	if !token.Valid {
		return model.TokenClaims{}, model.ErrTokenMalformed
	}

	tokenType := model.TokenType(claims.TokenType)
	if tokenType != model.TokenTypeAccess && tokenType != model.TokenTypeRefresh {
		return model.TokenClaims{}, fmt.Errorf("%w: unknown token type %q", model.ErrTokenMalformed, claims.TokenType)
	}
	if claims.ID == "" || claims.UserID == uuid.Nil {
		return model.TokenClaims{}, fmt.Errorf("%w: missing jti or subject", model.ErrTokenMalformed)
	}

	parsed := model.TokenClaims{
		UserID: claims.UserID,
		JTI:    claims.ID,
		Type:   tokenType,
	}
	if claims.IssuedAt != nil {
		parsed.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		parsed.ExpiresAt = claims.ExpiresAt.Time
	}

	return parsed, nil
}
