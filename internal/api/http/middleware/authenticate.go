package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/akimsavar/authwall/internal/api/http/handler"
	"github.com/akimsavar/authwall/internal/logger"
)

// TokenAuthenticator resolves user ID from bearer access tokens,
// consulting the revocation ledger after signature and expiry checks.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, accessToken string) (uuid.UUID, error)
}

// ContextManager injects the authenticated user id into the request context.
type ContextManager interface {
	SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context
}

// Authenticate validates bearer tokens and injects user ID into context.
type Authenticate struct {
	tokenService TokenAuthenticator
	ctxManager   ContextManager
	logger       *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenAuthenticator, ctxManager ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, ctxManager: ctxManager, logger: logger}
}

// Handle parses the Authorization header, validates the token and passes
// the request on with the user id in context. Revoked tokens are rejected
// here even when signature and expiry are valid.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := handler.BearerToken(r)
		if tokenString == "" {
			handler.WriteAuthError(w, "Missing authorization token")
			return
		}

		userID, err := m.tokenService.Authenticate(r.Context(), tokenString)
		if err != nil {
			m.logger.Info("auth middleware: token rejected", "error", err.Error())
			handler.WriteTokenError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.ctxManager.SetUserIDToContext(r.Context(), userID)))
	})
}
