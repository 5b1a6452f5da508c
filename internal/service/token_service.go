package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/akimsavar/authwall/internal/logger"
	"github.com/akimsavar/authwall/internal/model"
)

// TokenService owns the token lifecycle: issuing access/refresh pairs,
// refreshing access tokens, revoking on sign-out, and the per-request
// authentication check. It composes the TokenManager, the refresh token
// store and the revocation ledger.
type TokenService struct {
	manager       model.TokenManager
	refreshStore  model.RefreshTokenStore
	revocations   model.RevocationStore
	clock         model.Clock
	logger        *logger.Logger
	rotateRefresh bool
}

// NewTokenService constructs a TokenService. rotateRefresh selects whether
// a refresh call invalidates the presented refresh token and issues a new
// one, or leaves it in place and mints a new access token only.
func NewTokenService(
	manager model.TokenManager,
	refreshStore model.RefreshTokenStore,
	revocations model.RevocationStore,
	clock model.Clock,
	logger *logger.Logger,
	rotateRefresh bool,
) *TokenService {
	return &TokenService{
		manager:       manager,
		refreshStore:  refreshStore,
		revocations:   revocations,
		clock:         clock,
		logger:        logger,
		rotateRefresh: rotateRefresh,
	}
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Issue mints an access+refresh pair for the user and persists the refresh
// token record keyed by its jti.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	access, _, err := s.manager.Issue(userID, model.TokenTypeAccess)
	if err != nil {
		return nil, fmt.Errorf("issue access: %w", err)
	}

	refresh, refreshClaims, err := s.manager.Issue(userID, model.TokenTypeRefresh)
	if err != nil {
		return nil, fmt.Errorf("issue refresh: %w", err)
	}

	rt := model.RefreshToken{
		ID:        uuid.New(),
		JTI:       refreshClaims.JTI,
		UserID:    userID,
		TokenHash: hashRefresh(refresh),
		IssuedAt:  refreshClaims.IssuedAt,
		ExpiresAt: refreshClaims.ExpiresAt,
		CreatedAt: s.clock.Now(),
	}
	if err := s.refreshStore.Create(ctx, rt); err != nil {
		return nil, fmt.Errorf("persist refresh: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh validates the presented refresh token and mints a new access
// token. Four checks are required and each must pass: the token parses as
// type=refresh, its jti is not in the revocation ledger, a persisted record
// exists and is bound to the same user, and the record is not expired.
// With rotation enabled the presented token is also retired and a new
// refresh token returned; otherwise RefreshToken in the result is empty
// and the presented one stays valid.
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh string) (*TokenPair, error) {
	claims, err := s.manager.Parse(presentedRefresh)
	if err != nil {
		if errors.Is(err, model.ErrTokenExpired) {
			return nil, model.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidRefreshToken, err)
	}
	if claims.Type != model.TokenTypeRefresh {
		return nil, fmt.Errorf("%w: wrong token type", model.ErrInvalidRefreshToken)
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.JTI)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", model.ErrInvalidRefreshToken)
	}

	rt, err := s.refreshStore.GetByJTI(ctx, claims.JTI)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: no active session", model.ErrInvalidRefreshToken)
		}
		return nil, fmt.Errorf("get refresh record: %w", err)
	}

	if rt.UserID != claims.UserID {
		return nil, fmt.Errorf("%w: subject mismatch", model.ErrInvalidRefreshToken)
	}
	if !equalBytes(rt.TokenHash, hashRefresh(presentedRefresh)) {
		return nil, fmt.Errorf("%w: token mismatch", model.ErrInvalidRefreshToken)
	}
	if s.clock.Now().After(rt.ExpiresAt) {
		return nil, model.ErrTokenExpired
	}

	access, _, err := s.manager.Issue(claims.UserID, model.TokenTypeAccess)
	if err != nil {
		return nil, fmt.Errorf("issue new access: %w", err)
	}

	if !s.rotateRefresh {
		return &TokenPair{AccessToken: access}, nil
	}

	// Rotation: retire the presented token, then persist its replacement.
	if err := s.revocations.Revoke(ctx, claims.JTI, rt.ExpiresAt); err != nil {
		return nil, fmt.Errorf("revoke rotated refresh: %w", err)
	}
	if err := s.refreshStore.DeleteByJTI(ctx, claims.JTI); err != nil {
		return nil, fmt.Errorf("delete rotated refresh: %w", err)
	}

	newRefresh, newClaims, err := s.manager.Issue(claims.UserID, model.TokenTypeRefresh)
	if err != nil {
		return nil, fmt.Errorf("issue new refresh: %w", err)
	}
	newRT := model.RefreshToken{
		ID:        uuid.New(),
		JTI:       newClaims.JTI,
		UserID:    claims.UserID,
		TokenHash: hashRefresh(newRefresh),
		IssuedAt:  newClaims.IssuedAt,
		ExpiresAt: newClaims.ExpiresAt,
		CreatedAt: s.clock.Now(),
	}
	if err := s.refreshStore.Create(ctx, newRT); err != nil {
		return nil, fmt.Errorf("persist new refresh: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: newRefresh}, nil
}

// Authenticate verifies an access token for a protected request: signature
// and expiry via the codec, explicit type check, then the revocation
// ledger. A signed, unexpired token whose jti is listed is rejected with
// ErrTokenRevoked.
func (s *TokenService) Authenticate(ctx context.Context, accessToken string) (uuid.UUID, error) {
	claims, err := s.manager.Parse(accessToken)
	if err != nil {
		return uuid.Nil, err
	}
	if claims.Type != model.TokenTypeAccess {
		return uuid.Nil, fmt.Errorf("%w: wrong token type", model.ErrTokenMalformed)
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.JTI)
	if err != nil {
		return uuid.Nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return uuid.Nil, model.ErrTokenRevoked
	}

	return claims.UserID, nil
}

// SignOut revokes the presented access token and tears down the refresh
// leg of the session: the specific refresh token when it is supplied and
// verifies as the caller's, otherwise every refresh record for the
// identity. Revocation is idempotent, so
// signing out twice succeeds twice; the revocation check is deliberately
// skipped here.
func (s *TokenService) SignOut(ctx context.Context, accessToken string, refreshToken string) error {
	claims, err := s.manager.Parse(accessToken)
	if err != nil {
		return err
	}
	if claims.Type != model.TokenTypeAccess {
		return fmt.Errorf("%w: wrong token type", model.ErrTokenMalformed)
	}

	if err := s.revocations.Revoke(ctx, claims.JTI, claims.ExpiresAt); err != nil {
		return fmt.Errorf("revoke access: %w", err)
	}

	if refreshToken != "" {
		refreshClaims, err := s.manager.Parse(refreshToken)
		if err == nil && refreshClaims.Type == model.TokenTypeRefresh && refreshClaims.UserID == claims.UserID {
			if err := s.revocations.Revoke(ctx, refreshClaims.JTI, refreshClaims.ExpiresAt); err != nil {
				return fmt.Errorf("revoke refresh: %w", err)
			}
			if err := s.refreshStore.DeleteByJTI(ctx, refreshClaims.JTI); err != nil {
				return fmt.Errorf("delete refresh record: %w", err)
			}
			return nil
		}
		// An unusable refresh token must not leave the session's real
		// refresh records alive, so fall through to the full teardown.
		s.logger.Info("token service: unusable refresh token at sign-out, deleting all sessions",
			"user_id", claims.UserID)
	}

	if err := s.refreshStore.DeleteAllByUser(ctx, claims.UserID); err != nil {
		return fmt.Errorf("delete refresh records: %w", err)
	}

	return nil
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func equalBytes(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
