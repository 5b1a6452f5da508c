package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/akimsavar/authwall/internal/model"
)

type RefreshTokenStore struct {
	mock.Mock
}

func (m *RefreshTokenStore) Create(ctx context.Context, token model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *RefreshTokenStore) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	args := m.Called(ctx, jti)
	return args.Get(0).(model.RefreshToken), args.Error(1)
}

func (m *RefreshTokenStore) DeleteByJTI(ctx context.Context, jti string) error {
	args := m.Called(ctx, jti)
	return args.Error(0)
}

func (m *RefreshTokenStore) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type RevocationStore struct {
	mock.Mock
}

func (m *RevocationStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	args := m.Called(ctx, jti, expiresAt)
	return args.Error(0)
}

func (m *RevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

type ResetCredentialStore struct {
	mock.Mock
}

func (m *ResetCredentialStore) Create(ctx context.Context, credential model.ResetCredential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

func (m *ResetCredentialStore) Consume(ctx context.Context, token string, newPasswordHash string, now time.Time) error {
	args := m.Called(ctx, token, newPasswordHash, now)
	return args.Error(0)
}
