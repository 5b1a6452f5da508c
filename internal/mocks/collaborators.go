package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/akimsavar/authwall/internal/model"
)

type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) Issue(userID uuid.UUID, tokenType model.TokenType) (string, model.TokenClaims, error) {
	args := m.Called(userID, tokenType)
	return args.String(0), args.Get(1).(model.TokenClaims), args.Error(2)
}

func (m *TokenManager) Parse(token string) (model.TokenClaims, error) {
	args := m.Called(token)
	return args.Get(0).(model.TokenClaims), args.Error(1)
}

type Notifier struct {
	mock.Mock
}

func (m *Notifier) Send(ctx context.Context, email string, token string) error {
	args := m.Called(ctx, email, token)
	return args.Error(0)
}
