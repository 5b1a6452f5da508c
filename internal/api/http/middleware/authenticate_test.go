package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/akimsavar/authwall/internal/model"
	"github.com/akimsavar/authwall/internal/testutil"
)

type tokenAuthenticatorMock struct {
	mock.Mock
}

func (m *tokenAuthenticatorMock) Authenticate(ctx context.Context, accessToken string) (uuid.UUID, error) {
	args := m.Called(ctx, accessToken)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type contextManagerMock struct {
	mock.Mock
}

func (m *contextManagerMock) SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	args := m.Called(ctx, userID)
	return args.Get(0).(context.Context)
}

func TestAuthenticate_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		authHeader   string
		tokenSvcID   uuid.UUID
		tokenSvcErr  error
		wantStatus   int
		expectNext   bool
		expectSetCtx bool
	}{
		{
			name:       "missing authorization header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "malformed token",
			authHeader:  "Bearer junk",
			tokenSvcErr: model.ErrTokenMalformed,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "expired token",
			authHeader:  "Bearer expired",
			tokenSvcErr: model.ErrTokenExpired,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "revoked token",
			authHeader:  "Bearer revoked",
			tokenSvcErr: model.ErrTokenRevoked,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "ledger unavailable",
			authHeader:  "Bearer tok",
			tokenSvcErr: model.ErrStoreUnavailable,
			wantStatus:  http.StatusServiceUnavailable,
		},
		{
			name:         "valid token",
			authHeader:   "Bearer tok",
			tokenSvcID:   uuid.New(),
			wantStatus:   http.StatusOK,
			expectNext:   true,
			expectSetCtx: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &tokenAuthenticatorMock{}
			if tt.authHeader != "" {
				svc.On("Authenticate", mock.Anything, mock.AnythingOfType("string")).
					Return(tt.tokenSvcID, tt.tokenSvcErr)
			}

			cm := &contextManagerMock{}
			if tt.expectSetCtx {
				cm.On("SetUserIDToContext", mock.Anything, tt.tokenSvcID).Return(context.Background())
			}

			m := NewAuthenticate(svc, cm, testutil.MakeNoopLogger())

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			m.Handle(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			svc.AssertExpectations(t)
			cm.AssertExpectations(t)
		})
	}
}
