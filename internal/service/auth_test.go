package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/akimsavar/authwall/internal/mocks"
	"github.com/akimsavar/authwall/internal/model"
	"github.com/akimsavar/authwall/internal/password"
	"github.com/akimsavar/authwall/internal/testutil"
)

func newAuthFixture(t *testing.T) (*Auth, *mocks.UserStore, *mocks.RefreshTokenStore, *mocks.RevocationStore) {
	t.Helper()
	clock := testutil.NewFixedClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	userStore := &mocks.UserStore{}
	refreshStore := &mocks.RefreshTokenStore{}
	revocations := &mocks.RevocationStore{}
	tokens := NewTokenService(newTestCodec(clock), refreshStore, revocations, clock, testutil.MakeNoopLogger(), false)
	return NewAuth(userStore, tokens, testutil.MakeNoopLogger()), userStore, refreshStore, revocations
}

func TestAuth_SignUp_NewUser(t *testing.T) {
	ctx := context.Background()
	a, userStore, _, _ := newAuthFixture(t)

	var created model.User
	userStore.On("GetByEmail", mock.Anything, "alice@example.com").Return(model.User{}, model.ErrNotFound)
	userStore.On("Create", mock.Anything, mock.AnythingOfType("model.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(model.User) }).
		Return(model.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}, nil)

	user, err := a.SignUp(ctx, "Alice", "alice@example.com", "correcthorse")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	// the stored verifier must verify the secret and never contain it
	require.True(t, password.Compare(created.PasswordHash, "correcthorse"))
	require.NotContains(t, created.PasswordHash, "correcthorse")
}

func TestAuth_SignUp_EmailTaken(t *testing.T) {
	ctx := context.Background()
	a, userStore, _, _ := newAuthFixture(t)

	userStore.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(model.User{ID: uuid.New(), Email: "alice@example.com"}, nil)

	_, err := a.SignUp(ctx, "Alice", "alice@example.com", "correcthorse")
	require.ErrorIs(t, err, model.ErrEmailTaken)
	userStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuth_SignIn_Success(t *testing.T) {
	ctx := context.Background()
	a, userStore, refreshStore, _ := newAuthFixture(t)

	hash, err := password.Hash("correcthorse")
	require.NoError(t, err)
	alice := model.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com", PasswordHash: hash}

	userStore.On("GetByEmail", mock.Anything, "alice@example.com").Return(alice, nil)
	refreshStore.On("Create", mock.Anything, mock.Anything).Return(nil)

	user, pair, err := a.SignIn(ctx, "alice@example.com", "correcthorse")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
}

func TestAuth_SignIn_WrongPassword(t *testing.T) {
	ctx := context.Background()
	a, userStore, _, _ := newAuthFixture(t)

	hash, err := password.Hash("correcthorse")
	require.NoError(t, err)
	userStore.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(model.User{ID: uuid.New(), PasswordHash: hash}, nil)

	_, _, err = a.SignIn(ctx, "alice@example.com", "wronghorse")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_SignIn_UnknownEmail_SameError(t *testing.T) {
	ctx := context.Background()
	a, userStore, _, _ := newAuthFixture(t)

	userStore.On("GetByEmail", mock.Anything, "nobody@example.com").Return(model.User{}, model.ErrNotFound)

	_, _, err := a.SignIn(ctx, "nobody@example.com", "whatever")
	// identical signal as wrong password, no enumeration
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_Profile(t *testing.T) {
	ctx := context.Background()
	a, userStore, _, _ := newAuthFixture(t)

	id := uuid.New()
	userStore.On("GetByID", mock.Anything, id).Return(model.User{ID: id, Name: "Alice"}, nil)

	user, err := a.Profile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
}
