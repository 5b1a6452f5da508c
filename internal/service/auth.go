package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/akimsavar/authwall/internal/logger"
	"github.com/akimsavar/authwall/internal/model"
	"github.com/akimsavar/authwall/internal/password"
)

// dummyVerifier is compared against when the email is unknown, so that
// the unknown-email and wrong-password paths cost roughly the same.
const dummyVerifier = "pbkdf2:sha256:600000$ZHVtbXlzYWx0ZHVtbXk$" +
	"0000000000000000000000000000000000000000000000000000000000000000"

// Auth handles registration and credential verification, delegating token
// work to the TokenService.
type Auth struct {
	userStore model.UserStore
	tokens    *TokenService
	logger    *logger.Logger
}

// NewAuth constructs the Auth service.
func NewAuth(userStore model.UserStore, tokens *TokenService, logger *logger.Logger) *Auth {
	return &Auth{userStore: userStore, tokens: tokens, logger: logger}
}

// SignUp registers a new user. A duplicate email yields ErrEmailTaken.
func (a *Auth) SignUp(ctx context.Context, name, email, secret string) (model.User, error) {
	a.logger.Debug("Auth service: starting user registration", "email", email)

	existing, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: user already exists", "email", email)
		return model.User{}, model.ErrEmailTaken
	}

	hash, err := password.Hash(secret)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	created, err := a.userStore.Create(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered", "email", email, "user_id", created.ID)

	return created, nil
}

// SignIn verifies credentials and issues an access+refresh pair. Unknown
// email and wrong password are indistinguishable to the caller: both
// return ErrInvalidCredentials.
func (a *Auth) SignIn(ctx context.Context, email, secret string) (model.User, *TokenPair, error) {
	a.logger.Debug("Auth service: sign-in attempt", "email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			password.Compare(dummyVerifier, secret)
			a.logger.Info("Auth service: sign-in rejected", "email", email)
			return model.User{}, nil, model.ErrInvalidCredentials
		}
		return model.User{}, nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !password.Compare(user.PasswordHash, secret) {
		a.logger.Info("Auth service: sign-in rejected", "email", email)
		return model.User{}, nil, model.ErrInvalidCredentials
	}

	pair, err := a.tokens.Issue(ctx, user.ID)
	if err != nil {
		return model.User{}, nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	a.logger.Info("Auth service: sign-in successful", "email", email, "user_id", user.ID)

	return user, pair, nil
}

// Profile returns the user for an authenticated subject id.
func (a *Auth) Profile(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}
