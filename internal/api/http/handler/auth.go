package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/akimsavar/authwall/internal/logger"
	"github.com/akimsavar/authwall/internal/model"
	"github.com/akimsavar/authwall/internal/service"
)

// AuthService defines user registration, sign-in and profile operations.
type AuthService interface {
	SignUp(ctx context.Context, name, email, secret string) (model.User, error)
	SignIn(ctx context.Context, email, secret string) (model.User, *service.TokenPair, error)
	Profile(ctx context.Context, userID uuid.UUID) (model.User, error)
}

// TokenService defines token refresh and sign-out operations.
type TokenService interface {
	Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error)
	SignOut(ctx context.Context, accessToken string, refreshToken string) error
}

// ContextManager reads the authenticated user id set by the middleware.
type ContextManager interface {
	GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool)
}

// Auth handles the HTTP endpoints for the token lifecycle.
type Auth struct {
	authService  AuthService
	tokenService TokenService
	ctxManager   ContextManager
	logger       *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, tokenService TokenService, ctxManager ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:  authService,
		tokenService: tokenService,
		ctxManager:   ctxManager,
		logger:       logger,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type userResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type signinResponse struct {
	Message      string       `json:"message"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         userResponse `json:"user"`
}

type refreshResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// SignUp registers a new user.
func (h *Auth) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Missing required fields"})
		return
	}

	_, err := h.authService.SignUp(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: signup failed", "email", req.Email, "error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "User created successfully"})
}

// SignIn verifies credentials and returns an access+refresh pair.
func (h *Auth) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Missing email or password"})
		return
	}

	user, pair, err := h.authService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: sign-in failed", "email", req.Email, "error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, signinResponse{
		Message:      "Sign-in successful",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         userResponse{Name: user.Name, Email: user.Email},
	})
}

// Refresh mints a new access token for a valid refresh token.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Missing refresh token"})
		return
	}

	pair, err := h.tokenService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.logger.Info("Auth handler: refresh failed", "error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{
		Message:      "Token refreshed successfully",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// SignOut revokes the presented access token and the session's refresh
// leg. It reads the bearer token itself rather than relying on the
// authentication middleware, because a second sign-out with an
// already-revoked token must still succeed.
func (h *Auth) SignOut(w http.ResponseWriter, r *http.Request) {
	accessToken := BearerToken(r)
	if accessToken == "" {
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Missing authorization token"})
		return
	}

	var req logoutRequest
	if r.Body != nil && r.ContentLength > 0 {
		if !decodeJSON(w, r, &req) {
			return
		}
	}

	if err := h.tokenService.SignOut(r.Context(), accessToken, req.RefreshToken); err != nil {
		h.logger.Info("Auth handler: sign-out failed", "error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Logout successful. Tokens revoked."})
}

// Dashboard returns the authenticated user's profile.
func (h *Auth) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ctxManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Missing authorization token"})
		return
	}

	user, err := h.authService.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string       `json:"message"`
		User    userResponse `json:"user"`
	}{
		Message: "Welcome " + user.Name + "!",
		User:    userResponse{Name: user.Name, Email: user.Email},
	})
}

// Public is an unauthenticated liveness endpoint.
func (h *Auth) Public(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "This is a public endpoint"})
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
