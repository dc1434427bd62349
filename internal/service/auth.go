package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/platefulapp/plateful-server/internal/auth"
	"github.com/platefulapp/plateful-server/internal/domain"
	domainerrors "github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/id"
	"github.com/platefulapp/plateful-server/internal/store"
	"github.com/platefulapp/plateful-server/internal/validation"
)

// AuthService handles registration, login and token verification.
type AuthService struct {
	store    *store.Store
	tokens   *auth.TokenService
	sessions *SessionService
	validate *validation.Validator
	logger   *slog.Logger
}

// NewAuthService creates an auth service.
func NewAuthService(st *store.Store, tokens *auth.TokenService, sessions *SessionService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:    st,
		tokens:   tokens,
		sessions: sessions,
		validate: validation.New(),
		logger:   logger,
	}
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5,max=128"`
	Name     string `json:"name" validate:"omitempty,max=255"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required"`
	Client   auth.ClientInfo `json:"client"`
}

// Register creates a user. The email must be unused (case-insensitively);
// nothing is persisted when validation fails.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, domainerrors.Wrap(err, "hash password")
	}

	user := &domain.User{
		ID:           id.MustGenerate(id.PrefixUser),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
	}
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("email already registered")
		}
		return nil, domainerrors.Wrap(err, "create user")
	}

	s.logger.Info("User registered", "user_id", user.ID)

	return user, nil
}

// Login verifies credentials and opens a session. Wrong email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest, ip string) (*domain.User, *TokenPair, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, nil, domainerrors.Wrap(err, "look up user")
	}

	ok, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, nil, domainerrors.Wrap(err, "verify password")
	}
	if !ok {
		return nil, nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	// Best effort; a failed timestamp write must not block login.
	user.LastLoginAt = time.Now().UTC()
	user.Touch()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		s.logger.Warn("Failed to record last login", "user_id", user.ID, "error", err)
	}

	pair, err := s.sessions.Create(ctx, user, req.Client, ip)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh rotates a refresh token into a fresh pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, domainerrors.Validation("refresh_token is required")
	}
	return s.sessions.Refresh(ctx, refreshToken)
}

// Logout ends a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domainerrors.Validation("session_id is required")
	}
	return s.sessions.Delete(ctx, sessionID)
}

// VerifyAccessToken validates a bearer token and loads its user.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (*domain.User, *auth.AccessClaims, error) {
	claims, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, nil, domainerrors.Unauthorized("invalid or expired token")
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		return nil, nil, domainerrors.Unauthorized("token user no longer exists")
	}

	return user, claims, nil
}
