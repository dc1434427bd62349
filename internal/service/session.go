package service

import (
	"context"
	"log/slog"

	"github.com/platefulapp/plateful-server/internal/auth"
	"github.com/platefulapp/plateful-server/internal/domain"
	domainerrors "github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/id"
	"github.com/platefulapp/plateful-server/internal/store"
)

// SessionService manages refresh-token sessions.
type SessionService struct {
	store  *store.Store
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewSessionService creates a session service.
func NewSessionService(st *store.Store, tokens *auth.TokenService, logger *slog.Logger) *SessionService {
	return &SessionService{store: st, tokens: tokens, logger: logger}
}

// TokenPair is what a client receives at login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	SessionID    string `json:"session_id"`
}

// Create issues a new token pair and persists the backing session.
func (s *SessionService) Create(ctx context.Context, user *domain.User, client auth.ClientInfo, ip string) (*TokenPair, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, domainerrors.Wrap(err, "generate access token")
	}

	refreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, domainerrors.Wrap(err, "generate refresh token")
	}

	sess := &domain.Session{
		ID:               id.MustGenerate(id.PrefixSession),
		UserID:           user.ID,
		RefreshTokenHash: auth.HashRefreshToken(refreshToken),
		IPAddress:        ip,
		ClientName:       client.Display(),
	}
	sess.InitTimestamps()
	sess.ExpiresAt = sess.CreatedAt.Add(s.tokens.RefreshTokenDuration())
	sess.LastSeenAt = sess.CreatedAt

	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, domainerrors.Wrap(err, "persist session")
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.AccessTokenDuration().Seconds()),
		SessionID:    sess.ID,
	}, nil
}

// Refresh rotates a session: the presented refresh token is spent and a new
// pair is issued. An unknown token is Unauthorized; a known but expired one
// is TokenExpired, and the dead session is removed.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	sess, err := s.store.GetSessionByRefreshTokenHash(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.Unauthorized("invalid refresh token")
		}
		return nil, domainerrors.Wrap(err, "look up session")
	}

	if sess.IsExpired() {
		if err := s.store.DeleteSession(ctx, sess.ID); err != nil && !domainerrors.Is(err, store.ErrNotFound) {
			s.logger.Warn("Failed to remove expired session", "session_id", sess.ID, "error", err)
		}
		return nil, domainerrors.TokenExpired("refresh token expired")
	}

	user, err := s.store.GetUser(ctx, sess.UserID)
	if err != nil {
		return nil, domainerrors.Unauthorized("session user no longer exists")
	}

	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, domainerrors.Wrap(err, "generate access token")
	}

	newRefreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, domainerrors.Wrap(err, "generate refresh token")
	}

	// Session lifetime is fixed at login; rotation spends the old token
	// but does not extend ExpiresAt.
	sess.RefreshTokenHash = auth.HashRefreshToken(newRefreshToken)
	sess.Touch()
	sess.LastSeenAt = sess.UpdatedAt

	if err := s.store.UpdateSession(ctx, sess); err != nil {
		return nil, domainerrors.Wrap(err, "rotate session")
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.AccessTokenDuration().Seconds()),
		SessionID:    sess.ID,
	}, nil
}

// Delete removes a session. Deleting an already-gone session is fine; the
// client's goal state is reached either way.
func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	err := s.store.DeleteSession(ctx, sessionID)
	if err != nil && !domainerrors.Is(err, store.ErrNotFound) {
		return domainerrors.Wrap(err, "delete session")
	}
	return nil
}

// DeleteExpired removes all sessions past their expiry.
func (s *SessionService) DeleteExpired(ctx context.Context) (int, error) {
	return s.store.DeleteExpiredSessions(ctx)
}
