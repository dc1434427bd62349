package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/id"
)

const (
	tokenIssuer   = "plateful-server"
	tokenAudience = "plateful-client"

	// Refresh tokens are opaque random strings, never parsed.
	refreshTokenSize = 32
)

// TokenService issues and verifies PASETO v4.local access tokens and opaque
// refresh tokens.
type TokenService struct {
	key             paseto.V4SymmetricKey
	accessDuration  time.Duration
	refreshDuration time.Duration
}

// NewTokenService creates a token service from a hex-encoded 256-bit key.
func NewTokenService(keyHex string, accessDuration, refreshDuration time.Duration) (*TokenService, error) {
	key, err := paseto.V4SymmetricKeyFromHex(keyHex)
	if err != nil {
		return nil, fmt.Errorf("parse token key: %w", err)
	}

	return &TokenService{
		key:             key,
		accessDuration:  accessDuration,
		refreshDuration: refreshDuration,
	}, nil
}

// GenerateAccessToken creates an encrypted access token for the user.
func (ts *TokenService) GenerateAccessToken(user *domain.User) (string, error) {
	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(user.ID)
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(ts.accessDuration))
	token.SetJti(id.MustGenerate("token"))

	token.SetString("user_id", user.ID)
	token.SetString("email", user.Email)

	return token.V4Encrypt(ts.key, nil), nil
}

// VerifyAccessToken decrypts and validates an access token, returning its
// claims. Expired, tampered or foreign tokens fail verification.
func (ts *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	parser := paseto.NewParser()
	parser.AddRule(
		paseto.ForAudience(tokenAudience),
		paseto.IssuedBy(tokenIssuer),
		paseto.NotExpired(),
		paseto.ValidAt(time.Now()),
	)

	token, err := parser.ParseV4Local(ts.key, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	var claims AccessClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("decode claims: %w", err)
	}

	return &claims, nil
}

// GenerateRefreshToken creates an opaque random refresh token.
func (ts *TokenService) GenerateRefreshToken() (string, error) {
	b := make([]byte, refreshTokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// HashRefreshToken hashes a refresh token for storage. Only the hash is
// ever persisted.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// AccessTokenDuration returns the access token lifetime.
func (ts *TokenService) AccessTokenDuration() time.Duration { return ts.accessDuration }

// RefreshTokenDuration returns the refresh token lifetime.
func (ts *TokenService) RefreshTokenDuration() time.Duration { return ts.refreshDuration }
