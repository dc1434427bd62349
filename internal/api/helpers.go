package api

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/platefulapp/plateful-server/internal/errors"
)

// authenticateRequest resolves the Authorization header to a user ID.
func (s *Server) authenticateRequest(ctx context.Context, authHeader string) (string, error) {
	if authHeader == "" {
		return "", huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", huma.Error401Unauthorized("Invalid authorization header format")
	}

	user, _, err := s.services.Auth.VerifyAccessToken(ctx, parts[1])
	if err != nil {
		return "", err
	}

	return user.ID, nil
}

// parseIDList splits a comma-separated filter parameter into IDs. An empty
// parameter means no filter; an empty or whitespace token inside a
// non-empty parameter is a validation error rather than a silent skip.
func parseIDList(param, raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		id := strings.TrimSpace(p)
		if id == "" {
			return nil, domainerrors.Validationf("invalid %s filter: empty id in list", param)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// checkAuthRateLimit admits or rejects an auth attempt for a client IP.
func (s *Server) checkAuthRateLimit(ip string) error {
	if ip == "" {
		ip = "unknown"
	}
	if !s.authLimiter.Allow(ip) {
		s.logger.Warn("Auth rate limit exceeded", "ip", ip)
		return huma.Error429TooManyRequests("Too many attempts. Please try again later.")
	}
	return nil
}

// extractIP picks the client IP from forwarding headers, preferring the
// first X-Forwarded-For entry.
func extractIP(xForwardedFor, xRealIP string) string {
	if xForwardedFor != "" {
		if i := strings.IndexByte(xForwardedFor, ','); i >= 0 {
			return strings.TrimSpace(xForwardedFor[:i])
		}
		return strings.TrimSpace(xForwardedFor)
	}
	return xRealIP
}
