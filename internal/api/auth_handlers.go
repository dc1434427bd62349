package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platefulapp/plateful-server/internal/auth"
	"github.com/platefulapp/plateful-server/internal/service"
)

// RegisterBody creates an account. Field requirements are enforced in the
// service layer so violations come back as 400s with field details.
type RegisterBody struct {
	Email    string `json:"email,omitempty" doc:"Email address, unique per server"`
	Password string `json:"password,omitempty" doc:"At least 5 characters"`
	Name     string `json:"name,omitempty"`
}

// LoginBody authenticates an account.
type LoginBody struct {
	Email    string          `json:"email,omitempty"`
	Password string          `json:"password,omitempty"`
	Client   auth.ClientInfo `json:"client,omitempty"`
}

// RefreshBody exchanges a refresh token.
type RefreshBody struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

// LogoutBody ends a session.
type LogoutBody struct {
	SessionID string `json:"session_id,omitempty"`
}

func (s *Server) registerAuthRoutes() {
	type registerInput struct {
		XForwardedFor string `header:"X-Forwarded-For"`
		XRealIP       string `header:"X-Real-IP"`
		Body          RegisterBody
	}
	type registerOutput struct {
		Body UserResponse
	}
	huma.Register(s.api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/register",
		Summary:       "Register a new account",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *registerInput) (*registerOutput, error) {
		if err := s.checkAuthRateLimit(extractIP(input.XForwardedFor, input.XRealIP)); err != nil {
			return nil, err
		}

		user, err := s.services.Auth.Register(ctx, service.RegisterRequest{
			Email:    input.Body.Email,
			Password: input.Body.Password,
			Name:     input.Body.Name,
		})
		if err != nil {
			return nil, err
		}

		return &registerOutput{Body: mapUser(user)}, nil
	})

	type loginInput struct {
		XForwardedFor string `header:"X-Forwarded-For"`
		XRealIP       string `header:"X-Real-IP"`
		Body          LoginBody
	}
	type loginOutput struct {
		Body AuthResponse
	}
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Log in and receive a token pair",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *loginInput) (*loginOutput, error) {
		ip := extractIP(input.XForwardedFor, input.XRealIP)
		if err := s.checkAuthRateLimit(ip); err != nil {
			return nil, err
		}

		user, pair, err := s.services.Auth.Login(ctx, service.LoginRequest{
			Email:    input.Body.Email,
			Password: input.Body.Password,
			Client:   input.Body.Client,
		}, ip)
		if err != nil {
			return nil, err
		}

		return &loginOutput{Body: mapAuthResponse(user, pair)}, nil
	})

	type refreshInput struct {
		Body RefreshBody
	}
	type refreshOutput struct {
		Body AuthResponse
	}
	huma.Register(s.api, huma.Operation{
		OperationID: "refresh",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/refresh",
		Summary:     "Rotate a refresh token into a new pair",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *refreshInput) (*refreshOutput, error) {
		pair, err := s.services.Auth.Refresh(ctx, input.Body.RefreshToken)
		if err != nil {
			return nil, err
		}

		// The user inside the response keeps clients from a second round trip.
		sess, err := s.store.GetSession(ctx, pair.SessionID)
		if err != nil {
			return nil, err
		}
		user, err := s.services.Users.Get(ctx, sess.UserID)
		if err != nil {
			return nil, err
		}

		return &refreshOutput{Body: mapAuthResponse(user, pair)}, nil
	})

	type logoutInput struct {
		Authorization string `header:"Authorization"`
		Body          LogoutBody
	}
	type logoutOutput struct{}
	huma.Register(s.api, huma.Operation{
		OperationID:   "logout",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/logout",
		Summary:       "End a session",
		Tags:          []string{"Auth"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *logoutInput) (*logoutOutput, error) {
		if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
			return nil, err
		}
		if err := s.services.Auth.Logout(ctx, input.Body.SessionID); err != nil {
			return nil, err
		}
		return &logoutOutput{}, nil
	})
}
