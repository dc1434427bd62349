package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platefulapp/plateful-server/internal/service"
)

// UpdateUserBody changes profile fields; absent fields are untouched.
type UpdateUserBody struct {
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty" doc:"At least 5 characters; replaces the current password"`
}

func (s *Server) registerUserRoutes() {
	type getMeInput struct {
		Authorization string `header:"Authorization"`
	}
	type userOutput struct {
		Body UserResponse
	}
	huma.Register(s.api, huma.Operation{
		OperationID: "get-current-user",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get the authenticated user",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *getMeInput) (*userOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		user, err := s.services.Users.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &userOutput{Body: mapUser(user)}, nil
	})

	type updateMeInput struct {
		Authorization string `header:"Authorization"`
		Body          UpdateUserBody
	}
	huma.Register(s.api, huma.Operation{
		OperationID: "update-current-user",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/me",
		Summary:     "Update the authenticated user's profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *updateMeInput) (*userOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		user, err := s.services.Users.Update(ctx, userID, service.UpdateUserRequest{
			Email:    input.Body.Email,
			Name:     input.Body.Name,
			Password: input.Body.Password,
		})
		if err != nil {
			return nil, err
		}
		return &userOutput{Body: mapUser(user)}, nil
	})
}
