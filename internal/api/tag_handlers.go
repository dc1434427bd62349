package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RenameAttributeBody renames a tag or ingredient.
type RenameAttributeBody struct {
	Name string `json:"name,omitempty"`
}

func (s *Server) registerTagRoutes() {
	type listTagsInput struct {
		Authorization string `header:"Authorization"`
		AssignedOnly  bool   `query:"assigned_only" doc:"Only tags linked to at least one recipe"`
	}
	type listTagsOutput struct {
		Body []TagResponse
	}
	huma.Register(s.api, huma.Operation{
		OperationID: "list-tags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List the caller's tags",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *listTagsInput) (*listTagsOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		tags, err := s.services.Tags.List(ctx, userID, input.AssignedOnly)
		if err != nil {
			return nil, err
		}
		return &listTagsOutput{Body: mapTags(tags)}, nil
	})

	type getTagInput struct {
		Authorization string `header:"Authorization"`
		ID            string `path:"id"`
	}
	type tagOutput struct {
		Body TagResponse
	}
	huma.Register(s.api, huma.Operation{
		OperationID: "get-tag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Get a tag",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *getTagInput) (*tagOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		tag, err := s.services.Tags.Get(ctx, userID, input.ID)
		if err != nil {
			return nil, err
		}
		return &tagOutput{Body: TagResponse{ID: tag.ID, Name: tag.Name}}, nil
	})

	type renameTagInput struct {
		Authorization string `header:"Authorization"`
		ID            string `path:"id"`
		Body          RenameAttributeBody
	}
	huma.Register(s.api, huma.Operation{
		OperationID: "rename-tag",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Rename a tag",
		Description: "The new name is visible through every recipe linked to the tag.",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *renameTagInput) (*tagOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		tag, err := s.services.Tags.Rename(ctx, userID, input.ID, input.Body.Name)
		if err != nil {
			return nil, err
		}
		return &tagOutput{Body: TagResponse{ID: tag.ID, Name: tag.Name}}, nil
	})

	type deleteTagInput struct {
		Authorization string `header:"Authorization"`
		ID            string `path:"id"`
	}
	type deleteTagOutput struct{}
	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-tag",
		Method:        http.MethodDelete,
		Path:          "/api/v1/tags/{id}",
		Summary:       "Delete a tag",
		Description:   "Recipes linked to the tag lose the link but are otherwise untouched.",
		Tags:          []string{"Tags"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *deleteTagInput) (*deleteTagOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		if err := s.services.Tags.Delete(ctx, userID, input.ID); err != nil {
			return nil, err
		}
		return &deleteTagOutput{}, nil
	})
}
