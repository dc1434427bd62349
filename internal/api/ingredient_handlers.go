package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerIngredientRoutes() {
	type listIngredientsInput struct {
		Authorization string `header:"Authorization"`
		AssignedOnly  bool   `query:"assigned_only" doc:"Only ingredients linked to at least one recipe"`
	}
	type listIngredientsOutput struct {
		Body []IngredientResponse
	}
	huma.Register(s.api, huma.Operation{
		OperationID: "list-ingredients",
		Method:      http.MethodGet,
		Path:        "/api/v1/ingredients",
		Summary:     "List the caller's ingredients",
		Tags:        []string{"Ingredients"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *listIngredientsInput) (*listIngredientsOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		ingredients, err := s.services.Ingredients.List(ctx, userID, input.AssignedOnly)
		if err != nil {
			return nil, err
		}
		return &listIngredientsOutput{Body: mapIngredients(ingredients)}, nil
	})

	type getIngredientInput struct {
		Authorization string `header:"Authorization"`
		ID            string `path:"id"`
	}
	type ingredientOutput struct {
		Body IngredientResponse
	}
	huma.Register(s.api, huma.Operation{
		OperationID: "get-ingredient",
		Method:      http.MethodGet,
		Path:        "/api/v1/ingredients/{id}",
		Summary:     "Get an ingredient",
		Tags:        []string{"Ingredients"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *getIngredientInput) (*ingredientOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		ing, err := s.services.Ingredients.Get(ctx, userID, input.ID)
		if err != nil {
			return nil, err
		}
		return &ingredientOutput{Body: IngredientResponse{ID: ing.ID, Name: ing.Name}}, nil
	})

	type renameIngredientInput struct {
		Authorization string `header:"Authorization"`
		ID            string `path:"id"`
		Body          RenameAttributeBody
	}
	huma.Register(s.api, huma.Operation{
		OperationID: "rename-ingredient",
		Method:      http.MethodPatch,
		Path:        "/api/v1/ingredients/{id}",
		Summary:     "Rename an ingredient",
		Tags:        []string{"Ingredients"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *renameIngredientInput) (*ingredientOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		ing, err := s.services.Ingredients.Rename(ctx, userID, input.ID, input.Body.Name)
		if err != nil {
			return nil, err
		}
		return &ingredientOutput{Body: IngredientResponse{ID: ing.ID, Name: ing.Name}}, nil
	})

	type deleteIngredientInput struct {
		Authorization string `header:"Authorization"`
		ID            string `path:"id"`
	}
	type deleteIngredientOutput struct{}
	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-ingredient",
		Method:        http.MethodDelete,
		Path:          "/api/v1/ingredients/{id}",
		Summary:       "Delete an ingredient",
		Tags:          []string{"Ingredients"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *deleteIngredientInput) (*deleteIngredientOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		if err := s.services.Ingredients.Delete(ctx, userID, input.ID); err != nil {
			return nil, err
		}
		return &deleteIngredientOutput{}, nil
	})
}
