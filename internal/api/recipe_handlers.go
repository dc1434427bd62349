package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platefulapp/plateful-server/internal/service"
	"github.com/platefulapp/plateful-server/internal/store"
)

// AttributeBody names a tag or ingredient inside a recipe payload.
type AttributeBody struct {
	Name string `json:"name,omitempty"`
}

// CreateRecipeBody creates a recipe. Tags and ingredients are given by
// name and resolved against the caller's existing attributes.
type CreateRecipeBody struct {
	Title       string          `json:"title,omitempty"`
	TimeMinutes int             `json:"time_minutes,omitempty"`
	Price       string          `json:"price,omitempty" doc:"Decimal string, e.g. \"5.25\""`
	Description string          `json:"description,omitempty"`
	Link        string          `json:"link,omitempty"`
	Tags        []AttributeBody `json:"tags,omitempty"`
	Ingredients []AttributeBody `json:"ingredients,omitempty"`
	UserID      string          `json:"user_id,omitempty" doc:"Read-only; any supplied value is ignored"`
}

// UpdateRecipeBody changes a recipe. A present tags/ingredients key, even
// empty, replaces the whole linked set; an absent key leaves it alone.
type UpdateRecipeBody struct {
	Title       *string          `json:"title,omitempty"`
	TimeMinutes *int             `json:"time_minutes,omitempty"`
	Price       *string          `json:"price,omitempty"`
	Description *string          `json:"description,omitempty"`
	Link        *string          `json:"link,omitempty"`
	Tags        *[]AttributeBody `json:"tags,omitempty"`
	Ingredients *[]AttributeBody `json:"ingredients,omitempty"`
	UserID      *string          `json:"user_id,omitempty" doc:"Read-only; any supplied value is ignored"`
}

func attributeInputs(bodies []AttributeBody) []service.AttributeInput {
	out := make([]service.AttributeInput, 0, len(bodies))
	for _, b := range bodies {
		out = append(out, service.AttributeInput{Name: b.Name})
	}
	return out
}

func optionalAttributeInputs(bodies *[]AttributeBody) *[]service.AttributeInput {
	if bodies == nil {
		return nil
	}
	inputs := attributeInputs(*bodies)
	return &inputs
}

func (b UpdateRecipeBody) toRequest() service.UpdateRecipeRequest {
	// UserID is deliberately dropped: the owner is write-once.
	return service.UpdateRecipeRequest{
		Title:       b.Title,
		TimeMinutes: b.TimeMinutes,
		Price:       b.Price,
		Description: b.Description,
		Link:        b.Link,
		Tags:        optionalAttributeInputs(b.Tags),
		Ingredients: optionalAttributeInputs(b.Ingredients),
	}
}

func (s *Server) registerRecipeRoutes() {
	type listRecipesInput struct {
		Authorization string `header:"Authorization"`
		Tags          string `query:"tags" doc:"Comma-separated tag IDs; matching any one qualifies"`
		Ingredients   string `query:"ingredients" doc:"Comma-separated ingredient IDs; matching any one qualifies"`
	}
	type listRecipesOutput struct {
		Body []RecipeListItem
	}
	huma.Register(s.api, huma.Operation{
		OperationID: "list-recipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes",
		Summary:     "List the caller's recipes",
		Description: "Filters combine with AND across dimensions and OR within one. Newest first.",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *listRecipesInput) (*listRecipesOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		tagIDs, err := parseIDList("tags", input.Tags)
		if err != nil {
			return nil, err
		}
		ingredientIDs, err := parseIDList("ingredients", input.Ingredients)
		if err != nil {
			return nil, err
		}

		recipes, err := s.services.Recipes.List(ctx, userID, store.RecipeFilter{
			TagIDs:        tagIDs,
			IngredientIDs: ingredientIDs,
		})
		if err != nil {
			return nil, err
		}

		items := make([]RecipeListItem, 0, len(recipes))
		for _, r := range recipes {
			items = append(items, mapRecipeListItem(r))
		}
		return &listRecipesOutput{Body: items}, nil
	})

	type createRecipeInput struct {
		Authorization string `header:"Authorization"`
		Body          CreateRecipeBody
	}
	type recipeOutput struct {
		Body RecipeDetail
	}
	huma.Register(s.api, huma.Operation{
		OperationID:   "create-recipe",
		Method:        http.MethodPost,
		Path:          "/api/v1/recipes",
		Summary:       "Create a recipe",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *createRecipeInput) (*recipeOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		recipe, err := s.services.Recipes.Create(ctx, userID, service.CreateRecipeRequest{
			Title:       input.Body.Title,
			TimeMinutes: input.Body.TimeMinutes,
			Price:       input.Body.Price,
			Description: input.Body.Description,
			Link:        input.Body.Link,
			Tags:        attributeInputs(input.Body.Tags),
			Ingredients: attributeInputs(input.Body.Ingredients),
		})
		if err != nil {
			return nil, err
		}
		return &recipeOutput{Body: mapRecipeDetail(recipe)}, nil
	})

	type searchRecipesInput struct {
		Authorization string `header:"Authorization"`
		Query         string `query:"q" doc:"Search text"`
		Limit         int    `query:"limit" doc:"Maximum results, default 25"`
	}
	type searchRecipesOutput struct {
		Body []RecipeDetail
	}
	huma.Register(s.api, huma.Operation{
		OperationID: "search-recipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/search",
		Summary:     "Full-text search over the caller's recipes",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *searchRecipesInput) (*searchRecipesOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		recipes, err := s.services.Recipes.Search(ctx, userID, input.Query, input.Limit)
		if err != nil {
			return nil, err
		}

		results := make([]RecipeDetail, 0, len(recipes))
		for _, r := range recipes {
			results = append(results, mapRecipeDetail(r))
		}
		return &searchRecipesOutput{Body: results}, nil
	})

	type getRecipeInput struct {
		Authorization string `header:"Authorization"`
		ID            string `path:"id"`
	}
	huma.Register(s.api, huma.Operation{
		OperationID: "get-recipe",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Get a recipe with its tags and ingredients",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *getRecipeInput) (*recipeOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		recipe, err := s.services.Recipes.Get(ctx, userID, input.ID)
		if err != nil {
			return nil, err
		}
		return &recipeOutput{Body: mapRecipeDetail(recipe)}, nil
	})

	type updateRecipeInput struct {
		Authorization string `header:"Authorization"`
		ID            string `path:"id"`
		Body          UpdateRecipeBody
	}
	huma.Register(s.api, huma.Operation{
		OperationID: "replace-recipe",
		Method:      http.MethodPut,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Replace a recipe",
		Description: "Title, time_minutes and price are required on PUT.",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *updateRecipeInput) (*recipeOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		recipe, err := s.services.Recipes.Update(ctx, userID, input.ID, input.Body.toRequest(), true)
		if err != nil {
			return nil, err
		}
		return &recipeOutput{Body: mapRecipeDetail(recipe)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "update-recipe",
		Method:      http.MethodPatch,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Partially update a recipe",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *updateRecipeInput) (*recipeOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		recipe, err := s.services.Recipes.Update(ctx, userID, input.ID, input.Body.toRequest(), false)
		if err != nil {
			return nil, err
		}
		return &recipeOutput{Body: mapRecipeDetail(recipe)}, nil
	})

	type deleteRecipeInput struct {
		Authorization string `header:"Authorization"`
		ID            string `path:"id"`
	}
	type deleteRecipeOutput struct{}
	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-recipe",
		Method:        http.MethodDelete,
		Path:          "/api/v1/recipes/{id}",
		Summary:       "Delete a recipe",
		Description:   "Linked tags and ingredients survive; only the links are removed.",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *deleteRecipeInput) (*deleteRecipeOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		if err := s.services.Recipes.Delete(ctx, userID, input.ID); err != nil {
			return nil, err
		}
		return &deleteRecipeOutput{}, nil
	})
}
