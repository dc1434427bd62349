package service

import (
	"context"
	"log/slog"

	"github.com/platefulapp/plateful-server/internal/domain"
	domainerrors "github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/id"
	"github.com/platefulapp/plateful-server/internal/media/images"
	"github.com/platefulapp/plateful-server/internal/normalize"
	"github.com/platefulapp/plateful-server/internal/search"
	"github.com/platefulapp/plateful-server/internal/store"
	"github.com/platefulapp/plateful-server/internal/validation"
)

// RecipeService manages recipe aggregates: the recipe row, its attribute
// links, its image and its search document.
type RecipeService struct {
	store    *store.Store
	images   *images.Storage
	search   *search.Index
	validate *validation.Validator
	logger   *slog.Logger
}

// NewRecipeService creates a recipe service.
func NewRecipeService(st *store.Store, imgStorage *images.Storage, idx *search.Index, logger *slog.Logger) *RecipeService {
	return &RecipeService{
		store:    st,
		images:   imgStorage,
		search:   idx,
		validate: validation.New(),
		logger:   logger,
	}
}

// AttributeInput names a tag or ingredient inside a recipe payload.
type AttributeInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

// CreateRecipeRequest creates a recipe with optional attribute links.
type CreateRecipeRequest struct {
	Title       string           `json:"title" validate:"required,max=255"`
	TimeMinutes int              `json:"time_minutes" validate:"gte=0"`
	Price       string           `json:"price" validate:"required"`
	Description string           `json:"description"`
	Link        string           `json:"link" validate:"omitempty,max=255"`
	Tags        []AttributeInput `json:"tags" validate:"dive"`
	Ingredients []AttributeInput `json:"ingredients" validate:"dive"`
}

// UpdateRecipeRequest changes a recipe. Field presence is meaningful: nil
// leaves a field untouched, and a present tags/ingredients key (even empty)
// replaces the whole linked set.
type UpdateRecipeRequest struct {
	Title       *string           `json:"title" validate:"omitempty,max=255"`
	TimeMinutes *int              `json:"time_minutes" validate:"omitempty,gte=0"`
	Price       *string           `json:"price"`
	Description *string           `json:"description"`
	Link        *string           `json:"link" validate:"omitempty,max=255"`
	Tags        *[]AttributeInput `json:"tags" validate:"omitempty,dive"`
	Ingredients *[]AttributeInput `json:"ingredients" validate:"omitempty,dive"`
}

// Create validates and persists a new recipe, resolving attribute names to
// the caller's existing tags and ingredients or creating them.
func (s *RecipeService) Create(ctx context.Context, userID string, req CreateRecipeRequest) (*domain.Recipe, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	price, err := NormalizePrice(req.Price)
	if err != nil {
		return nil, err
	}

	tagNames, err := canonicalNames(req.Tags, "tags")
	if err != nil {
		return nil, err
	}
	ingredientNames, err := canonicalNames(req.Ingredients, "ingredients")
	if err != nil {
		return nil, err
	}

	recipe := &domain.Recipe{
		ID:          id.MustGenerate(id.PrefixRecipe),
		UserID:      userID,
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       price,
		Description: req.Description,
		Link:        req.Link,
	}
	recipe.InitTimestamps()

	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		return nil, domainerrors.Wrap(err, "create recipe")
	}

	if err := s.linkTags(ctx, userID, recipe.ID, tagNames); err != nil {
		return nil, err
	}
	if err := s.linkIngredients(ctx, userID, recipe.ID, ingredientNames); err != nil {
		return nil, err
	}

	if err := s.loadLinks(ctx, recipe); err != nil {
		return nil, err
	}
	s.indexRecipe(recipe)

	return recipe, nil
}

// Get loads the full recipe aggregate, owner-scoped.
func (s *RecipeService) Get(ctx context.Context, userID, recipeID string) (*domain.Recipe, error) {
	recipe, err := s.store.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, mapStoreErr(err, "recipe")
	}
	if err := s.loadLinks(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// List returns the caller's recipes matching the filter, newest first, with
// attribute links loaded.
func (s *RecipeService) List(ctx context.Context, userID string, filter store.RecipeFilter) ([]*domain.Recipe, error) {
	recipes, err := s.store.ListRecipes(ctx, userID, filter)
	if err != nil {
		return nil, domainerrors.Wrap(err, "list recipes")
	}
	for _, r := range recipes {
		if err := s.loadLinks(ctx, r); err != nil {
			return nil, err
		}
	}
	return recipes, nil
}

// Update applies a full (PUT) or partial (PATCH) update. A full update
// additionally requires title, time_minutes and price to be present. Any
// owner field in the payload was already discarded by the API layer; the
// recipe's owner never changes.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID string, req UpdateRecipeRequest, full bool) (*domain.Recipe, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	if full {
		missing := map[string]string{}
		if req.Title == nil {
			missing["title"] = "is required"
		}
		if req.TimeMinutes == nil {
			missing["time_minutes"] = "is required"
		}
		if req.Price == nil {
			missing["price"] = "is required"
		}
		if len(missing) > 0 {
			return nil, domainerrors.ValidationWithDetails("validation failed", missing)
		}
	}

	recipe, err := s.store.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, mapStoreErr(err, "recipe")
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		price, err := NormalizePrice(*req.Price)
		if err != nil {
			return nil, err
		}
		recipe.Price = price
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}
	recipe.Touch()

	if err := s.store.UpdateRecipe(ctx, recipe); err != nil {
		return nil, mapStoreErr(err, "recipe")
	}

	if req.Tags != nil {
		tagNames, err := canonicalNames(*req.Tags, "tags")
		if err != nil {
			return nil, err
		}
		if err := s.linkTags(ctx, userID, recipe.ID, tagNames); err != nil {
			return nil, err
		}
	}
	if req.Ingredients != nil {
		ingredientNames, err := canonicalNames(*req.Ingredients, "ingredients")
		if err != nil {
			return nil, err
		}
		if err := s.linkIngredients(ctx, userID, recipe.ID, ingredientNames); err != nil {
			return nil, err
		}
	}

	if err := s.loadLinks(ctx, recipe); err != nil {
		return nil, err
	}
	s.indexRecipe(recipe)

	return recipe, nil
}

// Delete removes a recipe, its stored image and its search document.
// Linked tags and ingredients survive; only the links go away.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID string) error {
	recipe, err := s.store.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return mapStoreErr(err, "recipe")
	}

	if err := s.store.DeleteRecipe(ctx, userID, recipeID); err != nil {
		return mapStoreErr(err, "recipe")
	}

	if recipe.HasImage() {
		if err := s.images.Delete(recipe.ImagePath); err != nil {
			s.logger.Warn("Failed to delete recipe image", "recipe_id", recipeID, "error", err)
		}
	}
	if err := s.search.DeleteRecipe(recipeID); err != nil {
		s.logger.Warn("Failed to deindex recipe", "recipe_id", recipeID, "error", err)
	}

	return nil
}

// AttachImage validates, stores and links an uploaded image, replacing any
// previous one. The recipe itself is untouched when the upload is invalid.
func (s *RecipeService) AttachImage(ctx context.Context, userID, recipeID string, data []byte) (*domain.Recipe, error) {
	recipe, err := s.store.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, mapStoreErr(err, "recipe")
	}

	img, ext, err := images.Decode(data)
	if err != nil {
		return nil, domainerrors.Validation("uploaded file is not a supported image (jpeg, png, gif, webp)")
	}

	blurHash, err := images.ComputeBlurHash(img)
	if err != nil {
		s.logger.Warn("Failed to compute blur hash", "recipe_id", recipeID, "error", err)
		blurHash = ""
	}

	name, err := s.images.Save(data, ext)
	if err != nil {
		return nil, domainerrors.Wrap(err, "store image")
	}

	previous := recipe.ImagePath
	recipe.ImagePath = name
	recipe.ImageBlurHash = blurHash
	recipe.Touch()

	if err := s.store.UpdateRecipe(ctx, recipe); err != nil {
		// Roll back the orphaned file; the old image stays linked.
		if rmErr := s.images.Delete(name); rmErr != nil {
			s.logger.Warn("Failed to remove orphaned image", "file", name, "error", rmErr)
		}
		return nil, mapStoreErr(err, "recipe")
	}

	if previous != "" && previous != name {
		if err := s.images.Delete(previous); err != nil {
			s.logger.Warn("Failed to delete replaced image", "file", previous, "error", err)
		}
	}

	if err := s.loadLinks(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetImage returns the stored image bytes for a recipe.
func (s *RecipeService) GetImage(ctx context.Context, userID, recipeID string) ([]byte, error) {
	recipe, err := s.store.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, mapStoreErr(err, "recipe")
	}
	if !recipe.HasImage() {
		return nil, domainerrors.NotFound("recipe has no image")
	}

	data, err := s.images.Get(recipe.ImagePath)
	if err != nil {
		return nil, domainerrors.Wrap(err, "read image")
	}
	return data, nil
}

// Search runs a full-text query over the caller's recipes and loads the
// matching aggregates in relevance order.
func (s *RecipeService) Search(ctx context.Context, userID, query string, limit int) ([]*domain.Recipe, error) {
	if query == "" {
		return nil, domainerrors.Validation("query parameter q is required")
	}

	hits, err := s.search.Search(ctx, userID, query, limit)
	if err != nil {
		return nil, domainerrors.Wrap(err, "search recipes")
	}

	recipes := make([]*domain.Recipe, 0, len(hits))
	for _, hit := range hits {
		recipe, err := s.store.GetRecipe(ctx, userID, hit.RecipeID)
		if err != nil {
			// Stale index entry; skip it.
			if domainerrors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, domainerrors.Wrap(err, "load search hit")
		}
		if err := s.loadLinks(ctx, recipe); err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

// canonicalNames normalizes and dedupes attribute names, preserving first
// occurrence order. An empty name after normalization is a validation error.
func canonicalNames(inputs []AttributeInput, field string) ([]string, error) {
	seen := make(map[string]bool, len(inputs))
	names := make([]string, 0, len(inputs))
	for _, in := range inputs {
		name := normalize.Name(in.Name)
		if name == "" {
			return nil, domainerrors.ValidationWithDetails("validation failed",
				map[string]string{field: "names must not be empty"})
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names, nil
}

// linkTags resolves tag names via get-or-create and replaces the recipe's
// tag links.
func (s *RecipeService) linkTags(ctx context.Context, userID, recipeID string, names []string) error {
	tagIDs := make([]string, 0, len(names))
	for _, name := range names {
		tag, _, err := s.store.GetOrCreateTag(ctx, userID, name)
		if err != nil {
			return domainerrors.Wrap(err, "resolve tag")
		}
		tagIDs = append(tagIDs, tag.ID)
	}
	if err := s.store.SetRecipeTags(ctx, recipeID, tagIDs); err != nil {
		return domainerrors.Wrap(err, "link tags")
	}
	return nil
}

// linkIngredients resolves ingredient names via get-or-create and replaces
// the recipe's ingredient links.
func (s *RecipeService) linkIngredients(ctx context.Context, userID, recipeID string, names []string) error {
	ingredientIDs := make([]string, 0, len(names))
	for _, name := range names {
		ing, _, err := s.store.GetOrCreateIngredient(ctx, userID, name)
		if err != nil {
			return domainerrors.Wrap(err, "resolve ingredient")
		}
		ingredientIDs = append(ingredientIDs, ing.ID)
	}
	if err := s.store.SetRecipeIngredients(ctx, recipeID, ingredientIDs); err != nil {
		return domainerrors.Wrap(err, "link ingredients")
	}
	return nil
}

// loadLinks populates the recipe's Tags and Ingredients.
func (s *RecipeService) loadLinks(ctx context.Context, recipe *domain.Recipe) error {
	tags, err := s.store.GetRecipeTags(ctx, recipe.ID)
	if err != nil {
		return domainerrors.Wrap(err, "load recipe tags")
	}
	ingredients, err := s.store.GetRecipeIngredients(ctx, recipe.ID)
	if err != nil {
		return domainerrors.Wrap(err, "load recipe ingredients")
	}
	recipe.Tags = tags
	recipe.Ingredients = ingredients
	return nil
}

// indexRecipe updates the search document. Indexing is best-effort and
// never fails the write that triggered it.
func (s *RecipeService) indexRecipe(recipe *domain.Recipe) {
	if err := s.search.IndexRecipe(search.RecipeToDocument(recipe)); err != nil {
		s.logger.Warn("Failed to index recipe", "recipe_id", recipe.ID, "error", err)
	}
}
