package service

import (
	"context"
	"log/slog"

	"github.com/platefulapp/plateful-server/internal/domain"
	domainerrors "github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/normalize"
	"github.com/platefulapp/plateful-server/internal/store"
)

// IngredientService manages ingredients as standalone resources, mirroring
// TagService.
type IngredientService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewIngredientService creates an ingredient service.
func NewIngredientService(st *store.Store, logger *slog.Logger) *IngredientService {
	return &IngredientService{store: st, logger: logger}
}

// List returns the caller's ingredients, name-descending. assignedOnly
// restricts the result to ingredients linked to at least one recipe.
func (s *IngredientService) List(ctx context.Context, userID string, assignedOnly bool) ([]*domain.Ingredient, error) {
	ingredients, err := s.store.ListIngredients(ctx, userID, assignedOnly)
	if err != nil {
		return nil, domainerrors.Wrap(err, "list ingredients")
	}
	return ingredients, nil
}

// Get loads a single ingredient, owner-scoped.
func (s *IngredientService) Get(ctx context.Context, userID, ingredientID string) (*domain.Ingredient, error) {
	ing, err := s.store.GetIngredient(ctx, userID, ingredientID)
	if err != nil {
		return nil, mapStoreErr(err, "ingredient")
	}
	return ing, nil
}

// Rename changes an ingredient's name.
func (s *IngredientService) Rename(ctx context.Context, userID, ingredientID, name string) (*domain.Ingredient, error) {
	name = normalize.Name(name)
	if name == "" {
		return nil, domainerrors.Validation("name must not be empty")
	}

	ing, err := s.store.GetIngredient(ctx, userID, ingredientID)
	if err != nil {
		return nil, mapStoreErr(err, "ingredient")
	}

	ing.Name = name
	ing.Touch()
	if err := s.store.UpdateIngredient(ctx, ing); err != nil {
		return nil, mapStoreErr(err, "ingredient")
	}
	return ing, nil
}

// Delete removes an ingredient and its recipe links.
func (s *IngredientService) Delete(ctx context.Context, userID, ingredientID string) error {
	if err := s.store.DeleteIngredient(ctx, userID, ingredientID); err != nil {
		return mapStoreErr(err, "ingredient")
	}
	return nil
}
