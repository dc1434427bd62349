package store

import (
	"context"
	"database/sql"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/id"
)

// ingredientColumns is the ordered column list for ingredient queries.
// Must match the scan order in scanIngredient.
const ingredientColumns = `id, user_id, created_at, updated_at, name`

// scanIngredient scans a row into a domain.Ingredient.
func scanIngredient(scanner interface{ Scan(dest ...any) error }) (*domain.Ingredient, error) {
	var ing domain.Ingredient

	var createdAt, updatedAt string

	err := scanner.Scan(&ing.ID, &ing.UserID, &createdAt, &updatedAt, &ing.Name)
	if err != nil {
		return nil, err
	}

	if ing.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if ing.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &ing, nil
}

// CreateIngredient inserts a new ingredient.
func (s *Store) CreateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingredients (id, user_id, created_at, updated_at, name)
		VALUES (?, ?, ?, ?, ?)`,
		ing.ID,
		ing.UserID,
		formatTime(ing.CreatedAt),
		formatTime(ing.UpdatedAt),
		ing.Name,
	)
	return err
}

// GetIngredient retrieves an ingredient by ID, scoped to its owner.
// Returns ErrNotFound if it does not exist or belongs to another user.
func (s *Store) GetIngredient(ctx context.Context, userID, ingredientID string) (*domain.Ingredient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id = ? AND user_id = ?`,
		ingredientID, userID)

	ing, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// GetIngredientByName retrieves a user's ingredient by exact (canonicalized)
// name. When duplicate rows exist for the name, the most recent one wins.
// Returns ErrNotFound if no ingredient matches.
func (s *Store) GetIngredientByName(ctx context.Context, userID, name string) (*domain.Ingredient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients
		 WHERE user_id = ? AND name = ?
		 ORDER BY created_at DESC, id DESC LIMIT 1`, userID, name)

	ing, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// GetOrCreateIngredient finds a user's ingredient by name or creates it.
// The boolean reports whether a new row was inserted.
func (s *Store) GetOrCreateIngredient(ctx context.Context, userID, name string) (*domain.Ingredient, bool, error) {
	if ing, err := s.GetIngredientByName(ctx, userID, name); err == nil {
		return ing, false, nil
	} else if err != ErrNotFound {
		return nil, false, err
	}

	ingredientID, err := id.Generate(id.PrefixIngredient)
	if err != nil {
		return nil, false, err
	}

	ing := &domain.Ingredient{ID: ingredientID, UserID: userID, Name: name}
	ing.InitTimestamps()

	if err := s.CreateIngredient(ctx, ing); err != nil {
		return nil, false, err
	}
	return ing, true, nil
}

// ListIngredients returns a user's ingredients ordered by name descending.
// When assignedOnly is set, only ingredients linked to at least one recipe
// are returned. Always returns an empty slice rather than nil.
func (s *Store) ListIngredients(ctx context.Context, userID string, assignedOnly bool) ([]*domain.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE user_id = ?`
	if assignedOnly {
		query += ` AND EXISTS (SELECT 1 FROM recipe_ingredients ri WHERE ri.ingredient_id = ingredients.id)`
	}
	query += ` ORDER BY name DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ingredients := []*domain.Ingredient{}
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ingredients, nil
}

// UpdateIngredient updates an ingredient's name, scoped to its owner.
// Returns ErrNotFound if it does not exist or belongs to another user.
func (s *Store) UpdateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE ingredients SET updated_at = ?, name = ?
		WHERE id = ? AND user_id = ?`,
		formatTime(ing.UpdatedAt),
		ing.Name,
		ing.ID,
		ing.UserID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteIngredient removes an ingredient and its recipe links, scoped to
// its owner. Returns ErrNotFound if it does not exist or belongs to
// another user.
func (s *Store) DeleteIngredient(ctx context.Context, userID, ingredientID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM ingredients WHERE id = ? AND user_id = ?`, ingredientID, userID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRecipeIngredients replaces the full set of ingredients linked to a recipe.
func (s *Store) SetRecipeIngredients(ctx context.Context, recipeID string, ingredientIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipeID); err != nil {
		return err
	}

	for _, ingredientID := range ingredientIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO recipe_ingredients (recipe_id, ingredient_id) VALUES (?, ?)`,
			recipeID, ingredientID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRecipeIngredients returns the ingredients linked to a recipe, ordered
// by name descending to match ingredient listings.
func (s *Store) GetRecipeIngredients(ctx context.Context, recipeID string) ([]*domain.Ingredient, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+ingredientColumns+` FROM ingredients
		WHERE id IN (SELECT ingredient_id FROM recipe_ingredients WHERE recipe_id = ?)
		ORDER BY name DESC, id DESC`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ingredients := []*domain.Ingredient{}
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ingredients, nil
}
