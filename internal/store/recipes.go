package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/platefulapp/plateful-server/internal/domain"
)

// RecipeFilter narrows a recipe listing. ID lists are OR-ed within a
// dimension and AND-ed across dimensions; an empty list means "no filter
// on that dimension".
type RecipeFilter struct {
	TagIDs        []string
	IngredientIDs []string
}

// recipeColumns is the ordered column list for recipe queries.
// Must match the scan order in scanRecipe.
const recipeColumns = `id, user_id, created_at, updated_at, title, time_minutes,
	price, description, link, image_path, image_blur_hash`

// scanRecipe scans a row into a domain.Recipe. Linked tags and ingredients
// are not loaded here.
func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*domain.Recipe, error) {
	var r domain.Recipe

	var (
		createdAt     string
		updatedAt     string
		imagePath     sql.NullString
		imageBlurHash sql.NullString
	)

	err := scanner.Scan(
		&r.ID,
		&r.UserID,
		&createdAt,
		&updatedAt,
		&r.Title,
		&r.TimeMinutes,
		&r.Price,
		&r.Description,
		&r.Link,
		&imagePath,
		&imageBlurHash,
	)
	if err != nil {
		return nil, err
	}

	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	if imagePath.Valid {
		r.ImagePath = imagePath.String
	}
	if imageBlurHash.Valid {
		r.ImageBlurHash = imageBlurHash.String
	}

	return &r, nil
}

// CreateRecipe inserts a new recipe. Links are managed separately via
// SetRecipeTags/SetRecipeIngredients.
func (s *Store) CreateRecipe(ctx context.Context, r *domain.Recipe) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recipes (id, user_id, created_at, updated_at, title, time_minutes,
			price, description, link, image_path, image_blur_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.UserID,
		formatTime(r.CreatedAt),
		formatTime(r.UpdatedAt),
		r.Title,
		r.TimeMinutes,
		r.Price,
		r.Description,
		r.Link,
		nullString(r.ImagePath),
		nullString(r.ImageBlurHash),
	)
	return err
}

// GetRecipe retrieves a recipe by ID, scoped to its owner.
// Returns ErrNotFound if the recipe does not exist or belongs to another
// user; ownership misses are indistinguishable from absence.
func (s *Store) GetRecipe(ctx context.Context, userID, recipeID string) (*domain.Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ? AND user_id = ?`,
		recipeID, userID)

	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListRecipes returns a user's recipes matching the filter, most recently
// created first. Each filter dimension adds an EXISTS clause over the join
// table, so a recipe matching several IDs in one dimension still appears
// once. Always returns an empty slice rather than nil.
func (s *Store) ListRecipes(ctx context.Context, userID string, filter RecipeFilter) ([]*domain.Recipe, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + recipeColumns + ` FROM recipes WHERE user_id = ?`)
	args := []any{userID}

	if len(filter.TagIDs) > 0 {
		sb.WriteString(` AND EXISTS (SELECT 1 FROM recipe_tags rt
			WHERE rt.recipe_id = recipes.id AND rt.tag_id IN (` + placeholders(len(filter.TagIDs)) + `))`)
		for _, tagID := range filter.TagIDs {
			args = append(args, tagID)
		}
	}

	if len(filter.IngredientIDs) > 0 {
		sb.WriteString(` AND EXISTS (SELECT 1 FROM recipe_ingredients ri
			WHERE ri.recipe_id = recipes.id AND ri.ingredient_id IN (` + placeholders(len(filter.IngredientIDs)) + `))`)
		for _, ingredientID := range filter.IngredientIDs {
			args = append(args, ingredientID)
		}
	}

	sb.WriteString(` ORDER BY created_at DESC, id DESC`)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := []*domain.Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recipes, nil
}

// UpdateRecipe performs a full row update, scoped to the recipe's owner.
// Returns ErrNotFound if the recipe does not exist or belongs to another
// user.
func (s *Store) UpdateRecipe(ctx context.Context, r *domain.Recipe) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE recipes SET
			updated_at = ?,
			title = ?,
			time_minutes = ?,
			price = ?,
			description = ?,
			link = ?,
			image_path = ?,
			image_blur_hash = ?
		WHERE id = ? AND user_id = ?`,
		formatTime(r.UpdatedAt),
		r.Title,
		r.TimeMinutes,
		r.Price,
		r.Description,
		r.Link,
		nullString(r.ImagePath),
		nullString(r.ImageBlurHash),
		r.ID,
		r.UserID,
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

// DeleteRecipe removes a recipe, scoped to its owner. Join rows are removed
// by the ON DELETE CASCADE constraints; tag and ingredient rows survive.
// Returns ErrNotFound if the recipe does not exist or belongs to another
// user.
func (s *Store) DeleteRecipe(ctx context.Context, userID, recipeID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM recipes WHERE id = ? AND user_id = ?`, recipeID, userID)
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

// placeholders builds a "?, ?, ?" list of the given length for IN clauses.
func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
