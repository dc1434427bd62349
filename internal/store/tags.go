package store

import (
	"context"
	"database/sql"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/id"
)

// tagColumns is the ordered column list for tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, user_id, created_at, updated_at, name`

// scanTag scans a row into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var createdAt, updatedAt string

	err := scanner.Scan(&t.ID, &t.UserID, &createdAt, &updatedAt, &t.Name)
	if err != nil {
		return nil, err
	}

	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateTag inserts a new tag.
func (s *Store) CreateTag(ctx context.Context, tag *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, user_id, created_at, updated_at, name)
		VALUES (?, ?, ?, ?, ?)`,
		tag.ID,
		tag.UserID,
		formatTime(tag.CreatedAt),
		formatTime(tag.UpdatedAt),
		tag.Name,
	)
	return err
}

// GetTag retrieves a tag by ID, scoped to its owner.
// Returns ErrNotFound if the tag does not exist or belongs to another user.
func (s *Store) GetTag(ctx context.Context, userID, tagID string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ? AND user_id = ?`, tagID, userID)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTagByName retrieves a user's tag by exact (canonicalized) name.
// When duplicate rows exist for the name, the most recent one wins.
// Returns ErrNotFound if no tag matches.
func (s *Store) GetTagByName(ctx context.Context, userID, name string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags
		 WHERE user_id = ? AND name = ?
		 ORDER BY created_at DESC, id DESC LIMIT 1`, userID, name)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetOrCreateTag finds a user's tag by name or creates it.
// The boolean reports whether a new row was inserted.
func (s *Store) GetOrCreateTag(ctx context.Context, userID, name string) (*domain.Tag, bool, error) {
	if t, err := s.GetTagByName(ctx, userID, name); err == nil {
		return t, false, nil
	} else if err != ErrNotFound {
		return nil, false, err
	}

	tagID, err := id.Generate(id.PrefixTag)
	if err != nil {
		return nil, false, err
	}

	t := &domain.Tag{ID: tagID, UserID: userID, Name: name}
	t.InitTimestamps()

	if err := s.CreateTag(ctx, t); err != nil {
		return nil, false, err
	}
	return t, true, nil
}

// ListTags returns a user's tags ordered by name descending.
// When assignedOnly is set, only tags linked to at least one recipe are
// returned. Always returns an empty slice rather than nil.
func (s *Store) ListTags(ctx context.Context, userID string, assignedOnly bool) ([]*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE user_id = ?`
	if assignedOnly {
		query += ` AND EXISTS (SELECT 1 FROM recipe_tags rt WHERE rt.tag_id = tags.id)`
	}
	query += ` ORDER BY name DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

// UpdateTag updates a tag's name, scoped to its owner.
// Returns ErrNotFound if the tag does not exist or belongs to another user.
func (s *Store) UpdateTag(ctx context.Context, tag *domain.Tag) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tags SET updated_at = ?, name = ?
		WHERE id = ? AND user_id = ?`,
		formatTime(tag.UpdatedAt),
		tag.Name,
		tag.ID,
		tag.UserID,
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

// DeleteTag removes a tag and its recipe links, scoped to its owner.
// Returns ErrNotFound if the tag does not exist or belongs to another user.
func (s *Store) DeleteTag(ctx context.Context, userID, tagID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM tags WHERE id = ? AND user_id = ?`, tagID, userID)
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

// SetRecipeTags replaces the full set of tags linked to a recipe.
func (s *Store) SetRecipeTags(ctx context.Context, recipeID string, tagIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipe_tags WHERE recipe_id = ?`, recipeID); err != nil {
		return err
	}

	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO recipe_tags (recipe_id, tag_id) VALUES (?, ?)`,
			recipeID, tagID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRecipeTags returns the tags linked to a recipe, ordered by name
// descending to match tag listings.
func (s *Store) GetRecipeTags(ctx context.Context, recipeID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+tagColumns+` FROM tags
		WHERE id IN (SELECT tag_id FROM recipe_tags WHERE recipe_id = ?)
		ORDER BY name DESC, id DESC`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}
