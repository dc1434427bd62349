package store

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/id"
)

// newTestStore opens a store backed by a temp-dir database.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := Open(filepath.Join(t.TempDir(), "plateful.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

// createTestUser inserts a user and returns it.
func createTestUser(t *testing.T, s *Store, email string) *domain.User {
	t.Helper()

	u := &domain.User{
		ID:           id.MustGenerate(id.PrefixUser),
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Name:         "Test User",
	}
	u.InitTimestamps()
	require.NoError(t, s.CreateUser(context.Background(), u))

	return u
}

// createTestRecipe inserts a minimal recipe for the given user.
func createTestRecipe(t *testing.T, s *Store, userID, title string) *domain.Recipe {
	t.Helper()

	r := &domain.Recipe{
		ID:          id.MustGenerate(id.PrefixRecipe),
		UserID:      userID,
		Title:       title,
		TimeMinutes: 22,
		Price:       "5.25",
	}
	r.InitTimestamps()
	require.NoError(t, s.CreateRecipe(context.Background(), r))

	return r
}
