package service

import (
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/platefulapp/plateful-server/internal/auth"
	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/media/images"
	"github.com/platefulapp/plateful-server/internal/search"
	"github.com/platefulapp/plateful-server/internal/store"
)

// testEnv bundles everything the services need, backed by a temp dir.
type testEnv struct {
	store    *store.Store
	images   *images.Storage
	search   *search.Index
	auth     *AuthService
	sessions *SessionService
	users    *UserService
	recipes  *RecipeService
	tags     *TagService
	logger   *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.Open(filepath.Join(dir, "plateful.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	imgStorage, err := images.NewStorage(dir)
	require.NoError(t, err)

	idx, err := search.NewIndex(search.Options{
		Path:   filepath.Join(dir, "search.bleve"),
		Logger: logger,
	})
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	key, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(hex.EncodeToString(key), 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	sessions := NewSessionService(st, tokens, logger)

	return &testEnv{
		store:    st,
		images:   imgStorage,
		search:   idx,
		auth:     NewAuthService(st, tokens, sessions, logger),
		sessions: sessions,
		users:    NewUserService(st, logger),
		recipes:  NewRecipeService(st, imgStorage, idx, logger),
		tags:     NewTagService(st, logger),
		logger:   logger,
	}
}

// registerUser creates an account through the auth service.
func (e *testEnv) registerUser(t *testing.T, email string) *domain.User {
	t.Helper()

	user, err := e.auth.Register(context.Background(), RegisterRequest{
		Email:    email,
		Password: "password123",
		Name:     "Test Cook",
	})
	require.NoError(t, err)
	return user
}

// createRecipe creates a recipe with sample defaults.
func (e *testEnv) createRecipe(t *testing.T, userID string, req CreateRecipeRequest) *domain.Recipe {
	t.Helper()

	if req.Title == "" {
		req.Title = "Sample Recipe"
	}
	if req.TimeMinutes == 0 {
		req.TimeMinutes = 22
	}
	if req.Price == "" {
		req.Price = "5.25"
	}

	recipe, err := e.recipes.Create(context.Background(), userID, req)
	require.NoError(t, err)
	return recipe
}
