package api

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/platefulapp/plateful-server/internal/auth"
	"github.com/platefulapp/plateful-server/internal/config"
	"github.com/platefulapp/plateful-server/internal/media/images"
	"github.com/platefulapp/plateful-server/internal/search"
	"github.com/platefulapp/plateful-server/internal/service"
	"github.com/platefulapp/plateful-server/internal/store"
)

// testEnvelope mirrors the wire envelope for decoding in assertions.
type testEnvelope[T any] struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

// apiTestServer bundles the server with a humatest client.
type apiTestServer struct {
	*Server
	api humatest.TestAPI
}

func setupTestServer(t *testing.T) *apiTestServer {
	t.Helper()

	tmpDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.Open(filepath.Join(tmpDir, "plateful.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	key, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(hex.EncodeToString(key), 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	idx, err := search.NewIndex(search.Options{
		Path:   filepath.Join(tmpDir, "search.bleve"),
		Logger: logger,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	imgStorage, err := images.NewStorage(filepath.Join(tmpDir, "images"))
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:        "127.0.0.1",
			Port:        8080,
			Environment: "development",
			CORSOrigins: []string{"*"},
		},
		Auth: config.AuthConfig{
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 30 * 24 * time.Hour,
		},
	}

	sessions := service.NewSessionService(st, tokens, logger)
	services := Services{
		Auth:        service.NewAuthService(st, tokens, sessions, logger),
		Users:       service.NewUserService(st, logger),
		Recipes:     service.NewRecipeService(st, imgStorage, idx, logger),
		Tags:        service.NewTagService(st, logger),
		Ingredients: service.NewIngredientService(st, logger),
		Sessions:    sessions,
	}

	s := NewServer(cfg, st, idx, services, logger)

	return &apiTestServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
	}
}

// registerAndLogin creates an account and returns a valid access token.
func (ts *apiTestServer) registerAndLogin(t *testing.T, email string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    email,
		"password": "password123",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, resp.Code, "register failed: %s", resp.Body.String())

	resp = ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.Code, "login failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)

	return envelope.Data.AccessToken
}

// createRecipe posts a recipe and returns the detail body.
func (ts *apiTestServer) createRecipe(t *testing.T, token string, body map[string]any) RecipeDetail {
	t.Helper()

	if _, ok := body["title"]; !ok {
		body["title"] = "Sample Recipe"
	}
	if _, ok := body["time_minutes"]; !ok {
		body["time_minutes"] = 22
	}
	if _, ok := body["price"]; !ok {
		body["price"] = "5.25"
	}

	resp := ts.api.Post("/api/v1/recipes", body, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code, "create recipe failed: %s", resp.Body.String())

	var envelope testEnvelope[RecipeDetail]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data
}
