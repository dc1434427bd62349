package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	domainerrors "github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/http/response"
)

// maxImageUploadSize caps recipe image uploads at 10MB.
const maxImageUploadSize = 10 << 20

// registerImageRoutes mounts the two binary endpoints directly on chi.
// Huma's typed bodies fit JSON, not multipart forms or raw image bytes.
func (s *Server) registerImageRoutes() {
	s.router.Post("/api/v1/recipes/{id}/upload-image", s.handleUploadImage)
	s.router.Get("/api/v1/recipes/{id}/image", s.handleGetImage)
}

// handleUploadImage accepts a multipart form with an "image" field and
// attaches the decoded image to the recipe.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.authenticateChiRequest(r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	recipeID := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadSize)
	if err := r.ParseMultipartForm(maxImageUploadSize); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION", "failed to parse form data", nil, s.logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION", "no file uploaded, use 'image' field in multipart form", nil, s.logger)
		return
	}
	defer file.Close()

	if header.Size > maxImageUploadSize {
		response.Error(w, http.StatusBadRequest, "VALIDATION", "file too large, maximum size is 10MB", nil, s.logger)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("Failed to read uploaded file", "error", err, "recipe_id", recipeID)
		response.Error(w, http.StatusInternalServerError, "INTERNAL", "failed to read uploaded file", nil, s.logger)
		return
	}

	recipe, err := s.services.Recipes.AttachImage(ctx, userID, recipeID, data)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	s.logger.Info("Recipe image uploaded",
		"recipe_id", recipeID,
		"user_id", userID,
		"size", header.Size,
	)

	response.Success(w, mapRecipeDetail(recipe), s.logger)
}

// handleGetImage streams the recipe's image bytes.
func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.authenticateChiRequest(r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	recipeID := chi.URLParam(r, "id")

	data, err := s.services.Recipes.GetImage(ctx, userID, recipeID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("Failed to write image response", "error", err, "recipe_id", recipeID)
	}
}

// authenticateChiRequest is the coded-error twin of authenticateRequest for
// handlers outside the OpenAPI layer.
func (s *Server) authenticateChiRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", domainerrors.Unauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", domainerrors.Unauthorized("invalid authorization header format")
	}

	user, _, err := s.services.Auth.VerifyAccessToken(r.Context(), parts[1])
	if err != nil {
		return "", err
	}
	return user.ID, nil
}
