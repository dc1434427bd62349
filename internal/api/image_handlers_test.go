package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// uploadImage posts a multipart form to the raw chi endpoint.
func (ts *apiTestServer) uploadImage(t *testing.T, token, recipeID, field string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, "photo.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/"+recipeID+"/upload-image", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	return rec
}

func (ts *apiTestServer) getImage(t *testing.T, token, recipeID string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes/"+recipeID+"/image", http.NoBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	return rec
}

func TestUploadImage_Roundtrip(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")
	recipe := ts.createRecipe(t, token, map[string]any{"title": "Photogenic"})

	imgData := testPNG(t)
	rec := ts.uploadImage(t, token, recipe.ID, "image", imgData)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope testEnvelope[RecipeDetail]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.True(t, envelope.Data.HasImage)
	assert.NotEmpty(t, envelope.Data.ImageBlurHash)

	get := ts.getImage(t, token, recipe.ID)
	assert.Equal(t, http.StatusOK, get.Code)
	assert.Equal(t, "image/png", get.Header().Get("Content-Type"))
	assert.NotEmpty(t, get.Body.Bytes())
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")
	recipe := ts.createRecipe(t, token, map[string]any{"title": "Photogenic"})

	rec := ts.uploadImage(t, token, recipe.ID, "image", []byte("definitely not an image"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION", envelope.Code)

	// The recipe still has no image.
	resp := ts.api.Get("/api/v1/recipes/"+recipe.ID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var detail testEnvelope[RecipeDetail]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &detail))
	assert.False(t, detail.Data.HasImage)
}

func TestUploadImage_WrongField(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")
	recipe := ts.createRecipe(t, token, map[string]any{"title": "Photogenic"})

	rec := ts.uploadImage(t, token, recipe.ID, "file", testPNG(t))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImage_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")
	recipe := ts.createRecipe(t, token, map[string]any{"title": "Photogenic"})

	rec := ts.uploadImage(t, "", recipe.ID, "image", testPNG(t))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUploadImage_CrossOwnerIs404(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")
	otherToken := ts.registerAndLogin(t, "other@example.com")
	recipe := ts.createRecipe(t, token, map[string]any{"title": "Photogenic"})

	rec := ts.uploadImage(t, otherToken, recipe.ID, "image", testPNG(t))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetImage_NoImage(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")
	recipe := ts.createRecipe(t, token, map[string]any{"title": "Plain"})

	rec := ts.getImage(t, token, recipe.ID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
