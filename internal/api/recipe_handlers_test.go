package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecipe_WithAttributes(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")

	recipe := ts.createRecipe(t, token, map[string]any{
		"title":        "Green Curry",
		"time_minutes": 35,
		"price":        "7.5",
		"description":  "Thai classic",
		"tags":         []map[string]any{{"name": "Thai"}, {"name": "Dinner"}},
		"ingredients":  []map[string]any{{"name": "Coconut Milk"}},
	})

	assert.NotEmpty(t, recipe.ID)
	assert.Equal(t, "Green Curry", recipe.Title)
	// Price is canonicalized to two decimal places.
	assert.Equal(t, "7.50", recipe.Price)
	assert.Len(t, recipe.Tags, 2)
	assert.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "Coconut Milk", recipe.Ingredients[0].Name)
	assert.False(t, recipe.HasImage)
}

func TestCreateRecipe_DeduplicatesAttributeNames(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")

	recipe := ts.createRecipe(t, token, map[string]any{
		"title": "Basil Stir Fry",
		"tags": []map[string]any{
			{"name": "Thai Basil"},
			{"name": "Thai  Basil"},
			{"name": " Thai Basil "},
		},
	})

	// Whitespace-collapsed names dedupe to a single link.
	require.Len(t, recipe.Tags, 1)
	assert.Equal(t, "Thai Basil", recipe.Tags[0].Name)
}

func TestCreateRecipe_ReusesExistingAttribute(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")

	first := ts.createRecipe(t, token, map[string]any{
		"title": "Recipe One",
		"tags":  []map[string]any{{"name": "Vegan"}},
	})
	second := ts.createRecipe(t, token, map[string]any{
		"title": "Recipe Two",
		"tags":  []map[string]any{{"name": "Vegan"}},
	})

	require.Len(t, first.Tags, 1)
	require.Len(t, second.Tags, 1)
	assert.Equal(t, first.Tags[0].ID, second.Tags[0].ID)
}

func TestCreateRecipe_ValidationErrors(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")

	// Missing title.
	resp := ts.api.Post("/api/v1/recipes",
		map[string]any{"time_minutes": 10, "price": "3.00"},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION", envelope.Code)

	// Malformed price.
	resp = ts.api.Post("/api/v1/recipes",
		map[string]any{"title": "Bad Price", "time_minutes": 10, "price": "3.001"},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// Price over the cap.
	resp = ts.api.Post("/api/v1/recipes",
		map[string]any{"title": "Too Dear", "time_minutes": 10, "price": "1000.00"},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateRecipe_IgnoresUserIDInBody(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")

	recipe := ts.createRecipe(t, token, map[string]any{
		"title":   "Owned Recipe",
		"user_id": "usr-someone-else",
	})

	assert.NotEqual(t, "usr-someone-else", recipe.UserID)
	assert.NotEmpty(t, recipe.UserID)
}

func TestListRecipes_NewestFirstAndOwnerScoped(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")
	otherToken := ts.registerAndLogin(t, "other@example.com")

	ts.createRecipe(t, token, map[string]any{"title": "First"})
	ts.createRecipe(t, token, map[string]any{"title": "Second"})
	ts.createRecipe(t, otherToken, map[string]any{"title": "Not Mine"})

	resp := ts.api.Get("/api/v1/recipes", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[[]RecipeListItem]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "Second", envelope.Data[0].Title)
	assert.Equal(t, "First", envelope.Data[1].Title)
}

func TestListRecipes_AttributesAsIDs(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")

	created := ts.createRecipe(t, token, map[string]any{
		"title":       "Tagged",
		"tags":        []map[string]any{{"name": "Quick"}},
		"ingredients": []map[string]any{{"name": "Rice"}},
	})

	resp := ts.api.Get("/api/v1/recipes", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[[]RecipeListItem]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)

	// Listing carries attribute IDs, not nested objects.
	require.Len(t, envelope.Data[0].Tags, 1)
	assert.Equal(t, created.Tags[0].ID, envelope.Data[0].Tags[0])
	require.Len(t, envelope.Data[0].Ingredients, 1)
	assert.Equal(t, created.Ingredients[0].ID, envelope.Data[0].Ingredients[0])
}

func TestListRecipes_Filters(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")

	curry := ts.createRecipe(t, token, map[string]any{
		"title":       "Curry",
		"tags":        []map[string]any{{"name": "Thai"}},
		"ingredients": []map[string]any{{"name": "Coconut Milk"}},
	})
	salad := ts.createRecipe(t, token, map[string]any{
		"title": "Salad",
		"tags":  []map[string]any{{"name": "Fresh"}},
	})

	thaiID := curry.Tags[0].ID
	freshID := salad.Tags[0].ID
	coconutID := curry.Ingredients[0].ID

	// Single tag filter.
	resp := ts.api.Get("/api/v1/recipes?tags="+thaiID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)
	var envelope testEnvelope[[]RecipeListItem]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Curry", envelope.Data[0].Title)

	// OR within a dimension.
	resp = ts.api.Get("/api/v1/recipes?tags="+thaiID+","+freshID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 2)

	// AND across dimensions.
	resp = ts.api.Get("/api/v1/recipes?tags="+freshID+"&ingredients="+coconutID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data)
}

func TestListRecipes_EmptyFilterToken(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")

	resp := ts.api.Get("/api/v1/recipes?tags=tag-abc,,tag-def", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION", envelope.Code)
}

func TestGetRecipe_OwnerScoped(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")
	otherToken := ts.registerAndLogin(t, "other@example.com")

	recipe := ts.createRecipe(t, token, map[string]any{"title": "Private"})

	resp := ts.api.Get("/api/v1/recipes/"+recipe.ID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	// Another user sees 404, not 403, to avoid leaking existence.
	resp = ts.api.Get("/api/v1/recipes/"+recipe.ID, "Authorization: Bearer "+otherToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestPatchRecipe_PartialSemantics(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")

	recipe := ts.createRecipe(t, token, map[string]any{
		"title":       "Original",
		"description": "keep me",
		"tags":        []map[string]any{{"name": "Keep"}},
	})

	// Absent keys stay untouched.
	resp := ts.api.Patch("/api/v1/recipes/"+recipe.ID,
		map[string]any{"title": "Renamed"},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[RecipeDetail]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "Renamed", envelope.Data.Title)
	assert.Equal(t, "keep me", envelope.Data.Description)
	assert.Len(t, envelope.Data.Tags, 1)

	// A present empty tags array clears the links.
	resp = ts.api.Patch("/api/v1/recipes/"+recipe.ID,
		map[string]any{"tags": []map[string]any{}},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Tags)
}

func TestPutRecipe_RequiresCoreFields(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")

	recipe := ts.createRecipe(t, token, map[string]any{"title": "Original"})

	resp := ts.api.Put("/api/v1/recipes/"+recipe.ID,
		map[string]any{"title": "No Price Or Time"},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION", envelope.Code)

	resp = ts.api.Put("/api/v1/recipes/"+recipe.ID,
		map[string]any{"title": "Replaced", "time_minutes": 15, "price": "4.00"},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	var updated testEnvelope[RecipeDetail]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, "Replaced", updated.Data.Title)
	assert.Equal(t, 15, updated.Data.TimeMinutes)
	assert.Equal(t, "4.00", updated.Data.Price)
}

func TestUpdateRecipe_CrossOwnerIs404(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")
	otherToken := ts.registerAndLogin(t, "other@example.com")

	recipe := ts.createRecipe(t, token, map[string]any{"title": "Mine"})

	resp := ts.api.Patch("/api/v1/recipes/"+recipe.ID,
		map[string]any{"title": "Hijacked"},
		"Authorization: Bearer "+otherToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteRecipe_KeepsAttributes(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")

	recipe := ts.createRecipe(t, token, map[string]any{
		"title": "Doomed",
		"tags":  []map[string]any{{"name": "Survivor"}},
	})

	resp := ts.api.Delete("/api/v1/recipes/"+recipe.ID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/recipes/"+recipe.ID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// The tag outlives the recipe.
	resp = ts.api.Get("/api/v1/tags", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var tags testEnvelope[[]TagResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tags))
	require.Len(t, tags.Data, 1)
	assert.Equal(t, "Survivor", tags.Data[0].Name)
}

func TestSearchRecipes(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")
	otherToken := ts.registerAndLogin(t, "other@example.com")

	ts.createRecipe(t, token, map[string]any{
		"title":       "Tom Yum Soup",
		"ingredients": []map[string]any{{"name": "Lemongrass"}},
	})
	ts.createRecipe(t, otherToken, map[string]any{"title": "Tom Yum Clone"})

	resp := ts.api.Get("/api/v1/recipes/search?q=lemongrass", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[[]RecipeDetail]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Tom Yum Soup", envelope.Data[0].Title)

	// Missing query is a validation error.
	resp = ts.api.Get("/api/v1/recipes/search", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
