package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/id"
)

func TestGetRecipeOwnerScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice@example.com")
	bob := createTestUser(t, s, "bob@example.com")
	r := createTestRecipe(t, s, alice.ID, "Curry")

	_, err := s.GetRecipe(ctx, bob.ID, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.GetRecipe(ctx, alice.ID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Curry", got.Title)
	assert.Equal(t, "5.25", got.Price)
}

func TestListRecipesNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "cook@example.com")

	older := &domain.Recipe{
		ID: id.MustGenerate(id.PrefixRecipe), UserID: u.ID,
		Title: "Older", TimeMinutes: 10, Price: "1.00",
	}
	older.InitTimestamps()
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	require.NoError(t, s.CreateRecipe(ctx, older))

	newer := createTestRecipe(t, s, u.ID, "Newer")

	recipes, err := s.ListRecipes(ctx, u.ID, RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, newer.ID, recipes[0].ID)
	assert.Equal(t, older.ID, recipes[1].ID)
}

func TestListRecipesOwnerScoped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice@example.com")
	bob := createTestUser(t, s, "bob@example.com")
	createTestRecipe(t, s, alice.ID, "Alice's Curry")
	createTestRecipe(t, s, bob.ID, "Bob's Stew")

	recipes, err := s.ListRecipes(ctx, alice.ID, RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Alice's Curry", recipes[0].Title)
}

func TestListRecipesFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "cook@example.com")

	curry := createTestRecipe(t, s, u.ID, "Curry")
	stew := createTestRecipe(t, s, u.ID, "Stew")
	salad := createTestRecipe(t, s, u.ID, "Salad")

	spicy, _, err := s.GetOrCreateTag(ctx, u.ID, "Spicy")
	require.NoError(t, err)
	hearty, _, err := s.GetOrCreateTag(ctx, u.ID, "Hearty")
	require.NoError(t, err)
	chili, _, err := s.GetOrCreateIngredient(ctx, u.ID, "Chili")
	require.NoError(t, err)

	require.NoError(t, s.SetRecipeTags(ctx, curry.ID, []string{spicy.ID}))
	require.NoError(t, s.SetRecipeTags(ctx, stew.ID, []string{hearty.ID}))
	require.NoError(t, s.SetRecipeIngredients(ctx, curry.ID, []string{chili.ID}))

	// OR within the tag dimension.
	recipes, err := s.ListRecipes(ctx, u.ID, RecipeFilter{TagIDs: []string{spicy.ID, hearty.ID}})
	require.NoError(t, err)
	assert.Len(t, recipes, 2)

	// AND across dimensions: hearty recipes containing chili is empty.
	recipes, err = s.ListRecipes(ctx, u.ID, RecipeFilter{
		TagIDs:        []string{hearty.ID},
		IngredientIDs: []string{chili.ID},
	})
	require.NoError(t, err)
	assert.Empty(t, recipes)

	// Both dimensions matching one recipe.
	recipes, err = s.ListRecipes(ctx, u.ID, RecipeFilter{
		TagIDs:        []string{spicy.ID},
		IngredientIDs: []string{chili.ID},
	})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, curry.ID, recipes[0].ID)

	// Unfiltered list still includes everything.
	recipes, err = s.ListRecipes(ctx, u.ID, RecipeFilter{})
	require.NoError(t, err)
	assert.Len(t, recipes, 3)
	_ = salad
}

func TestListRecipesNoDuplicatesAcrossMatchingTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "cook@example.com")
	curry := createTestRecipe(t, s, u.ID, "Curry")

	spicy, _, err := s.GetOrCreateTag(ctx, u.ID, "Spicy")
	require.NoError(t, err)
	quick, _, err := s.GetOrCreateTag(ctx, u.ID, "Quick")
	require.NoError(t, err)
	require.NoError(t, s.SetRecipeTags(ctx, curry.ID, []string{spicy.ID, quick.ID}))

	// Recipe matches both filter IDs but appears once.
	recipes, err := s.ListRecipes(ctx, u.ID, RecipeFilter{TagIDs: []string{spicy.ID, quick.ID}})
	require.NoError(t, err)
	assert.Len(t, recipes, 1)
}

func TestDeleteRecipeKeepsAttributes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "cook@example.com")
	r := createTestRecipe(t, s, u.ID, "Curry")

	tag, _, err := s.GetOrCreateTag(ctx, u.ID, "Spicy")
	require.NoError(t, err)
	require.NoError(t, s.SetRecipeTags(ctx, r.ID, []string{tag.ID}))

	require.NoError(t, s.DeleteRecipe(ctx, u.ID, r.ID))

	_, err = s.GetRecipe(ctx, u.ID, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The tag row survives; only the link is gone.
	tags, err := s.ListTags(ctx, u.ID, false)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	links, err := s.GetRecipeTags(ctx, r.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestDeleteRecipeOwnerScoped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice@example.com")
	bob := createTestUser(t, s, "bob@example.com")
	r := createTestRecipe(t, s, alice.ID, "Curry")

	assert.ErrorIs(t, s.DeleteRecipe(ctx, bob.ID, r.ID), ErrNotFound)

	// Still there for the owner.
	_, err := s.GetRecipe(ctx, alice.ID, r.ID)
	assert.NoError(t, err)
}
