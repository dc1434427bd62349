// Package search maintains a bleve full-text index over recipes.
package search

import (
	"github.com/platefulapp/plateful-server/internal/domain"
)

// RecipeDocument is the indexed shape of a recipe. Only fields useful for
// matching or filtering are stored.
type RecipeDocument struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Tags        []string
	Ingredients []string
	CreatedAt   int64
}

// ToMap converts the document to the map bleve indexes. Keys must line up
// with the field names in the index mapping.
func (d *RecipeDocument) ToMap() map[string]any {
	return map[string]any{
		"user_id":     d.UserID,
		"title":       d.Title,
		"description": d.Description,
		"tags":        d.Tags,
		"ingredients": d.Ingredients,
		"created_at":  d.CreatedAt,
	}
}

// RecipeToDocument builds an indexable document from a recipe aggregate.
// The recipe's tags and ingredients must already be loaded.
func RecipeToDocument(r *domain.Recipe) *RecipeDocument {
	doc := &RecipeDocument{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.Unix(),
	}
	for _, t := range r.Tags {
		doc.Tags = append(doc.Tags, t.Name)
	}
	for _, ing := range r.Ingredients {
		doc.Ingredients = append(doc.Ingredients, ing.Name)
	}
	return doc
}
