package search

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// DefaultLimit caps search results when the caller does not say otherwise.
const DefaultLimit = 25

// Hit is one search result: the recipe ID and its relevance score.
type Hit struct {
	RecipeID string  `json:"recipe_id"`
	Score    float64 `json:"score"`
}

// Search runs a ranked query over the given user's recipes. Matches are
// collected across title, description, tag and ingredient names, with the
// title weighted highest; light fuzziness and prefix matching cover typos
// and partial words.
func (i *Index) Search(ctx context.Context, userID, queryString string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	owner := bleve.NewTermQuery(userID)
	owner.SetField("user_id")

	full := bleve.NewConjunctionQuery(owner, buildTextQuery(queryString))

	req := bleve.NewSearchRequestOptions(full, limit, 0, false)
	req.SortBy([]string{"-_score"})

	i.mu.RLock()
	result, err := i.index.SearchInContext(ctx, req)
	i.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		hits = append(hits, Hit{RecipeID: hit.ID, Score: hit.Score})
	}
	return hits, nil
}

// buildTextQuery combines per-field match, fuzzy and prefix queries into a
// single disjunction.
func buildTextQuery(queryString string) query.Query {
	fields := []struct {
		name  string
		boost float64
	}{
		{"title", 3.0},
		{"tags", 2.0},
		{"ingredients", 2.0},
		{"description", 1.0},
	}

	disjuncts := make([]query.Query, 0, len(fields)*3)
	for _, f := range fields {
		match := bleve.NewMatchQuery(queryString)
		match.SetField(f.name)
		match.SetBoost(f.boost)
		disjuncts = append(disjuncts, match)

		fuzzy := bleve.NewFuzzyQuery(queryString)
		fuzzy.SetField(f.name)
		fuzzy.SetFuzziness(1)
		fuzzy.SetBoost(f.boost * 0.5)
		disjuncts = append(disjuncts, fuzzy)

		prefix := bleve.NewPrefixQuery(queryString)
		prefix.SetField(f.name)
		prefix.SetBoost(f.boost * 0.3)
		disjuncts = append(disjuncts, prefix)
	}

	return bleve.NewDisjunctionQuery(disjuncts...)
}
