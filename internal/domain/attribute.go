package domain

// Tag is a user-scoped label attached to recipes. Two users can each have a
// tag named "Vegan" without conflict; within one user the name is the
// logical identity used for get-or-create.
type Tag struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Timestamps

	Name string `json:"name"`
}

// Ingredient is a user-scoped ingredient attached to recipes. It behaves
// exactly like Tag; the two are kept separate because they are separate
// resources with separate endpoints and join tables.
type Ingredient struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Timestamps

	Name string `json:"name"`
}
