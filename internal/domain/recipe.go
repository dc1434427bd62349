package domain

// Recipe is the central aggregate: a dish owned by a user, linked to any
// number of that user's tags and ingredients.
type Recipe struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Timestamps

	Title       string `json:"title"`
	TimeMinutes int    `json:"time_minutes"`

	// Price is a decimal string with at most two fractional digits,
	// e.g. "5.25". Stored as text so no float rounding ever touches it.
	Price string `json:"price"`

	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`

	ImagePath     string `json:"-"`
	ImageBlurHash string `json:"image_blur_hash,omitempty"`

	// Populated on detail reads; nil means "not loaded", empty means "none".
	Tags        []*Tag        `json:"tags,omitempty"`
	Ingredients []*Ingredient `json:"ingredients,omitempty"`
}

// HasImage reports whether an image file is attached to the recipe.
func (r *Recipe) HasImage() bool {
	return r.ImagePath != ""
}
