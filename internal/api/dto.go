package api

import (
	"time"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/service"
)

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func mapUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse is returned by login and refresh.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
	SessionID    string       `json:"session_id"`
	User         UserResponse `json:"user"`
}

func mapAuthResponse(u *domain.User, pair *service.TokenPair) AuthResponse {
	return AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
		SessionID:    pair.SessionID,
		User:         mapUser(u),
	}
}

// TagResponse is the public shape of a tag.
type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func mapTags(tags []*domain.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagResponse{ID: t.ID, Name: t.Name})
	}
	return out
}

// IngredientResponse is the public shape of an ingredient.
type IngredientResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func mapIngredients(ingredients []*domain.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		out = append(out, IngredientResponse{ID: ing.ID, Name: ing.Name})
	}
	return out
}

// RecipeListItem is the compact listing shape: linked attributes appear as
// ID lists, and the description stays out of listings.
type RecipeListItem struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	TimeMinutes   int       `json:"time_minutes"`
	Price         string    `json:"price"`
	Link          string    `json:"link,omitempty"`
	Tags          []string  `json:"tags"`
	Ingredients   []string  `json:"ingredients"`
	ImageBlurHash string    `json:"image_blur_hash,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func mapRecipeListItem(r *domain.Recipe) RecipeListItem {
	item := RecipeListItem{
		ID:            r.ID,
		Title:         r.Title,
		TimeMinutes:   r.TimeMinutes,
		Price:         r.Price,
		Link:          r.Link,
		Tags:          make([]string, 0, len(r.Tags)),
		Ingredients:   make([]string, 0, len(r.Ingredients)),
		ImageBlurHash: r.ImageBlurHash,
		CreatedAt:     r.CreatedAt,
	}
	for _, t := range r.Tags {
		item.Tags = append(item.Tags, t.ID)
	}
	for _, ing := range r.Ingredients {
		item.Ingredients = append(item.Ingredients, ing.ID)
	}
	return item
}

// RecipeDetail is the full aggregate shape.
type RecipeDetail struct {
	ID            string               `json:"id"`
	UserID        string               `json:"user_id"`
	Title         string               `json:"title"`
	TimeMinutes   int                  `json:"time_minutes"`
	Price         string               `json:"price"`
	Description   string               `json:"description,omitempty"`
	Link          string               `json:"link,omitempty"`
	Tags          []TagResponse        `json:"tags"`
	Ingredients   []IngredientResponse `json:"ingredients"`
	HasImage      bool                 `json:"has_image"`
	ImageBlurHash string               `json:"image_blur_hash,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func mapRecipeDetail(r *domain.Recipe) RecipeDetail {
	return RecipeDetail{
		ID:            r.ID,
		UserID:        r.UserID,
		Title:         r.Title,
		TimeMinutes:   r.TimeMinutes,
		Price:         r.Price,
		Description:   r.Description,
		Link:          r.Link,
		Tags:          mapTags(r.Tags),
		Ingredients:   mapIngredients(r.Ingredients),
		HasImage:      r.HasImage(),
		ImageBlurHash: r.ImageBlurHash,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
