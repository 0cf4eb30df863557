package types

import (
	"strings"

	"github.com/pageza/alchemorsel-favourites/backend/internal/model"
)

// CreateFavouriteRequest represents the request body for saving a favourite
type CreateFavouriteRequest struct {
	UserID   string     `json:"userId" example:"user_2abc"`
	RecipeID int64      `json:"recipeId" example:"52772"`
	Title    string     `json:"title" example:"Teriyaki Chicken Casserole"`
	Image    *string    `json:"image,omitempty" example:"https://www.themealdb.com/images/media/meals/wvpsxx1468256321.jpg"`
	CookTime model.Text `json:"cookTime,omitempty" swaggertype:"string" example:"45 minutes"`
	Servings model.Text `json:"servings,omitempty" swaggertype:"string" example:"4"`
}

// FieldErrors lists the names of required fields that were missing
type FieldErrors []string

func (e FieldErrors) Error() string {
	return "missing required fields: " + strings.Join(e, ", ")
}

// Validate checks the required fields and returns either the favourite to
// insert or the missing field names, never both. Zero values count as
// missing, including recipeId 0.
func (r *CreateFavouriteRequest) Validate() (*model.Favourite, FieldErrors) {
	var missing FieldErrors
	if r.UserID == "" {
		missing = append(missing, "userId")
	}
	if r.RecipeID == 0 {
		missing = append(missing, "recipeId")
	}
	if r.Title == "" {
		missing = append(missing, "title")
	}
	if len(missing) > 0 {
		return nil, missing
	}

	return &model.Favourite{
		UserID:   r.UserID,
		RecipeID: r.RecipeID,
		Title:    r.Title,
		Image:    r.Image,
		CookTime: r.CookTime,
		Servings: r.Servings,
	}, nil
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string   `json:"error" example:"Failed to add favourite"`
	Details string   `json:"details,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

// FavouriteResponse wraps a single favourite
type FavouriteResponse struct {
	Message string          `json:"message" example:"Favourite added successfully"`
	Data    model.Favourite `json:"data"`
}

// RemoveFavouriteResponse wraps the first removed favourite and how many rows went
type RemoveFavouriteResponse struct {
	Message      string          `json:"message" example:"Favourite removed successfully"`
	Data         model.Favourite `json:"data"`
	DeletedCount int             `json:"deletedCount" example:"1"`
}

// FavouriteListResponse wraps a user's favourites
type FavouriteListResponse struct {
	Message string            `json:"message" example:"Favourites retrieved successfully"`
	Data    []model.Favourite `json:"data"`
	Count   int               `json:"count" example:"2"`
}

// HealthResponse is the fixed liveness payload
type HealthResponse struct {
	Message string `json:"message" example:"Server is running"`
	Status  string `json:"status" example:"success"`
}

// ReadinessResponse reports the state of each backing service
type ReadinessResponse struct {
	Status string            `json:"status" example:"ready"`
	Checks map[string]string `json:"checks"`
	Error  string            `json:"error,omitempty"`
}
