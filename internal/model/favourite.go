package model

import (
	"time"
)

// Favourite is a recipe saved by a user. The (UserID, RecipeID) pair is not
// unique; the same recipe can be saved more than once.
type Favourite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:text;not null;index:idx_favorites_user_recipe,priority:1" json:"userId"`
	RecipeID  int64     `gorm:"not null;index:idx_favorites_user_recipe,priority:2" json:"recipeId"`
	Title     string    `gorm:"type:text;not null" json:"title"`
	Image     *string   `gorm:"type:text" json:"image"`
	CookTime  Text      `gorm:"type:text" json:"cookTime" swaggertype:"string"`
	Servings  Text      `gorm:"type:text" json:"servings" swaggertype:"string"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Favourite) TableName() string {
	return "favorites"
}
