package service

import (
	"context"

	"github.com/pageza/alchemorsel-favourites/backend/internal/model"
)

// IFavouriteService defines the interface for favourite operations
type IFavouriteService interface {
	AddFavourite(ctx context.Context, fav *model.Favourite) (*model.Favourite, error)
	RemoveFavourite(ctx context.Context, userID string, recipeID int64) ([]model.Favourite, error)
	ListFavourites(ctx context.Context, userID string) ([]model.Favourite, error)
}

// FavouriteCache stores each user's favourites list. Every Invalidate bumps
// the user's version; Set only stores a list read under the current version.
type FavouriteCache interface {
	Get(ctx context.Context, userID string) ([]model.Favourite, bool, error)
	Version(ctx context.Context, userID string) (int64, error)
	Set(ctx context.Context, userID string, version int64, favs []model.Favourite) error
	Invalidate(ctx context.Context, userID string) error
}
