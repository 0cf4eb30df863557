package service

import (
	"context"
	"errors"
	"log"
	"sort"

	"github.com/pageza/alchemorsel-favourites/backend/internal/events"
	"github.com/pageza/alchemorsel-favourites/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrFavouriteNotFound is returned when no favourite matches a delete
var ErrFavouriteNotFound = errors.New("favourite not found")

// FavouriteService handles favourite operations
type FavouriteService struct {
	db        *gorm.DB
	cache     FavouriteCache
	publisher events.Publisher
}

// NewFavouriteService creates a new FavouriteService instance. cache may be
// nil, in which case every list goes to the database; publisher may be nil
// to disable events.
func NewFavouriteService(db *gorm.DB, cache FavouriteCache, publisher events.Publisher) *FavouriteService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &FavouriteService{
		db:        db,
		cache:     cache,
		publisher: publisher,
	}
}

// AddFavourite inserts fav and returns it with its storage-assigned fields
func (s *FavouriteService) AddFavourite(ctx context.Context, fav *model.Favourite) (*model.Favourite, error) {
	if err := s.db.WithContext(ctx).Create(fav).Error; err != nil {
		return nil, err
	}

	s.invalidate(ctx, fav.UserID)
	s.publish(ctx, events.NewFavouriteEvent(events.FavouriteAdded, *fav))
	return fav, nil
}

// RemoveFavourite deletes every favourite matching the pair and returns the
// deleted rows ordered by id. ErrFavouriteNotFound when nothing matched.
func (s *FavouriteService) RemoveFavourite(ctx context.Context, userID string, recipeID int64) ([]model.Favourite, error) {
	var deleted []model.Favourite
	result := s.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&deleted)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(deleted) == 0 {
		return nil, ErrFavouriteNotFound
	}

	sort.Slice(deleted, func(i, j int) bool {
		return deleted[i].ID < deleted[j].ID
	})

	s.invalidate(ctx, userID)
	s.publish(ctx, events.NewFavouriteEvent(events.FavouriteRemoved, deleted[0]))
	return deleted, nil
}

// ListFavourites returns all favourites saved by userID in insertion order.
// The result is never nil.
func (s *FavouriteService) ListFavourites(ctx context.Context, userID string) ([]model.Favourite, error) {
	cacheable := false
	var version int64
	if s.cache != nil {
		favs, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			log.Printf("favourite cache read failed for user %s: %v", userID, err)
		} else if ok {
			return favs, nil
		}

		// Read before the query so a write committing in between is detected
		if version, err = s.cache.Version(ctx, userID); err != nil {
			log.Printf("favourite cache version read failed for user %s: %v", userID, err)
		} else {
			cacheable = true
		}
	}

	favs := make([]model.Favourite, 0)
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&favs).Error; err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cache.Set(ctx, userID, version, favs); err != nil {
			log.Printf("favourite cache write failed for user %s: %v", userID, err)
		}
	}
	return favs, nil
}

func (s *FavouriteService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		log.Printf("favourite cache invalidation failed for user %s: %v", userID, err)
	}
}

// publish never fails the caller; the write has already committed
func (s *FavouriteService) publish(ctx context.Context, event events.FavouriteEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("failed to publish %s event for user %s: %v", event.Type, event.UserID, err)
	}
}
