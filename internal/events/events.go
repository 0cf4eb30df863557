// Package events publishes favourite changes to a message broker so other
// services can react without polling the database.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/alchemorsel-favourites/backend/internal/model"
)

// Event types
const (
	FavouriteAdded   = "favourite.added"
	FavouriteRemoved = "favourite.removed"
)

// FavouriteEvent is the message body published for every change
type FavouriteEvent struct {
	EventID    string    `json:"eventId"`
	Type       string    `json:"type"`
	UserID     string    `json:"userId"`
	RecipeID   int64     `json:"recipeId"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewFavouriteEvent builds an event of the given type for fav
func NewFavouriteEvent(eventType string, fav model.Favourite) FavouriteEvent {
	return FavouriteEvent{
		EventID:    uuid.New().String(),
		Type:       eventType,
		UserID:     fav.UserID,
		RecipeID:   fav.RecipeID,
		Title:      fav.Title,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers favourite events
type Publisher interface {
	Publish(ctx context.Context, event FavouriteEvent) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, FavouriteEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
