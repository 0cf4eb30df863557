package mocks

import (
	"context"
	"sync"

	"github.com/pageza/alchemorsel-favourites/backend/internal/events"
)

// RecordingPublisher keeps every published event in memory
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []events.FavouriteEvent
	Err    error
}

func (p *RecordingPublisher) Publish(_ context.Context, event events.FavouriteEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return p.Err
}

func (p *RecordingPublisher) Close() error { return nil }

// Published returns a copy of the recorded events
func (p *RecordingPublisher) Published() []events.FavouriteEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.FavouriteEvent(nil), p.Events...)
}
