package test

import (
	"context"
	"sync"

	"github.com/moneybooks/backend/internal/events"
)

// Recorder is an events.Publisher that keeps all published events.
type Recorder struct {
	mu     sync.Mutex
	Events []events.Event
}

func (r *Recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Events = append(r.Events, e)
	return nil
}

func (r *Recorder) Close() error {
	return nil
}

// Types returns the types of all recorded events in publishing order.
func (r *Recorder) Types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()

	types := make([]events.Type, 0, len(r.Events))
	for _, e := range r.Events {
		types = append(types, e.Type)
	}
	return types
}
