// Package events publishes notifications about changes to money books and
// allocations.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Type string

const (
	AllocationCreated Type = "allocation.created"
	AllocationDeleted Type = "allocation.deleted"
	MoneyBookDeleted  Type = "money_book.deleted"
)

// Event is a single change notification.
type Event struct {
	Type        Type      `json:"type"`
	ResourceID  uuid.UUID `json:"resourceId"`
	MoneyBookID uuid.UUID `json:"moneyBookId"`
	Timestamp   time.Time `json:"timestamp"`
}

// New returns an event with the current time as timestamp.
func New(t Type, resourceID, moneyBookID uuid.UUID) Event {
	return Event{
		Type:        t,
		ResourceID:  resourceID,
		MoneyBookID: moneyBookID,
		Timestamp:   time.Now().In(time.UTC),
	}
}

func (e Event) JSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher sends events to interested parties.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop is a Publisher that only logs events.
type Nop struct{}

func (Nop) Publish(_ context.Context, e Event) error {
	log.Debug().Str("type", string(e.Type)).Str("resource", e.ResourceID.String()).Msg("event")
	return nil
}

func (Nop) Close() error {
	return nil
}

// PublishLogged publishes the event and logs failures instead of returning
// them. It is used where the change the event describes is already
// committed.
func PublishLogged(ctx context.Context, p Publisher, e Event) {
	err := p.Publish(ctx, e)
	if err != nil {
		log.Error().Err(err).Str("type", string(e.Type)).Str("resource", e.ResourceID.String()).Msg("publishing event failed")
	}
}
