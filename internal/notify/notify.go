// Package notify carries user-facing event records away from the
// workflow engine. Delivery is best-effort: a failing sink must never
// fail the operation that produced the event.
package notify

import (
	"context"
	"time"

	"github.com/freelanceflow/backend/internal/models"
)

type Event struct {
	Title    string                      `json:"title"`
	Message  string                      `json:"message"`
	Category models.NotificationCategory `json:"category"`
	Payload  map[string]any              `json:"payload,omitempty"`
	At       time.Time                   `json:"at"`
}

type Sink interface {
	Publish(ctx context.Context, ev Event) error
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

// Multi fans an event out to several sinks and returns the first error,
// after attempting all of them.
type Multi []Sink

func (m Multi) Publish(ctx context.Context, ev Event) error {
	var first error
	for _, s := range m {
		if err := s.Publish(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}
