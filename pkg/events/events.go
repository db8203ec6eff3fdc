// Package events publishes roster changes so downstream consumers can follow
// signups without polling the API.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type identifies a roster change.
type Type string

const (
	TypeSignup     Type = "activity.signup"
	TypeUnregister Type = "activity.unregister"
)

// RosterEvent records one signup or unregister.
type RosterEvent struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	Activity   string    `json:"activity"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewRosterEvent stamps a new event with a random id.
func NewRosterEvent(t Type, activity, email string, now time.Time) RosterEvent {
	return RosterEvent{
		ID:         uuid.NewString(),
		Type:       t,
		Activity:   activity,
		Email:      email,
		OccurredAt: now.UTC(),
	}
}

// Publisher delivers roster events.
type Publisher interface {
	Publish(ctx context.Context, ev RosterEvent) error
	Close() error
}

// Noop drops every event. It is used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, RosterEvent) error { return nil }
func (Noop) Close() error                               { return nil }
