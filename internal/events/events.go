package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TopicUsers = "user_events"
	TopicCart  = "cart_events"

	TypeUserRegistered  = "user_registered"
	TypeCartItemAdded   = "cart_item_added"
	TypeCartItemRemoved = "cart_item_removed"
)

type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

func New(eventType string, payload map[string]any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, event Event) error
}

// Nop drops every event. It is used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, Event) error { return nil }
