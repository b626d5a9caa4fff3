package messaging

import (
	"context"
	"time"
)

// EventType names a notification emitted by the service
type EventType string

const (
	// EventRemixCreated is emitted after a remix and all its distributions are committed
	EventRemixCreated EventType = "remix.created"
	// EventSettlementPartial is emitted when a remix row committed but some distributions did not
	EventSettlementPartial EventType = "settlement.partial"
	// EventSettlementResumed is emitted when the reconciler completes a partial settlement
	EventSettlementResumed EventType = "settlement.resumed"
	// EventClipRegistered is emitted after an uploaded clip is registered on the ledger
	EventClipRegistered EventType = "clip.registered"
)

// Event is the envelope published to the message broker
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	// EntityID is the remix or clip the event is about
	EntityID string `json:"entity_id"`
	Payload  any    `json:"payload,omitempty"`
}

// Publisher defines the interface for publishing events to message queue
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// Publish publishes an event to the message broker
	Publish(ctx context.Context, event *Event) error
	// Close closes the connection
	Close()
}

type nopPublisher struct{}

// NewNopPublisher returns a publisher that drops every event, used when no broker is configured
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, *Event) error { return nil }

func (nopPublisher) Close() {}
