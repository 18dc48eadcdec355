// Package events carries domain events from services to a message broker.
package events

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Topics published by the services, appended to the configured prefix
const (
	TopicOrderStatus      = "order.status"
	TopicPaymentStatus    = "payment.status"
	TopicInventoryUpdated = "inventory.updated"
	TopicNotificationSent = "notification.sent"
)

// Event is the envelope written for every domain change
type Event struct {
	Type       string      `json:"type"`
	EntityID   string      `json:"entity_id"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// Publisher delivers events keyed by entity id
type Publisher interface {
	Publish(ctx context.Context, topic string, event Event) error
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) error { return nil }

// New stamps an event for the given entity
func New(eventType, entityID string, payload interface{}) Event {
	return Event{
		Type:       eventType,
		EntityID:   entityID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// PublishTimeout caps the time a request spends handing an event to the broker
const PublishTimeout = 2 * time.Second

// Emit publishes event and logs a failure instead of returning it.
// The publish is detached from ctx cancellation and bounded by PublishTimeout.
func Emit(ctx context.Context, publisher Publisher, logger logrus.FieldLogger, topic string, event Event) {
	if publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), PublishTimeout)
	defer cancel()

	if err := publisher.Publish(ctx, topic, event); err != nil {
		logger.WithFields(logrus.Fields{
			"topic":     topic,
			"event":     event.Type,
			"entity_id": event.EntityID,
		}).WithError(err).Warn("Failed to publish event")
	}
}
