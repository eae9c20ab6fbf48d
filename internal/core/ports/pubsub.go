package ports

import (
	"context"

	"github.com/pillarwallet/walletd/internal/core/domain"
)

const AnyTopic = "*"
const UnspecifiedTopic = ""

type Subscription interface {
	Topic() string
	Id() string
	IsSecured() bool
	NotifyAt() string
}

// EventHandler is notified of every event dispatched for the topic it is
// registered for.
type EventHandler func(ctx context.Context, event domain.Event) error

// EventSink receives the state updates produced by the application
// services.
type EventSink interface {
	// Dispatch delivers the event and returns only once every subscriber has
	// been notified.
	Dispatch(ctx context.Context, event domain.Event) error
}

// EventBus is an EventSink that lets in-process handlers and remote webhooks
// subscribe to events. Topics are event types, AnyTopic matches them all.
type EventBus interface {
	EventSink
	// AddHandler registers an in-process handler and returns its id.
	AddHandler(topic string, handler EventHandler) string
	// RemoveHandler removes the handler with the given id.
	RemoveHandler(id string)
	// Subscribe adds a new webhook subscription for the requested topic.
	Subscribe(topic, endpoint, secret string) (string, error)
	// Unsubscribe removes the webhook subscription with the given id.
	Unsubscribe(topic, id string) error
	// ListSubscriptionsForTopic returns the webhooks notified for topic.
	ListSubscriptionsForTopic(topic string) []Subscription
	// Close releases the resources held by the bus.
	Close()
}
