package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pillarwallet/walletd/internal/core/domain"
	"github.com/pillarwallet/walletd/internal/core/ports"
	webhookpubsub "github.com/pillarwallet/walletd/internal/infrastructure/pubsub/webhook"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sasha-s/go-deadlock"
	log "github.com/sirupsen/logrus"
)

type handler struct {
	id    string
	topic string
	fn    ports.EventHandler
}

type service struct {
	lock     *deadlock.RWMutex
	handlers []handler
	webhooks *webhookpubsub.Service
	metrics  *metrics
}

// Config holds the optional settings of the event bus.
type Config struct {
	// WebhookRequestTimeout is the timeout of every webhook request.
	WebhookRequestTimeout time.Duration
	// WebhookRateLimit is the max number of webhook requests per second, 0
	// means unlimited.
	WebhookRateLimit int
	// Registerer, if set, is where the bus metrics are registered.
	Registerer prometheus.Registerer
}

// NewService returns an event bus that notifies in-process handlers
// synchronously, in registration order, and then the webhooks subscribed to
// the event type.
func NewService(cfg Config) (ports.EventBus, error) {
	m := newMetrics()
	if cfg.Registerer != nil {
		for _, c := range m.collectors() {
			if err := cfg.Registerer.Register(c); err != nil {
				return nil, fmt.Errorf("failed to register metrics: %w", err)
			}
		}
	}

	return &service{
		lock:     &deadlock.RWMutex{},
		handlers: make([]handler, 0),
		webhooks: webhookpubsub.NewService(
			cfg.WebhookRequestTimeout, cfg.WebhookRateLimit,
		),
		metrics: m,
	}, nil
}

func (s *service) AddHandler(topic string, fn ports.EventHandler) string {
	s.lock.Lock()
	defer s.lock.Unlock()

	id := uuid.New().String()
	s.handlers = append(s.handlers, handler{id, topic, fn})
	return id
}

func (s *service) RemoveHandler(id string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for i, h := range s.handlers {
		if h.id == id {
			s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
			return
		}
	}
}

func (s *service) Subscribe(topic, endpoint, secret string) (string, error) {
	return s.webhooks.Subscribe(topic, endpoint, secret)
}

func (s *service) Unsubscribe(topic, id string) error {
	return s.webhooks.Unsubscribe(topic, id)
}

func (s *service) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	return s.webhooks.ListSubscriptionsForTopic(topic)
}

// Dispatch assigns an id to the event if missing, then notifies handlers and
// webhooks. The first handler failure stops the delivery and is returned.
// Webhook failures are only logged and counted.
func (s *service) Dispatch(ctx context.Context, event domain.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	topic := event.Type.String()
	s.metrics.eventsDispatched.WithLabelValues(topic).Inc()

	for _, h := range s.handlersForTopic(topic) {
		if err := h.fn(ctx, event); err != nil {
			s.metrics.handlerFailures.WithLabelValues(topic).Inc()
			return fmt.Errorf("handler %s failed to process event %s: %w", h.id, event.ID, err)
		}
	}

	s.notifyWebhooks(ctx, topic, event)
	return nil
}

func (s *service) Close() {
	s.webhooks.Close()
}

func (s *service) notifyWebhooks(
	ctx context.Context, topic string, event domain.Event,
) {
	if len(s.webhooks.ListSubscriptionsForTopic(topic)) <= 0 {
		return
	}

	message, err := json.Marshal(event)
	if err == nil {
		err = s.webhooks.Publish(ctx, topic, string(message))
	}
	if err != nil {
		s.metrics.webhookFailures.WithLabelValues(topic).Inc()
		log.WithError(err).Warnf("failed to notify webhooks of event %s", event.ID)
	}
}

func (s *service) handlersForTopic(topic string) []handler {
	s.lock.RLock()
	defer s.lock.RUnlock()

	handlers := make([]handler, 0, len(s.handlers))
	for _, h := range s.handlers {
		if h.topic == topic || h.topic == ports.AnyTopic {
			handlers = append(handlers, h)
		}
	}
	return handlers
}
