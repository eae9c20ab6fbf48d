package webhookpubsub

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/pillarwallet/walletd/internal/core/ports"
	"github.com/pillarwallet/walletd/pkg/circuitbreaker"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"
	"golang.org/x/sync/errgroup"
)

const (
	defaultRequestTimeout = 15 * time.Second
	tokenExpiration       = 5 * time.Minute
)

// Service notifies the registered webhooks of the messages published for
// their topic.
type Service struct {
	store      *webhookStore
	httpClient *client
	cb         *gobreaker.CircuitBreaker
	limiter    ratelimit.Limiter
}

// NewService returns a webhook service whose requests time out after
// requestTimeout. At most rateLimit requests per second are made, a non
// positive value disables the limit.
func NewService(requestTimeout time.Duration, rateLimit int) *Service {
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	limiter := ratelimit.NewUnlimited()
	if rateLimit > 0 {
		limiter = ratelimit.New(rateLimit)
	}

	return &Service{
		store:      newWebhookStore(),
		httpClient: newHTTPClient(requestTimeout),
		cb:         circuitbreaker.NewCircuitBreaker("webhook"),
		limiter:    limiter,
	}
}

func (ws *Service) Subscribe(topic, endpoint, secret string) (string, error) {
	hook, err := NewWebhook(topic, endpoint, secret)
	if err != nil {
		return "", err
	}

	ws.store.add(hook)
	return hook.ID, nil
}

func (ws *Service) Unsubscribe(_, id string) error {
	return ws.store.remove(id)
}

func (ws *Service) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	hooks := ws.listWebhooksForTopic(topic)
	subs := make([]ports.Subscription, 0, len(hooks))
	for _, h := range hooks {
		subs = append(subs, h)
	}
	return subs
}

// Publish makes a POST request with the given message to every webhook
// registered for topic or for any topic.
// Requests go through a circuit breaker in order to stop hammering
// endpoints that keep failing.
func (ws *Service) Publish(ctx context.Context, topic, message string) error {
	hooks := ws.listWebhooksForTopic(topic)

	eg := &errgroup.Group{}
	for i := range hooks {
		hook := hooks[i]
		eg.Go(func() error { return ws.doRequest(ctx, hook, message) })
	}
	return eg.Wait()
}

func (ws *Service) Close() {
	ws.httpClient.CloseIdleConnections()
}

func (ws *Service) listWebhooksForTopic(topic string) []*Webhook {
	if topic == ports.UnspecifiedTopic {
		return ws.store.getAll()
	}

	hooks := ws.store.getByTopic(topic)
	if topic != ports.AnyTopic {
		hooks = append(hooks, ws.store.getByTopic(ports.AnyTopic)...)
	}
	return hooks
}

func (ws *Service) doRequest(
	ctx context.Context, hook *Webhook, payload string,
) error {
	ws.limiter.Take()

	_, err := ws.cb.Execute(func() (interface{}, error) {
		headers := map[string]string{
			"Content-Type": "application/json",
		}
		if hook.IsSecured() {
			tokenString, err := signToken(hook.Secret)
			if err != nil {
				return nil, err
			}
			headers["Authorization"] = fmt.Sprintf("Bearer %s", tokenString)
		}

		status, resp, err := ws.httpClient.post(ctx, hook.Endpoint, payload, headers)
		if err != nil {
			return nil, err
		}
		if status < 200 || status >= 300 {
			return nil, fmt.Errorf(
				"webhook %s responded with status %d: %s", hook.ID, status, resp,
			)
		}
		return nil, nil
	})

	return err
}

func signToken(secret string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(tokenExpiration).Unix(),
	})
	return token.SignedString([]byte(secret))
}
