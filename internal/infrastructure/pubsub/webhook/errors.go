package webhookpubsub

import "errors"

var (
	// ErrInvalidTopic is returned whenever attempting to subscribe to an unknown
	// topic.
	ErrInvalidTopic = errors.New("topic is invalid")
	// ErrInvalidEndpoint ...
	ErrInvalidEndpoint = errors.New("webhook endpoint must be a valid URI")
	// ErrWebhookNotFound ...
	ErrWebhookNotFound = errors.New("webhook not found")
)
