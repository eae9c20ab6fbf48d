package domain

import "context"

// ResourceRepository is the key-value store holding the persisted
// resources.
type ResourceRepository interface {
	// GetResource returns the record stored under key, or an empty record if
	// nothing is stored yet.
	GetResource(ctx context.Context, key ResourceKey) (ResourceRecord, error)
	// SaveResource replaces the record stored under key.
	SaveResource(ctx context.Context, key ResourceKey, record ResourceRecord) error
}

// AccountRepository persists the account roster as a whole.
type AccountRepository interface {
	GetAccounts(ctx context.Context) (Roster, error)
	// SaveAccounts replaces the entire roster.
	SaveAccounts(ctx context.Context, accounts Roster) error
}
