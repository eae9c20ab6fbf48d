package dbbadger

import (
	"context"
	"time"

	"github.com/pillarwallet/walletd/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type resourceEntry struct {
	Key       string
	Value     []byte
	UpdatedAt int64
}

type resourceRepository struct {
	store *badgerhold.Store
}

func newResourceRepository(store *badgerhold.Store) *resourceRepository {
	return &resourceRepository{store}
}

func (r *resourceRepository) GetResource(
	_ context.Context, key domain.ResourceKey,
) (domain.ResourceRecord, error) {
	if !key.IsValid() {
		return nil, domain.ErrUnknownResource
	}

	var entry resourceEntry
	if err := r.store.Get(key.String(), &entry); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ResourceRecord{}, nil
		}
		return nil, err
	}
	return domain.ResourceRecord(entry.Value), nil
}

func (r *resourceRepository) SaveResource(
	_ context.Context, key domain.ResourceKey, record domain.ResourceRecord,
) error {
	if !key.IsValid() {
		return domain.ErrUnknownResource
	}

	entry := resourceEntry{
		Key:       key.String(),
		Value:     []byte(record),
		UpdatedAt: time.Now().Unix(),
	}
	return r.store.Upsert(entry.Key, entry)
}
