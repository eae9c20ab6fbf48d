package inmemory

import (
	"context"

	"github.com/pillarwallet/walletd/internal/core/domain"
	"github.com/sasha-s/go-deadlock"
)

// ResourceRepositoryImpl keeps the resources in memory. Records are copied
// on the way in and out.
type ResourceRepositoryImpl struct {
	resources map[domain.ResourceKey][]byte
	lock      *deadlock.RWMutex
}

func NewResourceRepositoryImpl() *ResourceRepositoryImpl {
	return &ResourceRepositoryImpl{
		resources: map[domain.ResourceKey][]byte{},
		lock:      &deadlock.RWMutex{},
	}
}

func (r *ResourceRepositoryImpl) GetResource(
	_ context.Context, key domain.ResourceKey,
) (domain.ResourceRecord, error) {
	if !key.IsValid() {
		return nil, domain.ErrUnknownResource
	}

	r.lock.RLock()
	defer r.lock.RUnlock()

	value, ok := r.resources[key]
	if !ok {
		return domain.ResourceRecord{}, nil
	}
	return domain.ResourceRecord(copyBytes(value)), nil
}

func (r *ResourceRepositoryImpl) SaveResource(
	_ context.Context, key domain.ResourceKey, record domain.ResourceRecord,
) error {
	if !key.IsValid() {
		return domain.ErrUnknownResource
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	r.resources[key] = copyBytes(record)
	return nil
}

func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
