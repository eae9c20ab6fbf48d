package dbaccount

import (
	"context"
	"fmt"

	"github.com/pillarwallet/walletd/internal/core/domain"
)

// repository stores the roster as the accounts resource of the underlying
// resource repository.
type repository struct {
	resources domain.ResourceRepository
}

// NewRepository returns an account repository on top of the given resource
// repository, shared by every db implementation.
func NewRepository(
	resources domain.ResourceRepository,
) domain.AccountRepository {
	return &repository{resources}
}

func (r *repository) GetAccounts(ctx context.Context) (domain.Roster, error) {
	record, err := r.resources.GetResource(ctx, domain.ResourceAccounts)
	if err != nil {
		return nil, err
	}
	roster, err := domain.RosterFromRecord(record)
	if err != nil {
		return nil, fmt.Errorf("decoding accounts: %w", err)
	}
	return roster, nil
}

func (r *repository) SaveAccounts(
	ctx context.Context, accounts domain.Roster,
) error {
	if accounts == nil {
		accounts = domain.Roster{}
	}
	record, err := domain.NewResourceRecord(accounts)
	if err != nil {
		return err
	}
	return r.resources.SaveResource(ctx, domain.ResourceAccounts, record)
}
