package account

import (
	"context"
	"fmt"

	"github.com/pillarwallet/walletd/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

type migration struct {
	resource domain.ResourceKey
	event    domain.EventType
	migrate  func(domain.ResourceRecord, []domain.Account) (interface{}, bool)
}

// migrations are run in order. Each one that produces a result dispatches it
// before persisting it.
var migrations = []migration{
	{
		resource: domain.ResourceBalances,
		event:    domain.EventUpdateBalances,
		migrate: func(
			record domain.ResourceRecord, accounts []domain.Account,
		) (interface{}, bool) {
			balances := domain.MigrateBalances(record, accounts)
			return balances, balances != nil
		},
	},
	{
		resource: domain.ResourceHistory,
		event:    domain.EventSetHistory,
		migrate:  listMigration(domain.MigrateHistory),
	},
	{
		resource: domain.ResourceCollectibles,
		event:    domain.EventUpdateCollectibles,
		migrate:  listMigration(domain.MigrateCollectibles),
	},
	{
		resource: domain.ResourceCollectiblesHistory,
		event:    domain.EventSetCollectiblesTransactionHistory,
		migrate:  listMigration(domain.MigrateCollectiblesHistory),
	},
}

func listMigration(
	fn func(domain.ResourceRecord, []domain.Account) domain.ItemsByAccount,
) func(domain.ResourceRecord, []domain.Account) (interface{}, bool) {
	return func(
		record domain.ResourceRecord, accounts []domain.Account,
	) (interface{}, bool) {
		items := fn(record, accounts)
		return items, items != nil
	}
}

func (s *Service) migrateResources(
	ctx context.Context, accounts []domain.Account,
) error {
	repo := s.repoManager.ResourceRepository()

	for _, m := range migrations {
		record, err := repo.GetResource(ctx, m.resource)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", m.resource, err)
		}

		migrated, ok := m.migrate(record, accounts)
		if !ok {
			log.Debugf("nothing to migrate for %s", m.resource)
			continue
		}

		if err := s.dispatch(ctx, m.event, migrated); err != nil {
			return err
		}

		migratedRecord, err := domain.NewResourceRecord(migrated)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", m.resource, err)
		}
		if err := repo.SaveResource(ctx, m.resource, migratedRecord); err != nil {
			return fmt.Errorf("failed to save %s: %w", m.resource, err)
		}
		log.Infof("migrated %s to account %s", m.resource, accounts[0].ID)
	}
	return nil
}
