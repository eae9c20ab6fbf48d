package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/pillarwallet/walletd/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestMigrateBalances(t *testing.T) {
	t.Parallel()

	acc := domain.NewKeyBasedAccount(keyBasedAddr, "w0")
	accounts := []domain.Account{acc}

	t.Run("empty balances", func(t *testing.T) {
		require.Nil(t, domain.MigrateBalances(domain.ResourceRecord(`{}`), accounts))
		require.Nil(t, domain.MigrateBalances(nil, accounts))
		require.Nil(t, domain.MigrateBalances(domain.ResourceRecord(`null`), accounts))
	})

	t.Run("no account", func(t *testing.T) {
		record := domain.ResourceRecord(`{"ETH":{"balance":"5"}}`)
		require.Nil(t, domain.MigrateBalances(record, nil))
	})

	t.Run("migrate once", func(t *testing.T) {
		record := domain.ResourceRecord(`{"ETH":{"balance":"5"}}`)

		migrated := domain.MigrateBalances(record, accounts)
		require.Len(t, migrated, 1)
		require.Contains(t, migrated, acc.ID)
		require.JSONEq(t, `{"balance":"5"}`, string(migrated[acc.ID]["ETH"]))

		migratedRecord, err := domain.NewResourceRecord(migrated)
		require.NoError(t, err)
		require.JSONEq(
			t, `{"`+acc.ID+`":{"ETH":{"balance":"5"}}}`, string(migratedRecord),
		)

		require.Nil(t, domain.MigrateBalances(migratedRecord, accounts))
	})

	t.Run("non object balances", func(t *testing.T) {
		record := domain.ResourceRecord(`[{"ETH":"5"}]`)
		require.Nil(t, domain.MigrateBalances(record, accounts))
	})
}

func TestMigrateLists(t *testing.T) {
	t.Parallel()

	acc := domain.NewKeyBasedAccount(keyBasedAddr, "w0")
	accounts := []domain.Account{acc}

	migrations := map[string]func(
		domain.ResourceRecord, []domain.Account,
	) domain.ItemsByAccount{
		"history":             domain.MigrateHistory,
		"collectibles":        domain.MigrateCollectibles,
		"collectiblesHistory": domain.MigrateCollectiblesHistory,
	}

	for name, migrate := range migrations {
		migrate := migrate
		t.Run(name, func(t *testing.T) {
			record := domain.ResourceRecord(`[{"hash":"0x1"},{"hash":"0x2"}]`)

			migrated := migrate(record, accounts)
			require.Len(t, migrated, 1)
			items := migrated[acc.ID]
			require.Len(t, items, 2)
			require.JSONEq(t, `{"hash":"0x1"}`, string(items[0]))
			require.JSONEq(t, `{"hash":"0x2"}`, string(items[1]))

			migratedRecord, err := domain.NewResourceRecord(migrated)
			require.NoError(t, err)
			require.True(t, migratedRecord.IsMap())
			require.Nil(t, migrate(migratedRecord, accounts))

			require.Nil(t, migrate(domain.ResourceRecord(`[]`), accounts))
			require.Nil(t, migrate(domain.ResourceRecord(`{}`), accounts))
			require.Nil(t, migrate(nil, accounts))
			require.Nil(t, migrate(record, nil))
		})
	}
}

func TestMigrationTargetIsFirstAccount(t *testing.T) {
	t.Parallel()

	accounts := []domain.Account{
		{ID: smartWalletAddr, Type: domain.AccountTypeSmartWallet},
		domain.NewKeyBasedAccount(keyBasedAddr, "w0"),
	}
	migrated := domain.MigrateHistory(domain.ResourceRecord(`[1,2,3]`), accounts)
	require.Equal(t, domain.ItemsByAccount{
		smartWalletAddr: {json.RawMessage("1"), json.RawMessage("2"), json.RawMessage("3")},
	}, migrated)
}

func TestResourceRecordShape(t *testing.T) {
	t.Parallel()

	require.True(t, domain.ResourceRecord(" [1]").IsList())
	require.True(t, domain.ResourceRecord("\n{}").IsMap())
	require.True(t, domain.ResourceRecord("   ").IsEmpty())
	require.False(t, domain.ResourceRecord(`"x"`).IsMap())
	require.True(t, domain.ResourceHistory.IsValid())
	require.False(t, domain.ResourceKey("unknown").IsValid())
}
