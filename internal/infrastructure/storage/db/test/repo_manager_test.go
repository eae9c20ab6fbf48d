package db_test

import (
	"context"
	"sync"
	"testing"

	"github.com/pillarwallet/walletd/internal/core/domain"
	"github.com/pillarwallet/walletd/internal/core/ports"
	dbbadger "github.com/pillarwallet/walletd/internal/infrastructure/storage/db/badger"
	"github.com/pillarwallet/walletd/internal/infrastructure/storage/db/inmemory"
	dbsqlite "github.com/pillarwallet/walletd/internal/infrastructure/storage/db/sqlite"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

type repoManagerFactory struct {
	name string
	new  func(t *testing.T, datadir string) ports.RepoManager
}

var factories = []repoManagerFactory{
	{
		name: "badger",
		new: func(t *testing.T, datadir string) ports.RepoManager {
			repoManager, err := dbbadger.NewRepoManager(datadir, nil)
			require.NoError(t, err)
			return repoManager
		},
	},
	{
		name: "sqlite",
		new: func(t *testing.T, datadir string) ports.RepoManager {
			repoManager, err := dbsqlite.NewRepoManager(datadir)
			require.NoError(t, err)
			return repoManager
		},
	},
	{
		name: "inmemory",
		new: func(t *testing.T, _ string) ports.RepoManager {
			return inmemory.NewRepoManager()
		},
	},
}

func TestRepoManagerImplementations(t *testing.T) {
	for i := range factories {
		factory := factories[i]

		t.Run(factory.name, func(t *testing.T) {
			t.Parallel()

			t.Run("testGetMissingResource", func(t *testing.T) {
				t.Parallel()
				testGetMissingResource(t, newRepoManager(t, factory, ""))
			})

			t.Run("testSaveResource", func(t *testing.T) {
				t.Parallel()
				testSaveResource(t, newRepoManager(t, factory, ""))
			})

			t.Run("testUnknownResource", func(t *testing.T) {
				t.Parallel()
				testUnknownResource(t, newRepoManager(t, factory, ""))
			})

			t.Run("testAccounts", func(t *testing.T) {
				t.Parallel()
				testAccounts(t, newRepoManager(t, factory, ""))
			})

			t.Run("testConcurrentSave", func(t *testing.T) {
				t.Parallel()
				testConcurrentSave(t, newRepoManager(t, factory, ""))
			})
		})
	}
}

func TestRepoManagerPersistence(t *testing.T) {
	for i := range factories {
		factory := factories[i]
		if factory.name == "inmemory" {
			continue
		}

		t.Run(factory.name, func(t *testing.T) {
			datadir := t.TempDir()
			account := domain.NewKeyBasedAccount("0xAbC1", "w1")

			repoManager := factory.new(t, datadir)
			err := repoManager.AccountRepository().SaveAccounts(
				ctx, domain.Roster{account},
			)
			require.NoError(t, err)
			repoManager.Close()

			repoManager = factory.new(t, datadir)
			defer repoManager.Close()

			roster, err := repoManager.AccountRepository().GetAccounts(ctx)
			require.NoError(t, err)
			require.Equal(t, domain.Roster{account}, roster)
		})
	}
}

func TestRepoManagerCloseTwice(t *testing.T) {
	for i := range factories {
		factory := factories[i]

		t.Run(factory.name, func(t *testing.T) {
			repoManager := factory.new(t, t.TempDir())
			require.NotPanics(t, func() {
				repoManager.Close()
				repoManager.Close()
			})
		})
	}
}

func newRepoManager(
	t *testing.T, factory repoManagerFactory, datadir string,
) ports.RepoManager {
	repoManager := factory.new(t, datadir)
	t.Cleanup(repoManager.Close)
	return repoManager
}

func testGetMissingResource(t *testing.T, repoManager ports.RepoManager) {
	record, err := repoManager.ResourceRepository().GetResource(
		ctx, domain.ResourceBalances,
	)
	require.NoError(t, err)
	require.True(t, record.IsEmpty())
}

func testSaveResource(t *testing.T, repoManager ports.RepoManager) {
	repo := repoManager.ResourceRepository()

	err := repo.SaveResource(
		ctx, domain.ResourceHistory, domain.ResourceRecord(`[{"hash":"0x1"}]`),
	)
	require.NoError(t, err)

	record, err := repo.GetResource(ctx, domain.ResourceHistory)
	require.NoError(t, err)
	require.JSONEq(t, `[{"hash":"0x1"}]`, string(record))

	err = repo.SaveResource(
		ctx, domain.ResourceHistory,
		domain.ResourceRecord(`{"0xAbC1":[{"hash":"0x1"}]}`),
	)
	require.NoError(t, err)

	record, err = repo.GetResource(ctx, domain.ResourceHistory)
	require.NoError(t, err)
	require.JSONEq(t, `{"0xAbC1":[{"hash":"0x1"}]}`, string(record))

	record, err = repo.GetResource(ctx, domain.ResourceCollectibles)
	require.NoError(t, err)
	require.True(t, record.IsEmpty())
}

func testUnknownResource(t *testing.T, repoManager ports.RepoManager) {
	repo := repoManager.ResourceRepository()

	_, err := repo.GetResource(ctx, domain.ResourceKey("unknown"))
	require.ErrorIs(t, err, domain.ErrUnknownResource)

	err = repo.SaveResource(ctx, domain.ResourceKey("unknown"), nil)
	require.ErrorIs(t, err, domain.ErrUnknownResource)
}

func testAccounts(t *testing.T, repoManager ports.RepoManager) {
	repo := repoManager.AccountRepository()

	roster, err := repo.GetAccounts(ctx)
	require.NoError(t, err)
	require.Empty(t, roster)

	accounts := domain.Roster{
		domain.NewKeyBasedAccount("0xAbC1", "w1"),
		{
			ID:    "0xDeF2",
			Type:  domain.AccountTypeSmartWallet,
			Extra: map[string]interface{}{"state": "Created"},
		},
	}
	err = repo.SaveAccounts(ctx, accounts)
	require.NoError(t, err)

	roster, err = repo.GetAccounts(ctx)
	require.NoError(t, err)
	require.Equal(t, accounts, roster)

	record, err := repoManager.ResourceRepository().GetResource(
		ctx, domain.ResourceAccounts,
	)
	require.NoError(t, err)
	require.True(t, record.IsList())

	err = repo.SaveAccounts(ctx, nil)
	require.NoError(t, err)

	roster, err = repo.GetAccounts(ctx)
	require.NoError(t, err)
	require.Empty(t, roster)
}

func testConcurrentSave(t *testing.T, repoManager ports.RepoManager) {
	repo := repoManager.ResourceRepository()
	keys := []domain.ResourceKey{
		domain.ResourceBalances,
		domain.ResourceHistory,
		domain.ResourceCollectibles,
		domain.ResourceCollectiblesHistory,
	}

	errs := make(chan error, len(keys))
	wg := &sync.WaitGroup{}
	for _, key := range keys {
		wg.Add(1)
		go func(key domain.ResourceKey) {
			defer wg.Done()
			errs <- repo.SaveResource(
				ctx, key, domain.ResourceRecord(`{"key":"`+key.String()+`"}`),
			)
		}(key)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	for _, key := range keys {
		record, err := repo.GetResource(ctx, key)
		require.NoError(t, err)
		require.JSONEq(t, `{"key":"`+key.String()+`"}`, string(record))
	}
}
