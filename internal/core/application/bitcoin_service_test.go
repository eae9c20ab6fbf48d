package application_test

import (
	"encoding/json"
	"testing"

	"github.com/pillarwallet/walletd/internal/core/application"
	"github.com/pillarwallet/walletd/internal/core/domain"
	"github.com/pillarwallet/walletd/internal/infrastructure/storage/db/inmemory"
	"github.com/pillarwallet/walletd/pkg/bitcoin"
	"github.com/stretchr/testify/require"
)

const btcAddr = "mkHS9ne12qx9pS9VojpwU5xtRd4T7X7ZUt"

func TestBitcoinBalance(t *testing.T) {
	svc, err := application.NewBitcoinService(
		inmemory.NewRepoManager(), &eventRecorder{}, 0,
	)
	require.NoError(t, err)

	utxos := []bitcoin.Utxo{
		{TxID: "a", Satoshis: 150000000, Confirmations: 3},
		{TxID: "b", Satoshis: 50000000, Confirmations: 1},
		{TxID: "c", Satoshis: 10000000, Confirmations: 0},
	}
	require.Equal(t, application.BtcBalance{
		Satoshis: 200000000,
		BTC:      2,
	}, svc.Balance(utxos))

	svc, err = application.NewBitcoinService(
		inmemory.NewRepoManager(), &eventRecorder{}, 2,
	)
	require.NoError(t, err)
	require.Equal(t, int64(150000000), svc.Balance(utxos).Satoshis)
}

func TestImportTransactions(t *testing.T) {
	txs := []bitcoin.RawTransaction{
		{
			Details: bitcoin.TransactionDetails{
				TxID:          "tx1",
				BlockTime:     1554123456789,
				Confirmations: 2,
				Coins: bitcoin.Coins{
					Inputs: []bitcoin.Coin{
						{ID: "in1", Address: "sender", Value: 3000, MintHeight: 100},
					},
					Outputs: []bitcoin.Coin{
						{ID: "out1", Address: btcAddr, Value: 2000, MintHeight: -1},
					},
				},
			},
		},
	}

	t.Run("into migrated history", func(t *testing.T) {
		repoManager := inmemory.NewRepoManager()
		events := &eventRecorder{}
		err := repoManager.ResourceRepository().SaveResource(
			ctx, domain.ResourceHistory,
			domain.ResourceRecord(`{"0xAbC1":[{"hash":"0x1"}]}`),
		)
		require.NoError(t, err)

		svc, err := application.NewBitcoinService(repoManager, events, 0)
		require.NoError(t, err)

		ledgerEvents, err := svc.ImportTransactions(ctx, btcAddr, txs)
		require.NoError(t, err)
		require.Len(t, ledgerEvents, 2)
		require.Equal(t, []domain.EventType{domain.EventSetHistory}, events.types())

		record, err := repoManager.ResourceRepository().GetResource(
			ctx, domain.ResourceHistory,
		)
		require.NoError(t, err)

		var history map[string][]bitcoin.LedgerEvent
		require.NoError(t, json.Unmarshal(record, &history))
		require.Len(t, history, 2)
		require.Contains(t, history, "0xAbC1")
		require.Equal(t, ledgerEvents, history[btcAddr])
	})

	t.Run("into empty history", func(t *testing.T) {
		repoManager := inmemory.NewRepoManager()
		svc, err := application.NewBitcoinService(repoManager, &eventRecorder{}, 0)
		require.NoError(t, err)

		_, err = svc.ImportTransactions(ctx, btcAddr, txs)
		require.NoError(t, err)

		// Importing again replaces the previous events.
		ledgerEvents, err := svc.ImportTransactions(ctx, btcAddr, txs)
		require.NoError(t, err)

		record, err := repoManager.ResourceRepository().GetResource(
			ctx, domain.ResourceHistory,
		)
		require.NoError(t, err)

		var history map[string][]bitcoin.LedgerEvent
		require.NoError(t, json.Unmarshal(record, &history))
		require.Equal(t, map[string][]bitcoin.LedgerEvent{btcAddr: ledgerEvents}, history)
	})

	t.Run("legacy history", func(t *testing.T) {
		repoManager := inmemory.NewRepoManager()
		err := repoManager.ResourceRepository().SaveResource(
			ctx, domain.ResourceHistory, domain.ResourceRecord(`[{"hash":"0x1"}]`),
		)
		require.NoError(t, err)

		svc, err := application.NewBitcoinService(repoManager, &eventRecorder{}, 0)
		require.NoError(t, err)

		_, err = svc.ImportTransactions(ctx, btcAddr, txs)
		require.ErrorIs(t, err, application.ErrHistoryNotMigrated)
	})

	t.Run("missing address", func(t *testing.T) {
		svc, err := application.NewBitcoinService(
			inmemory.NewRepoManager(), &eventRecorder{}, 0,
		)
		require.NoError(t, err)

		_, err = svc.ImportTransactions(ctx, "", txs)
		require.ErrorIs(t, err, domain.ErrMissingAccountAddress)
	})
}
