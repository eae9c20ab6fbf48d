package application

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pillarwallet/walletd/internal/core/domain"
	"github.com/pillarwallet/walletd/internal/core/ports"
	"github.com/pillarwallet/walletd/pkg/bitcoin"
	log "github.com/sirupsen/logrus"
)

// BtcBalance is the spendable balance of a set of unspent outputs.
type BtcBalance struct {
	Satoshis int64   `json:"satoshis"`
	BTC      float64 `json:"btc"`
}

type BitcoinService interface {
	// Balance sums the unspents with enough confirmations.
	Balance(utxos []bitcoin.Utxo) BtcBalance
	// ImportTransactions replaces the history of address with the ledger
	// events extracted from txs.
	ImportTransactions(
		ctx context.Context, address string, txs []bitcoin.RawTransaction,
	) ([]bitcoin.LedgerEvent, error)
}

type bitcoinService struct {
	repoManager      ports.RepoManager
	events           ports.EventSink
	minConfirmations int64
}

func NewBitcoinService(
	repoManager ports.RepoManager, events ports.EventSink,
	minConfirmations int64,
) (BitcoinService, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if events == nil {
		return nil, fmt.Errorf("missing event sink")
	}
	if minConfirmations <= 0 {
		minConfirmations = bitcoin.MinConfirmations
	}
	return &bitcoinService{repoManager, events, minConfirmations}, nil
}

func (s *bitcoinService) Balance(utxos []bitcoin.Utxo) BtcBalance {
	sats := bitcoin.SumConfirmedWithMin(utxos, s.minConfirmations)
	return BtcBalance{
		Satoshis: sats,
		BTC:      bitcoin.SatoshisToBtc(sats),
	}
}

func (s *bitcoinService) ImportTransactions(
	ctx context.Context, address string, txs []bitcoin.RawTransaction,
) ([]bitcoin.LedgerEvent, error) {
	if address == "" {
		return nil, domain.ErrMissingAccountAddress
	}

	ledgerEvents := bitcoin.ExtractTransactions(address, txs)

	repo := s.repoManager.ResourceRepository()
	record, err := repo.GetResource(ctx, domain.ResourceHistory)
	if err != nil {
		return nil, err
	}

	history := domain.ItemsByAccount{}
	if !record.IsEmpty() {
		if !record.IsMap() {
			return nil, ErrHistoryNotMigrated
		}
		if err := record.Decode(&history); err != nil {
			return nil, fmt.Errorf("failed to decode history: %w", err)
		}
	}

	items := make([]json.RawMessage, 0, len(ledgerEvents))
	for _, e := range ledgerEvents {
		buf, err := json.Marshal(e)
		if err != nil {
			return nil, err
		}
		items = append(items, buf)
	}
	history[address] = items

	if err := s.events.Dispatch(
		ctx, domain.NewEvent(domain.EventSetHistory, history),
	); err != nil {
		return nil, fmt.Errorf("failed to dispatch %s: %w", domain.EventSetHistory, err)
	}

	updatedRecord, err := domain.NewResourceRecord(history)
	if err != nil {
		return nil, err
	}
	if err := repo.SaveResource(ctx, domain.ResourceHistory, updatedRecord); err != nil {
		return nil, fmt.Errorf("failed to save history: %w", err)
	}

	log.Infof("imported %d bitcoin ledger events for %s", len(ledgerEvents), address)
	return ledgerEvents, nil
}
