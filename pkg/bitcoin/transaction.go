package bitcoin

const (
	// Asset is the ticker set on every ledger event of the Bitcoin chain.
	Asset = "BTC"
	// TransactionEventType is the type shared by all history entries.
	TransactionEventType = "transactionEvent"

	unminedHeight = -1
)

// TxStatus is the confirmation status of a ledger event.
type TxStatus string

const (
	TxStatusConfirmed TxStatus = "confirmed"
	TxStatusPending   TxStatus = "pending"
)

// Coin is an input or output of a raw transaction.
type Coin struct {
	ID         string `json:"_id"`
	Address    string `json:"address"`
	Value      int64  `json:"value"`
	MintHeight int64  `json:"mintHeight"`
}

// Status returns confirmed for coins mined in a block, pending otherwise.
func (c Coin) Status() TxStatus {
	if c.MintHeight != unminedHeight {
		return TxStatusConfirmed
	}
	return TxStatusPending
}

type Coins struct {
	Inputs  []Coin `json:"inputs"`
	Outputs []Coin `json:"outputs"`
}

type TransactionDetails struct {
	TxID string `json:"txid"`
	// BlockTime is expressed in milliseconds.
	BlockTime     int64 `json:"blockTime"`
	Confirmations int64 `json:"confirmations"`
	Coins         Coins `json:"coins"`
}

// RawTransaction is a transaction of an address as returned by the indexer.
type RawTransaction struct {
	Details TransactionDetails `json:"details"`
}

// LedgerEvent is a normalized, directional history entry.
type LedgerEvent struct {
	ID               string   `json:"_id"`
	Hash             string   `json:"hash"`
	To               string   `json:"to"`
	From             string   `json:"from"`
	CreatedAt        float64  `json:"createdAt"`
	Asset            string   `json:"asset"`
	NbConfirmations  int64    `json:"nbConfirmations"`
	Status           TxStatus `json:"status"`
	Value            int64    `json:"value"`
	IsPPNTransaction bool     `json:"isPPNTransaction"`
	Type             string   `json:"type"`
}

// ExtractTransactions turns the raw transactions of address into ledger
// events, one per input and one per output. Inputs are reported as incoming
// (to address) and outputs as outgoing (from address). Events keep the order
// of the given transactions, inputs first, and are not sorted by time.
func ExtractTransactions(address string, txs []RawTransaction) []LedgerEvent {
	events := make([]LedgerEvent, 0)
	for _, tx := range txs {
		d := tx.Details
		for _, in := range d.Coins.Inputs {
			events = append(events, newLedgerEvent(d, in, in.Address, address))
		}
		for _, out := range d.Coins.Outputs {
			events = append(events, newLedgerEvent(d, out, address, out.Address))
		}
	}
	return events
}

func newLedgerEvent(
	details TransactionDetails, coin Coin, from, to string,
) LedgerEvent {
	// CreatedAt is in unix seconds, the fractional part is kept.
	return LedgerEvent{
		ID:               coin.ID,
		Hash:             details.TxID,
		To:               to,
		From:             from,
		CreatedAt:        float64(details.BlockTime) / 1000,
		Asset:            Asset,
		NbConfirmations:  details.Confirmations,
		Status:           coin.Status(),
		Value:            coin.Value,
		IsPPNTransaction: false,
		Type:             TransactionEventType,
	}
}
