package bitcoin

// MinConfirmations is the number of blocks an unspent must be buried under
// before it counts towards the spendable balance.
const MinConfirmations = 1

// Utxo is an unspent output of a Bitcoin address as reported by the indexer.
type Utxo struct {
	TxID          string `json:"txid,omitempty"`
	VOut          uint32 `json:"vout,omitempty"`
	Satoshis      int64  `json:"satoshis"`
	Confirmations int64  `json:"confirmations"`
}

// IsConfirmed returns whether the unspent has at least minConfirmations.
func (u Utxo) IsConfirmed(minConfirmations int64) bool {
	return u.Confirmations >= minConfirmations
}

// SumConfirmed returns the spendable balance in satoshis of the given
// unspents, considering only those with at least MinConfirmations.
func SumConfirmed(utxos []Utxo) int64 {
	return SumConfirmedWithMin(utxos, MinConfirmations)
}

// SumConfirmedWithMin is like SumConfirmed with a custom confirmation
// threshold. Unconfirmed unspents can still be dropped by a reorg, so they are
// never counted. Entries with a negative amount are skipped.
func SumConfirmedWithMin(utxos []Utxo, minConfirmations int64) int64 {
	var balance int64
	for _, u := range utxos {
		if u.Satoshis < 0 || !u.IsConfirmed(minConfirmations) {
			continue
		}
		balance += u.Satoshis
	}
	return balance
}
