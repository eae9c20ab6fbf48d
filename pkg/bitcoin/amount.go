package bitcoin

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
)

// SatoshisToBtc converts an amount expressed in satoshis into BTC.
func SatoshisToBtc(satoshis int64) float64 {
	return btcutil.Amount(satoshis).ToBTC()
}

// BtcToSatoshis converts an amount expressed in BTC into satoshis as
// floor(btc * 1e8). The product is computed in float64, so binary float error
// can leave it just below an integer: 0.29 BTC gives 28999999 satoshis.
func BtcToSatoshis(btc float64) int64 {
	return decimal.NewFromFloat(btc * btcutil.SatoshiPerBitcoin).Floor().IntPart()
}
