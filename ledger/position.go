package ledger

import "github.com/bpzj/backtest/market"

// Position is the holding record for one instrument. It carries no
// behavior of its own and is mutated only by Account methods. A
// position lives for the account's lifetime, even after full
// liquidation drops its volume to zero.
//
// Invariant: 0 <= AvailableVol <= Volume, CostPrice >= 0.
type Position struct {
	Code         market.Code
	Volume       int64
	AvailableVol int64   // sellable now; new buys settle next session
	CostPrice    float64 // volume-weighted average acquisition price
	CurrentPrice float64 // last mark-to-market price
	MarketValue  float64 // CurrentPrice * Volume at the last mark
}
