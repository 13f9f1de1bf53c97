package ledger

import "github.com/bpzj/backtest/market"

// Side distinguishes the two order directions.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// Order is an ephemeral execution request. It is consumed by a single
// Account call and then discarded; only the resulting Transaction
// survives.
type Order struct {
	Code    market.Code
	Segment string // free-form market segment tag
	Time    int64  // event timestamp, unix seconds
	Side    Side
	Price   float64
	Volume  int64
}

// Transaction is the immutable record of a filled order, appended in
// chronological order and never mutated.
type Transaction struct {
	ID         string
	Code       market.Code
	Time       int64
	Side       Side
	Price      float64
	Volume     int64   // signed: positive for buys, negative for sells
	RemainVol  int64   // position volume after the fill
	RemainCost float64 // position cost basis after the fill
}
