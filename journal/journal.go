// Package journal persists backtest runs: the fills an account
// executed and the equity curve observed along the way.
package journal

import "time"

// TransactionRecord is one filled order as persisted.
type TransactionRecord struct {
	ID         string
	RunID      string
	Code       string
	Time       int64
	Side       string
	Price      float64
	Volume     int64 // signed: positive buy, negative sell
	RemainVol  int64
	RemainCost float64
}

// EquitySnapshot captures the account totals after a mark-to-market.
type EquitySnapshot struct {
	RunID            string
	Time             int64
	Balance          float64
	AvailableBalance float64
	FrozenBalance    float64
	PortfolioValue   float64
}

// RunRecord summarizes one backtest run.
type RunRecord struct {
	RunID        string
	Strategy     string
	Instrument   string
	Created      time.Time
	StartBalance float64
	EndBalance   float64
	Transactions int
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordTransaction(TransactionRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

// Nop discards everything. Useful for dry runs and tests.
type Nop struct{}

func (Nop) RecordRun(RunRecord) error                 { return nil }
func (Nop) RecordTransaction(TransactionRecord) error { return nil }
func (Nop) RecordEquity(EquitySnapshot) error         { return nil }
func (Nop) Close() error                              { return nil }
