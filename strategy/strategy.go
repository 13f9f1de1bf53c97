package strategy

import (
	"fmt"
	"strings"

	"github.com/bpzj/backtest/ledger"
	"github.com/bpzj/backtest/market"
)

// BarStrategy is called once per bar, in input order. Implementations
// read account state, submit orders through the account, and mark the
// position to market before returning.
type BarStrategy interface {
	OnBar(bar market.Bar, code market.Code, acct *ledger.Account)
}

// TickStrategy is called once per tick, in input order.
type TickStrategy interface {
	OnTick(tick market.Tick, code market.Code, acct *ledger.Account)
}

// BarByName maps a CLI strategy name to a bar strategy.
func BarByName(name string, cfg RangeScalpConfig) (BarStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "range-scalp", "rangescalp":
		return NewRangeScalp(cfg), nil
	default:
		return nil, fmt.Errorf("unknown bar strategy %q (supported: range-scalp)", name)
	}
}

// TickByName maps a CLI strategy name to a tick strategy.
func TickByName(name string, cfg SpreadScalpConfig) (TickStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "spread-scalp", "spreadscalp":
		return NewSpreadScalp(cfg), nil
	default:
		return nil, fmt.Errorf("unknown tick strategy %q (supported: spread-scalp)", name)
	}
}
