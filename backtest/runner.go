// Package backtest replays pre-ordered market events through a
// strategy against a ledger account.
package backtest

import (
	"time"

	"github.com/bpzj/backtest/journal"
	"github.com/bpzj/backtest/ledger"
	"github.com/bpzj/backtest/market"
	"github.com/bpzj/backtest/pkg/id"
	"github.com/bpzj/backtest/strategy"
)

// Runner drives one instrument's events through a strategy, one at a
// time and synchronously, journaling fills and equity as it goes. The
// input must already be in ascending time order; the runner neither
// sorts nor deduplicates.
type Runner struct {
	Account *ledger.Account
	Journal journal.Journal
	Code    market.Code

	RunID        string
	StrategyName string

	recorded int // transactions already journaled
}

func NewRunner(acct *ledger.Account, j journal.Journal, code market.Code) *Runner {
	if j == nil {
		j = journal.Nop{}
	}
	return &Runner{
		Account: acct,
		Journal: j,
		Code:    code,
		RunID:   id.New(),
	}
}

// RunBars replays bars through a bar strategy. The strategy marks the
// position to market itself; the runner snapshots equity after every
// bar.
func (r *Runner) RunBars(strat strategy.BarStrategy, bars []market.Bar) (*Results, error) {
	start := r.Account.Balance

	for _, bar := range bars {
		strat.OnBar(bar, r.Code, r.Account)
		if err := r.flush(bar.Time); err != nil {
			return nil, err
		}
	}

	return r.finish(start)
}

// RunTicks replays ticks through a tick strategy. Tick strategies do
// not mark to market themselves, so the runner marks at the last trade
// price before each equity snapshot.
func (r *Runner) RunTicks(strat strategy.TickStrategy, ticks []market.Tick) (*Results, error) {
	start := r.Account.Balance

	for _, tick := range ticks {
		strat.OnTick(tick, r.Code, r.Account)
		r.Account.MarkToMarket(r.Code, tick.LastPrice)
		if err := r.flush(tick.Time); err != nil {
			return nil, err
		}
	}

	return r.finish(start)
}

// flush journals any fills since the last event, then the current
// equity snapshot.
func (r *Runner) flush(now int64) error {
	txs := r.Account.Transactions
	for ; r.recorded < len(txs); r.recorded++ {
		t := txs[r.recorded]
		err := r.Journal.RecordTransaction(journal.TransactionRecord{
			ID:         t.ID,
			RunID:      r.RunID,
			Code:       t.Code.String(),
			Time:       t.Time,
			Side:       t.Side.String(),
			Price:      t.Price,
			Volume:     t.Volume,
			RemainVol:  t.RemainVol,
			RemainCost: t.RemainCost,
		})
		if err != nil {
			return err
		}
	}

	return r.Journal.RecordEquity(journal.EquitySnapshot{
		RunID:            r.RunID,
		Time:             now,
		Balance:          r.Account.Balance,
		AvailableBalance: r.Account.AvailableBalance,
		FrozenBalance:    r.Account.FrozenBalance,
		PortfolioValue:   r.Account.PortfolioValue,
	})
}

func (r *Runner) finish(startBalance float64) (*Results, error) {
	err := r.Journal.RecordRun(journal.RunRecord{
		RunID:        r.RunID,
		Strategy:     r.StrategyName,
		Instrument:   r.Code.String(),
		Created:      time.Now().UTC(),
		StartBalance: startBalance,
		EndBalance:   r.Account.Balance,
		Transactions: len(r.Account.Transactions),
	})
	if err != nil {
		return nil, err
	}

	return &Results{
		RunID:        r.RunID,
		Code:         r.Code,
		StartBalance: startBalance,
		Account:      r.Account,
	}, nil
}
