package backtest

import (
	"math"
	"strings"
	"testing"

	"github.com/bpzj/backtest/journal"
	"github.com/bpzj/backtest/ledger"
	"github.com/bpzj/backtest/market"
	"github.com/bpzj/backtest/strategy"
)

// testJournal captures everything the runner records.
type testJournal struct {
	runs         []journal.RunRecord
	transactions []journal.TransactionRecord
	equity       []journal.EquitySnapshot
}

func (j *testJournal) RecordRun(r journal.RunRecord) error { j.runs = append(j.runs, r); return nil }
func (j *testJournal) RecordTransaction(t journal.TransactionRecord) error {
	j.transactions = append(j.transactions, t)
	return nil
}
func (j *testJournal) RecordEquity(e journal.EquitySnapshot) error {
	j.equity = append(j.equity, e)
	return nil
}
func (j *testJournal) Close() error { return nil }

const day = 24 * 60 * 60

func dayBar(d int, close float64) market.Bar {
	return market.Bar{Time: int64(d) * day, Open: close, High: close, Low: close, Close: close, Volume: 1_000_000}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestRunBarsJournalsFillsAndEquity(t *testing.T) {
	acct := ledger.NewAccount("t", 1_000_000)
	j := &testJournal{}
	code := market.NewCode("600795")

	r := NewRunner(acct, j, code)
	r.StrategyName = "range-scalp"

	// Entry on day 1, hold through day 2, liquidate on day 3.
	bars := []market.Bar{dayBar(1, 4.2), dayBar(2, 4.5), dayBar(3, 6.5)}

	res, err := r.RunBars(strategy.NewRangeScalp(strategy.RangeScalpDefaults()), bars)
	if err != nil {
		t.Fatalf("RunBars: %v", err)
	}

	if len(j.transactions) != 2 {
		t.Fatalf("journaled transactions = %d, want 2", len(j.transactions))
	}
	buy, sell := j.transactions[0], j.transactions[1]
	if buy.Side != "BUY" || buy.Volume != 2000 || buy.Price != 4.2 || buy.RunID != r.RunID {
		t.Fatalf("unexpected buy record: %+v", buy)
	}
	if sell.Side != "SELL" || sell.Volume != -2000 || sell.Price != 6.5 {
		t.Fatalf("unexpected sell record: %+v", sell)
	}
	if buy.ID == "" || buy.ID == sell.ID {
		t.Fatalf("fill ids not unique: %q vs %q", buy.ID, sell.ID)
	}

	// One equity snapshot per bar, balance identity intact in each.
	if len(j.equity) != 3 {
		t.Fatalf("equity snapshots = %d, want 3", len(j.equity))
	}
	for i, e := range j.equity {
		if e.Time != bars[i].Time {
			t.Fatalf("snapshot %d at %d, want %d", i, e.Time, bars[i].Time)
		}
		if !approx(e.Balance, e.AvailableBalance+e.FrozenBalance+e.PortfolioValue) {
			t.Fatalf("snapshot %d breaks the balance identity: %+v", i, e)
		}
	}

	if len(j.runs) != 1 {
		t.Fatalf("run records = %d, want 1", len(j.runs))
	}
	run := j.runs[0]
	if run.RunID != r.RunID || run.Strategy != "range-scalp" || run.Instrument != "600795" {
		t.Fatalf("unexpected run record: %+v", run)
	}
	if run.Transactions != 2 || !approx(run.StartBalance, 1_000_000) {
		t.Fatalf("unexpected run record: %+v", run)
	}

	// 2000 shares bought at 4.2, sold at 6.5.
	if !approx(res.NetPL(), 4600) {
		t.Fatalf("NetPL = %v, want 4600", res.NetPL())
	}
	if !approx(run.EndBalance, 1_004_600) {
		t.Fatalf("end balance = %v, want 1004600", run.EndBalance)
	}
}

func TestRunBarsReportListsFills(t *testing.T) {
	acct := ledger.NewAccount("t", 1_000_000)
	code := market.NewCode("600795")
	r := NewRunner(acct, nil, code) // nil journal defaults to Nop

	bars := []market.Bar{dayBar(1, 4.2), dayBar(2, 6.5)}
	res, err := r.RunBars(strategy.NewRangeScalp(strategy.RangeScalpDefaults()), bars)
	if err != nil {
		t.Fatalf("RunBars: %v", err)
	}

	report := res.Report()
	for _, want := range []string{"BUY", "SELL", "Final position: 0 shares", "1970-01-02"} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
}

func TestRunTicksMarksEveryTick(t *testing.T) {
	acct := ledger.NewAccount("t", 1_000_000)
	j := &testJournal{}
	code := market.NewCode("000001")

	r := NewRunner(acct, j, code)
	r.StrategyName = "spread-scalp"

	tick := market.Tick{Time: 100, LastPrice: 10.0, Volume: 50_000}
	tick.Bids[0] = market.Level{Price: 10.02, Volume: 2000}
	tick.Asks[0] = market.Level{Price: 10.03, Volume: 2000}

	later := tick
	later.Time = 200
	later.LastPrice = 10.05

	res, err := r.RunTicks(strategy.NewSpreadScalp(strategy.SpreadScalpDefaults()), []market.Tick{tick, later})
	if err != nil {
		t.Fatalf("RunTicks: %v", err)
	}

	if len(j.equity) != 2 {
		t.Fatalf("equity snapshots = %d, want 2", len(j.equity))
	}
	// The runner marks at the last trade price after each tick.
	if got := acct.Position(code).CurrentPrice; got != 10.05 {
		t.Fatalf("marked price = %v, want 10.05", got)
	}
	if res.RunID == "" {
		t.Fatal("empty run id")
	}
}
