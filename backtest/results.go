package backtest

import (
	"fmt"
	"strings"
	"time"

	"github.com/bpzj/backtest/ledger"
	"github.com/bpzj/backtest/market"
)

// Results is the final ledger snapshot of one run.
type Results struct {
	RunID        string
	Code         market.Code
	StartBalance float64
	Account      *ledger.Account
}

// NetPL is the total balance change over the run.
func (r *Results) NetPL() float64 {
	return r.Account.Balance - r.StartBalance
}

// Report renders the fill log and final ledger state, one
// "date  SIDE volume @ price -> volume/cost" line per transaction.
func (r *Results) Report() string {
	var b strings.Builder

	fmt.Fprintln(&b, "Transactions:")
	for _, t := range r.Account.Transactions {
		day := time.Unix(t.Time, 0).UTC().Format("2006-01-02")
		fmt.Fprintf(&b, "%s  %-4s %7d @ %.2f  -> %d @ %.3f\n",
			day, t.Side, t.Volume, t.Price, t.RemainVol, t.RemainCost)
	}

	p := r.Account.Position(r.Code)
	fmt.Fprintf(&b, "\nFinal position: %d shares\n", p.Volume)
	fmt.Fprintf(&b, "Cost basis:     %.3f\n", p.CostPrice)
	fmt.Fprintf(&b, "Cash:           %.3f\n", r.Account.AvailableBalance)
	fmt.Fprintf(&b, "Total balance:  %.3f\n", r.Account.Balance)

	return b.String()
}
