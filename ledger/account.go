package ledger

import (
	"github.com/bpzj/backtest/market"
	"github.com/bpzj/backtest/pkg/id"
)

// Account owns the cash balances and the per-instrument positions of a
// simulated trading account. All ledger state flows through its
// methods; strategies read positions but never write them.
//
// After every MarkToMarket the identity
//
//	Balance == AvailableBalance + FrozenBalance + PortfolioValue
//
// holds to floating-point tolerance.
type Account struct {
	Name string

	// Balance is the derived total: cash plus frozen plus marked
	// portfolio value.
	Balance float64

	// FrozenBalance is cash reserved by unfilled orders. Fills are
	// immediate in this model, so Buy and Sell never touch it; it is
	// carried for forward compatibility and included in Balance.
	FrozenBalance float64

	// AvailableBalance is spendable cash.
	AvailableBalance float64

	// PortfolioValue is the sum of all positions' market values,
	// maintained incrementally by MarkToMarket.
	PortfolioValue float64

	// Profit is realized/unrealized P&L. Reserved; the minimal engine
	// does not populate it.
	Profit float64

	hold map[market.Code]*Position

	// Transactions is the append-only, chronological record of fills.
	Transactions []Transaction

	// Orders is the audit trail of accepted orders.
	Orders []Order
}

// NewAccount returns an account holding balance in spendable cash and
// nothing else.
func NewAccount(name string, balance float64) *Account {
	return &Account{
		Name:             name,
		Balance:          balance,
		AvailableBalance: balance,
		hold:             make(map[market.Code]*Position),
	}
}

// Position returns the holding for code, creating a zeroed one on
// first use. The lookup is idempotent.
func (a *Account) Position(code market.Code) *Position {
	p, ok := a.hold[code]
	if !ok {
		p = &Position{Code: code}
		a.hold[code] = p
	}
	return p
}

// Holdings exposes the position map for reporting. Callers must treat
// it as read-only.
func (a *Account) Holdings() map[market.Code]*Position {
	return a.hold
}

// Buy executes order as an immediate, all-or-nothing fill. On any
// rejection the ledger is left byte-for-byte unchanged.
//
// Newly bought shares are deliberately not added to AvailableVol:
// they become sellable only after the next session Settle.
func (a *Account) Buy(order Order) error {
	if order.Volume <= 0 {
		return ErrInvalidVolume
	}

	turnover := order.Price * float64(order.Volume)
	if a.AvailableBalance < turnover {
		return ErrInsufficientFunds
	}

	a.AvailableBalance -= turnover

	p := a.Position(order.Code)
	totalCost := float64(p.Volume)*p.CostPrice + turnover
	totalVolume := p.Volume + order.Volume
	p.CostPrice = totalCost / float64(totalVolume)
	p.Volume = totalVolume

	a.Orders = append(a.Orders, order)
	a.Transactions = append(a.Transactions, Transaction{
		ID:         id.New(),
		Code:       order.Code,
		Time:       order.Time,
		Side:       Buy,
		Price:      order.Price,
		Volume:     order.Volume,
		RemainVol:  totalVolume,
		RemainCost: p.CostPrice,
	})
	return nil
}

// Sell executes order as an immediate, all-or-nothing fill against the
// sellable portion of the holding. The cost basis is recomputed so the
// remaining shares absorb the proceeds, and resets to zero on full
// liquidation.
func (a *Account) Sell(order Order) error {
	p, ok := a.hold[order.Code]
	if !ok {
		return ErrUnknownInstrument
	}
	if order.Volume <= 0 {
		return ErrInvalidVolume
	}
	if order.Volume > p.AvailableVol {
		return ErrInsufficientVolume
	}

	turnover := order.Price * float64(order.Volume)
	a.AvailableBalance += turnover

	totalVolume := p.Volume - order.Volume
	if totalVolume != 0 {
		p.CostPrice = (float64(p.Volume)*p.CostPrice - turnover) / float64(totalVolume)
	} else {
		p.CostPrice = 0
	}
	p.Volume = totalVolume
	p.AvailableVol -= order.Volume

	a.Orders = append(a.Orders, order)
	a.Transactions = append(a.Transactions, Transaction{
		ID:         id.New(),
		Code:       order.Code,
		Time:       order.Time,
		Side:       Sell,
		Price:      order.Price,
		Volume:     -order.Volume,
		RemainVol:  totalVolume,
		RemainCost: p.CostPrice,
	})
	return nil
}

// MarkToMarket revalues the position for code at price and refreshes
// the account totals. Unknown codes are silently ignored; marking is
// not an error path.
func (a *Account) MarkToMarket(code market.Code, price float64) {
	p, ok := a.hold[code]
	if !ok {
		return
	}

	marketValue := price * float64(p.Volume)
	a.PortfolioValue += marketValue - p.MarketValue
	p.CurrentPrice = price
	p.MarketValue = marketValue

	a.Balance = a.AvailableBalance + a.PortfolioValue + a.FrozenBalance
}

// Settle rolls the holding for code into a new trading session: every
// share held becomes sellable. No-op for unknown codes.
func (a *Account) Settle(code market.Code) {
	if p, ok := a.hold[code]; ok {
		p.AvailableVol = p.Volume
	}
}

// CancelOrder is not implemented. Orders fill immediately and no order
// identity is tracked to cancel against; callers get an explicit error
// rather than a silent fake cancellation.
func (a *Account) CancelOrder() error {
	return ErrNotImplemented
}
