package ledger

import "errors"

// Business-rule rejections. Buy and Sell report these instead of
// panicking; the ledger is left untouched whenever one is returned.
var (
	// ErrInsufficientFunds rejects a buy whose turnover exceeds the
	// available balance.
	ErrInsufficientFunds = errors.New("ledger: insufficient available balance")

	// ErrInsufficientVolume rejects a sell for more shares than are
	// currently sellable (shares bought this session do not count).
	ErrInsufficientVolume = errors.New("ledger: insufficient sellable volume")

	// ErrUnknownInstrument rejects a sell against a code that was never
	// bought.
	ErrUnknownInstrument = errors.New("ledger: no position for instrument")

	// ErrInvalidVolume rejects orders with a non-positive volume.
	ErrInvalidVolume = errors.New("ledger: order volume must be positive")

	// ErrNotImplemented is returned by CancelOrder: fills are immediate
	// and no order identity exists to cancel against.
	ErrNotImplemented = errors.New("ledger: order cancellation not implemented")
)
