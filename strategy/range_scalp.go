package strategy

import (
	"github.com/bpzj/backtest/ledger"
	"github.com/bpzj/backtest/market"
)

// sessionGap is the bar-to-bar time gap that marks a new trading
// session, after which same-session buys become sellable.
const sessionGap = 12 * 60 * 60

// RangeScalp trades one instrument off daily bars:
//   - enters inside a fixed price range when flat
//   - averages down by doubling the whole position on each drawdown
//     trigger (exposure compounds on every trigger)
//   - trims back toward a dynamic base once the close clears the cost
//     basis by a stop-profit step, widened 0.02 per accumulated buy-in
//   - liquidates everything sellable above a fixed price
//
// Availability follows the next-session settlement rule, so trims only
// ever sell shares bought in an earlier session.
type RangeScalp struct {
	RangeScalpConfig

	dynamicBaseVolume int64
	buyTimes          int64
	dynamicStopProfit float64
	lastBarTime       int64
}

type RangeScalpConfig struct {
	BuyPriceLow            float64 `json:"buy-price-low" yaml:"buy-price-low"`
	BuyPriceHigh           float64 `json:"buy-price-high" yaml:"buy-price-high"`
	InitBaseVolume         int64   `json:"init-base-volume" yaml:"init-base-volume"`
	AddPositionDrawdownPct float64 `json:"add-position-drawdown-pct" yaml:"add-position-drawdown-pct"`
	InitStopProfit         float64 `json:"init-stop-profit" yaml:"init-stop-profit"`
	LiquidationPrice       float64 `json:"liquidation-price" yaml:"liquidation-price"`
}

// RangeScalpDefaults returns the reference parameter set.
func RangeScalpDefaults() RangeScalpConfig {
	return RangeScalpConfig{
		BuyPriceLow:            4.1,
		BuyPriceHigh:           4.46,
		InitBaseVolume:         2000,
		AddPositionDrawdownPct: 0.02,
		InitStopProfit:         0.04,
		LiquidationPrice:       6.0,
	}
}

func NewRangeScalp(cfg RangeScalpConfig) *RangeScalp {
	return &RangeScalp{
		RangeScalpConfig:  cfg,
		dynamicStopProfit: cfg.InitStopProfit,
	}
}

// OnBar advances the state machine by one bar. Regardless of the branch
// taken the position is marked at the close before returning.
func (s *RangeScalp) OnBar(bar market.Bar, code market.Code, acct *ledger.Account) {
	volume := s.refreshSession(bar, code, acct)

	if volume == 0 {
		s.initialEntry(bar, code, acct)
	} else {
		s.checkReentry(bar, code, acct)
		s.checkProfit(bar, code, acct)
	}

	acct.MarkToMarket(code, bar.Close)
	s.lastBarTime = bar.Time
}

// refreshSession rolls availability over when the gap since the
// previous bar crosses a session boundary, then reports the current
// position volume.
func (s *RangeScalp) refreshSession(bar market.Bar, code market.Code, acct *ledger.Account) int64 {
	p := acct.Position(code)
	if bar.Time-s.lastBarTime > sessionGap {
		acct.Settle(code)
	}
	return p.Volume
}

func (s *RangeScalp) initialEntry(bar market.Bar, code market.Code, acct *ledger.Account) {
	price := bar.Close
	if price < s.BuyPriceLow || price > s.BuyPriceHigh {
		return
	}

	err := acct.Buy(ledger.Order{
		Code:   code,
		Time:   bar.Time,
		Side:   ledger.Buy,
		Price:  price,
		Volume: s.InitBaseVolume,
	})
	if err == nil {
		s.dynamicBaseVolume = s.InitBaseVolume
	}
}

func (s *RangeScalp) checkReentry(bar market.Bar, code market.Code, acct *ledger.Account) {
	p := acct.Position(code)
	price := bar.Close
	if price > p.CostPrice*(1-s.AddPositionDrawdownPct) {
		return
	}

	err := acct.Buy(ledger.Order{
		Code:   code,
		Time:   bar.Time,
		Side:   ledger.Buy,
		Price:  price,
		Volume: p.Volume * 2,
	})
	if err == nil {
		s.buyTimes++
	}
}

func (s *RangeScalp) checkProfit(bar market.Bar, code market.Code, acct *ledger.Account) {
	p := acct.Position(code)
	price := bar.Close
	sellable := p.AvailableVol

	switch {
	case price > s.LiquidationPrice:
		err := acct.Sell(ledger.Order{
			Code:   code,
			Time:   bar.Time,
			Side:   ledger.Sell,
			Price:  price,
			Volume: sellable,
		})
		if err == nil {
			s.dynamicStopProfit = s.InitStopProfit
		}

	case price >= p.CostPrice+s.dynamicStopProfit+0.02*float64(s.buyTimes):
		if sellable <= s.dynamicBaseVolume {
			return
		}
		sellVolume := sellable - s.dynamicBaseVolume - s.buyTimes*s.InitBaseVolume

		err := acct.Sell(ledger.Order{
			Code:   code,
			Time:   bar.Time,
			Side:   ledger.Sell,
			Price:  price,
			Volume: sellVolume,
		})
		if err == nil {
			s.dynamicBaseVolume = acct.Position(code).Volume
		}
	}
}
