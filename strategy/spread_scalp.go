package strategy

import (
	"github.com/bpzj/backtest/ledger"
	"github.com/bpzj/backtest/market"
)

// SpreadScalp trades one instrument off tick quotes. When flat and the
// touch spread is tight it opens in the direction of last-trade
// momentum; when holding it exits on fixed stop-loss/take-profit
// points. A cooldown rate-limits trading.
//
// A "short" entry buys at the bid and tracks the intended exposure as a
// negative strategy-local position: the cash ledger cannot sell shares
// it does not hold, so the short leg rides the long side of the book.
type SpreadScalp struct {
	SpreadScalpConfig

	position       int64 // signed intended exposure
	lastTradePrice float64
	lastTradeTime  int64
}

type SpreadScalpConfig struct {
	MinSpread        float64 `json:"min-spread" yaml:"min-spread"`
	MinVolume        int64   `json:"min-volume" yaml:"min-volume"`
	TradeVolume      int64   `json:"trade-volume" yaml:"trade-volume"`
	StopLossPoints   float64 `json:"stop-loss-points" yaml:"stop-loss-points"`
	TakeProfitPoints float64 `json:"take-profit-points" yaml:"take-profit-points"`
	CooldownPeriod   int64   `json:"cooldown-period" yaml:"cooldown-period"` // seconds
}

// SpreadScalpDefaults returns the reference parameter set.
func SpreadScalpDefaults() SpreadScalpConfig {
	return SpreadScalpConfig{
		MinSpread:        0.01,
		MinVolume:        1000,
		TradeVolume:      2000,
		StopLossPoints:   0.03,
		TakeProfitPoints: 0.05,
		CooldownPeriod:   3,
	}
}

func NewSpreadScalp(cfg SpreadScalpConfig) *SpreadScalp {
	return &SpreadScalp{SpreadScalpConfig: cfg}
}

// Position reports the signed intended exposure (negative while a
// short leg is on).
func (s *SpreadScalp) Position() int64 { return s.position }

func (s *SpreadScalp) OnTick(tick market.Tick, code market.Code, acct *ledger.Account) {
	if tick.Time-s.lastTradeTime < s.CooldownPeriod {
		return
	}

	bid, ask := tick.Bids[0], tick.Asks[0]
	if bid.Volume < s.MinVolume || ask.Volume < s.MinVolume {
		return
	}

	if s.position == 0 {
		if tick.Spread() > s.MinSpread {
			return
		}
		switch {
		case bid.Price > tick.LastPrice && ask.Volume > s.MinVolume:
			// Long bias: bid has lifted through the last trade.
			s.open(tick, code, acct, ask.Price, s.TradeVolume)
		case ask.Price < tick.LastPrice && bid.Volume > s.MinVolume:
			// Short bias: ask has dropped through the last trade.
			s.open(tick, code, acct, bid.Price, -s.TradeVolume)
		}
		return
	}

	s.checkClose(tick, code, acct)
}

func (s *SpreadScalp) open(tick market.Tick, code market.Code, acct *ledger.Account, price float64, position int64) {
	err := acct.Buy(ledger.Order{
		Code:   code,
		Time:   tick.Time,
		Side:   ledger.Buy,
		Price:  price,
		Volume: s.TradeVolume,
	})
	if err != nil {
		return
	}
	s.position = position
	s.lastTradePrice = price
	s.lastTradeTime = tick.Time
}

func (s *SpreadScalp) checkClose(tick market.Tick, code market.Code, acct *ledger.Account) {
	bid := tick.Bids[0].Price
	ask := tick.Asks[0].Price

	switch {
	case s.position > 0:
		// Longs mark against the bid.
		if bid <= s.lastTradePrice-s.StopLossPoints || bid >= s.lastTradePrice+s.TakeProfitPoints {
			s.close(tick, code, acct, bid)
		}
	case s.position < 0:
		// Shorts mark against the ask.
		if ask >= s.lastTradePrice+s.StopLossPoints || ask <= s.lastTradePrice-s.TakeProfitPoints {
			s.close(tick, code, acct, ask)
		}
	}
}

func (s *SpreadScalp) close(tick market.Tick, code market.Code, acct *ledger.Account, price float64) {
	volume := s.position
	if volume < 0 {
		volume = -volume
	}

	err := acct.Sell(ledger.Order{
		Code:   code,
		Time:   tick.Time,
		Side:   ledger.Sell,
		Price:  price,
		Volume: volume,
	})
	if err == nil {
		s.position = 0
		s.lastTradeTime = tick.Time
	}
}
