package market

// Depth is the number of book levels carried per side of a Tick.
const Depth = 5

// Level is one side of the order book at a given depth.
type Level struct {
	Price  float64
	Volume int64
}

// Tick is a single quote snapshot: the last trade plus five levels of
// depth per side. Bids[0] and Asks[0] are the touch.
type Tick struct {
	Time      int64
	LastPrice float64
	Volume    int64
	Bids      [Depth]Level
	Asks      [Depth]Level
}

// Spread returns the ask-bid distance at the touch.
func (t Tick) Spread() float64 {
	return t.Asks[0].Price - t.Bids[0].Price
}

// Mid returns the touch midpoint.
func (t Tick) Mid() float64 {
	return (t.Asks[0].Price + t.Bids[0].Price) / 2
}
