package market

// Bar represents OHLC (Open, High, Low, Close) candlestick data.
// Time is the bar timestamp in unix seconds.
type Bar struct {
	Time   int64
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}
