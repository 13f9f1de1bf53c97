package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickSpreadAndMid(t *testing.T) {
	var tick Tick
	tick.Bids[0] = Level{Price: 10.02, Volume: 2000}
	tick.Asks[0] = Level{Price: 10.04, Volume: 1800}

	assert.InDelta(t, 0.02, tick.Spread(), 1e-9)
	assert.InDelta(t, 10.03, tick.Mid(), 1e-9)
}

func TestNewCodeNormalizes(t *testing.T) {
	assert.Equal(t, Code("600795"), NewCode(" 600795 "))
	assert.Equal(t, Code("SH600795"), NewCode("sh600795"))
	assert.Equal(t, "600795", NewCode("600795").String())
}
