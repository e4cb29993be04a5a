package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypicalPrice(t *testing.T) {
	assert.Equal(t, 9.0, TypicalPrice(10, 8, 9))
	assert.InDelta(t, 10.0, TypicalPrice(11, 9, 10), 1e-12)
}

func TestCumulativeVWAPScenario(t *testing.T) {
	vwap := CumulativeVWAP(
		[]float64{10, 11},
		[]float64{8, 9},
		[]float64{9, 10},
		[]float64{2, 4},
	)
	require.Len(t, vwap, 2)
	assert.Equal(t, 9.0, vwap[0])
	assert.InDelta(t, (2*9.0+4*10.0)/6, vwap[1], 1e-12)
	assert.InDelta(t, 9.667, vwap[1], 1e-3)
}

func TestCumulativeVWAPZeroVolume(t *testing.T) {
	vwap := CumulativeVWAP(
		[]float64{10, 11, 12},
		[]float64{8, 9, 10},
		[]float64{9, 10, 11},
		[]float64{0, 0, 3},
	)
	assert.True(t, math.IsNaN(vwap[0]))
	assert.True(t, math.IsNaN(vwap[1]))
	assert.Equal(t, 11.0, vwap[2], "first volume carries all the weight")
}

func TestCumulativeVWAPEmpty(t *testing.T) {
	assert.Empty(t, CumulativeVWAP(nil, nil, nil, nil))
}

func TestPriceChange(t *testing.T) {
	assert.Equal(t, 1.0, PriceChange(9, 10))
	assert.Equal(t, -2.5, PriceChange(10, 7.5))
	assert.Equal(t, 0.0, PriceChange(9, 9))
}

func TestCrossPairUsdVolume(t *testing.T) {
	// A: ETH-BTC high 0.06 low 0.04 volume 100; B: BTC-USD high 31000 low 29000 close 30000.
	got := CrossPairUsdVolume(0.06, 0.04, 100, 31000, 29000, 30000)
	want := ((0.06 + 0.04 + 30000) / 3) * 100 * ((31000 + 29000 + 30000) / 3)
	assert.InEpsilon(t, want, got, 1e-12)

	// closeB feeds both legs; closeA is not an input at all.
	assert.NotEqual(t, CrossPairUsdVolume(0.06, 0.04, 100, 31000, 29000, 30000),
		CrossPairUsdVolume(0.06, 0.04, 100, 31000, 29000, 30500))
}

func TestCrossPairUsdVolumeNaNPropagates(t *testing.T) {
	nan := math.NaN()
	assert.True(t, math.IsNaN(CrossPairUsdVolume(0.06, 0.04, 100, nan, nan, nan)))
}
