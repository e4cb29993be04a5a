package core

import "math"

// -----------------------------------------------------------------------------

// TypicalPrice is the simple average of a bar's high, low and close.
func TypicalPrice(high, low, close float64) float64 {
	return (high + low + close) / 3
}

// -----------------------------------------------------------------------------

// CumulativeVWAP returns the running volume-weighted typical price:
//
//	vwap[i] = Σ_{k<=i} volume[k]*typical[k] / Σ_{k<=i} volume[k]
//
// An index whose cumulative volume is zero yields NaN. Slices must be of
// equal length; inputs are assumed to be in chronological order.
func CumulativeVWAP(highs, lows, closes, volumes []float64) []float64 {
	out := make([]float64, len(volumes))
	var cumPV, cumVol float64

	for i := range volumes {
		cumPV += volumes[i] * TypicalPrice(highs[i], lows[i], closes[i])
		cumVol += volumes[i]

		if cumVol == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = cumPV / cumVol
	}
	return out
}

// -----------------------------------------------------------------------------

// PriceChange is the signed per-bar move, positive when the bar closed
// above its open.
func PriceChange(open, close float64) float64 {
	return close - open
}

// -----------------------------------------------------------------------------

// CrossPairUsdVolume estimates the USD notional of an A/B bar using the
// B/USD bar at the same time:
//
//	((highA + lowA + closeB)/3) * volumeA * ((highB + lowB + closeB)/3)
//
// closeB appears in both legs. This is the dashboard's historical formula
// and is kept as is so charts stay comparable with earlier renders.
func CrossPairUsdVolume(highA, lowA, volumeA, highB, lowB, closeB float64) float64 {
	return ((highA + lowA + closeB) / 3) * volumeA * ((highB + lowB + closeB) / 3)
}
