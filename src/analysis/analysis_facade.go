package analysis

import (
	"math"
	"sort"

	"cryptoboard/src/analysis/core"
	"cryptoboard/src/logger"
	"cryptoboard/src/models"
)

// AnalysisFacade turns fetched bar series into the dashboard's derived
// tables. All methods are pure functions of their arguments.
type AnalysisFacade struct {
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAnalysisFacade(log *logger.Logger) *AnalysisFacade {
	return &AnalysisFacade{
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// SortedBars returns a copy of bars ordered by ascending time. The provider
// may answer most-recent-first; cumulative statistics need chronological
// order.
func SortedBars(bars []models.MBar) []models.MBar {
	sorted := make([]models.MBar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})
	return sorted
}

// -----------------------------------------------------------------------------

// DeriveSeries computes the primary table: the bar fields plus cumulative
// VWAP and per-bar dollar change, in chronological order.
func (a *AnalysisFacade) DeriveSeries(series models.MBarSeries) []models.MDerivedBar {
	bars := SortedBars(series.Bars)

	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))
	closes := make([]float64, len(bars))
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		highs[i] = b.High
		lows[i] = b.Low
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	vwap := core.CumulativeVWAP(highs, lows, closes, volumes)

	out := make([]models.MDerivedBar, len(bars))
	nanCount := 0
	for i, b := range bars {
		if math.IsNaN(vwap[i]) {
			nanCount++
		}
		out[i] = models.MDerivedBar{
			Time:   b.Time,
			Open:   models.MFloat(b.Open),
			High:   models.MFloat(b.High),
			Low:    models.MFloat(b.Low),
			Close:  models.MFloat(b.Close),
			Volume: models.MFloat(b.Volume),
			VWAP:   models.MFloat(vwap[i]),
			Change: models.MFloat(core.PriceChange(b.Open, b.Close)),
		}
	}

	a.Logger.Debug("Derived %s: %d rows, %d without vwap", series.Symbol, len(out), nanCount)
	return out
}

// -----------------------------------------------------------------------------

// JoinLeft aligns right onto left by bar time. Every left bar is kept, in
// chronological order; left bars without a right bar at the same time get
// NaN right-side fields. Duplicate right times yield one row per match.
func JoinLeft(left, right models.MBarSeries) []models.MJoinedBar {
	byTime := make(map[int64][]models.MBar, len(right.Bars))
	for _, b := range right.Bars {
		key := b.Time.UnixNano()
		byTime[key] = append(byTime[key], b)
	}

	nan := math.NaN()
	missing := models.MBar{Open: nan, High: nan, Low: nan, Close: nan, Volume: nan}

	joined := make([]models.MJoinedBar, 0, len(left.Bars))
	for _, l := range SortedBars(left.Bars) {
		matches := byTime[l.Time.UnixNano()]
		if len(matches) == 0 {
			r := missing
			r.Time = l.Time
			joined = append(joined, models.MJoinedBar{Time: l.Time, Left: l, Right: r})
			continue
		}
		for _, r := range matches {
			joined = append(joined, models.MJoinedBar{Time: l.Time, Left: l, Right: r, RightExists: true})
		}
	}
	return joined
}

// -----------------------------------------------------------------------------

// DeriveUsdVolume computes the secondary table for pair A/B (base) using
// B/USD (quote) as the conversion series.
func (a *AnalysisFacade) DeriveUsdVolume(base, quote models.MBarSeries) []models.MUsdVolume {
	joined := JoinLeft(base, quote)

	out := make([]models.MUsdVolume, len(joined))
	unmatched := 0
	for i, row := range joined {
		if !row.RightExists {
			unmatched++
		}
		out[i] = models.MUsdVolume{
			Time: row.Time,
			UsdVolume: models.MFloat(core.CrossPairUsdVolume(
				row.Left.High, row.Left.Low, row.Left.Volume,
				row.Right.High, row.Right.Low, row.Right.Close,
			)),
		}
	}

	if unmatched > 0 {
		a.Logger.Debug("USD volume %s via %s: %d/%d rows without a %s bar",
			base.Symbol, quote.Symbol, unmatched, len(out), quote.Symbol)
	}
	return out
}
