package chart

import (
	"time"

	"cryptoboard/src/models"
)

// Trace names shown in the legend.
const (
	TraceBars   = "Bar"
	TraceVolume = "Volume"
	TraceVWAP   = "VWAP"
	TraceChange = "$ Change"
)

// -----------------------------------------------------------------------------

// PrimaryFigure composes the OHLC, volume, VWAP and change traces on one
// chart. Volume is drawn against a secondary value axis on the right.
func PrimaryFigure(title string, rows []models.MDerivedBar) models.MFigure {
	n := len(rows)
	x := make([]time.Time, n)
	open := make([]models.MFloat, n)
	high := make([]models.MFloat, n)
	low := make([]models.MFloat, n)
	closes := make([]models.MFloat, n)
	volume := make([]models.MFloat, n)
	vwap := make([]models.MFloat, n)
	change := make([]models.MFloat, n)

	for i, r := range rows {
		x[i] = r.Time
		open[i] = r.Open
		high[i] = r.High
		low[i] = r.Low
		closes[i] = r.Close
		volume[i] = r.Volume
		vwap[i] = r.VWAP
		change[i] = r.Change
	}

	noGrid := false
	return models.MFigure{
		Data: []models.MTrace{
			{Type: "ohlc", Name: TraceBars, X: x, Open: open, High: high, Low: low, Close: closes},
			{Type: "bar", Name: TraceVolume, X: x, Y: volume, YAxis: "y2"},
			{Type: "scatter", Name: TraceVWAP, Mode: "lines", X: x, Y: vwap},
			{Type: "bar", Name: TraceChange, X: x, Y: change},
		},
		Layout: models.MLayout{
			Title: models.MTitle{Text: title},
			XAxis: models.MAxis{Type: "date"},
			YAxis: models.MAxis{Title: &models.MTitle{Text: "Price"}},
			YAxis2: &models.MAxis{
				Title:      &models.MTitle{Text: "Volume"},
				Overlaying: "y",
				Side:       "right",
				ShowGrid:   &noGrid,
			},
		},
	}
}

// -----------------------------------------------------------------------------

// CrossFigure draws USD volume as bars with a range slider on the time axis.
func CrossFigure(title string, rows []models.MUsdVolume) models.MFigure {
	x := make([]time.Time, len(rows))
	y := make([]models.MFloat, len(rows))
	for i, r := range rows {
		x[i] = r.Time
		y[i] = r.UsdVolume
	}

	return models.MFigure{
		Data: []models.MTrace{
			{Type: "bar", X: x, Y: y},
		},
		Layout: models.MLayout{
			Title: models.MTitle{Text: title},
			XAxis: models.MAxis{
				Type:        "date",
				RangeSlider: &models.MRangeSlider{Visible: true},
			},
			YAxis: models.MAxis{Title: &models.MTitle{Text: "USD"}},
		},
	}
}
