package models

import "time"

// MBar is one OHLCV trading interval after ingestion.
type MBar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// -----------------------------------------------------------------------------

// MBarSeries holds the bars returned for one symbol+granularity query.
// Bars keep the provider's ordering.
type MBarSeries struct {
	Symbol      string `json:"symbol"`
	Granularity int    `json:"granularity"`
	Bars        []MBar `json:"bars"`
}

// Len returns the number of bars in the series
func (s MBarSeries) Len() int {
	return len(s.Bars)
}
