package models

import "time"

// -----------------------------------------------------------------------------
// Plotly figure payload (consumed by plotly.js in the page)
// -----------------------------------------------------------------------------

type MFigure struct {
	Data   []MTrace `json:"data"`
	Layout MLayout  `json:"layout"`
}

// MTrace covers the trace kinds the dashboard draws: ohlc, bar and scatter.
type MTrace struct {
	Type  string      `json:"type"`
	Name  string      `json:"name,omitempty"`
	Mode  string      `json:"mode,omitempty"`
	X     []time.Time `json:"x"`
	Y     []MFloat    `json:"y,omitempty"`
	Open  []MFloat    `json:"open,omitempty"`
	High  []MFloat    `json:"high,omitempty"`
	Low   []MFloat    `json:"low,omitempty"`
	Close []MFloat    `json:"close,omitempty"`
	YAxis string      `json:"yaxis,omitempty"`
}

type MLayout struct {
	Title  MTitle `json:"title"`
	XAxis  MAxis  `json:"xaxis"`
	YAxis  MAxis  `json:"yaxis"`
	YAxis2 *MAxis `json:"yaxis2,omitempty"`
}

type MTitle struct {
	Text string `json:"text"`
}

type MAxis struct {
	Type        string        `json:"type,omitempty"`
	Title       *MTitle       `json:"title,omitempty"`
	Overlaying  string        `json:"overlaying,omitempty"`
	Side        string        `json:"side,omitempty"`
	ShowGrid    *bool         `json:"showgrid,omitempty"`
	RangeSlider *MRangeSlider `json:"rangeslider,omitempty"`
}

type MRangeSlider struct {
	Visible bool `json:"visible"`
}
