package models

import "time"

// -----------------------------------------------------------------------------
// Render payloads
// -----------------------------------------------------------------------------

// MPrimaryPanel is the OHLC + volume + VWAP + change chart for one pair.
type MPrimaryPanel struct {
	Symbol      string        `json:"symbol"`
	Granularity int           `json:"granularity"`
	Caption     string        `json:"caption"`
	Table       []MDerivedBar `json:"table"`
	Figure      MFigure       `json:"figure"`
}

// MCrossPanel is the USD-normalised volume chart for a base/quote pair.
type MCrossPanel struct {
	Base        string       `json:"base"`
	Quote       string       `json:"quote"`
	Granularity int          `json:"granularity"`
	Caption     string       `json:"caption"`
	Table       []MUsdVolume `json:"table"`
	Figure      MFigure      `json:"figure"`
}

// MDashboard is one full page render.
type MDashboard struct {
	Title       string        `json:"title"`
	Attribution string        `json:"attribution"`
	Primary     MPrimaryPanel `json:"primary"`
	Cross       MCrossPanel   `json:"cross"`
	RenderedAt  time.Time     `json:"rendered_at"`
}

// -----------------------------------------------------------------------------

// MRenderCommand is a websocket client request.
type MRenderCommand struct {
	Command     string `json:"command"` // "render"
	Panel       string `json:"panel"`   // "", "primary" or "cross"
	Symbol      string `json:"symbol"`
	Base        string `json:"base"`
	Quote       string `json:"quote"`
	Granularity int    `json:"granularity"`
}

// MErrorMessage is sent back on the websocket when a render fails.
type MErrorMessage struct {
	Type    string `json:"type"` // "ERROR"
	Message string `json:"message"`
}

// MRenderResponse wraps a websocket render answer. Type is "DASHBOARD",
// "PRIMARY" or "CROSS"; Data holds the matching payload.
type MRenderResponse struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}
