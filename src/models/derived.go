package models

import "time"

// MDerivedBar is one row of the primary table:
// time, open, high, low, close, volume, vwap, change.
type MDerivedBar struct {
	Time   time.Time `json:"time"`
	Open   MFloat    `json:"open"`
	High   MFloat    `json:"high"`
	Low    MFloat    `json:"low"`
	Close  MFloat    `json:"close"`
	Volume MFloat    `json:"volume"`
	VWAP   MFloat    `json:"vwap"`
	Change MFloat    `json:"change"`
}

// -----------------------------------------------------------------------------

// MJoinedBar is one row of a left join of two series on time.
// Right-side fields are NaN when the right series has no bar at Time.
type MJoinedBar struct {
	Time        time.Time
	Left        MBar
	Right       MBar
	RightExists bool
}

// -----------------------------------------------------------------------------

// MUsdVolume is one row of the secondary table: time, usd_volume.
type MUsdVolume struct {
	Time      time.Time `json:"time"`
	UsdVolume MFloat    `json:"usd_volume"`
}
