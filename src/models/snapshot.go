package models

import "time"

// MSnapshot is an archived render, written by the scheduled archiver.
type MSnapshot struct {
	ID                 string
	CreatedAt          time.Time
	Symbol             string
	PrimaryGranularity int
	Base               string
	Quote              string
	CrossGranularity   int
	Primary            []MDerivedBar
	Cross              []MUsdVolume
}
