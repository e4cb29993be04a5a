package models

// Column positions of a provider historic-rates row.
const (
	RAW_IDX_TIME   = 0
	RAW_IDX_LOW    = 1
	RAW_IDX_HIGH   = 2
	RAW_IDX_OPEN   = 3
	RAW_IDX_CLOSE  = 4
	RAW_IDX_VOLUME = 5
	RAW_NUM_FIELDS = 6
)

// MRawRate is one unlabeled provider row: [time, low, high, open, close, volume]
// with time in epoch seconds.
type MRawRate [RAW_NUM_FIELDS]float64
