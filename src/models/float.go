package models

import (
	"bytes"
	"math"
	"strconv"
)

// MFloat is a float64 that encodes NaN and ±Inf as JSON null.
// Plotly draws null as a gap in the trace.
type MFloat float64

// -----------------------------------------------------------------------------

func (f MFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// -----------------------------------------------------------------------------

func (f *MFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = MFloat(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(string(bytes.TrimSpace(data)), 64)
	if err != nil {
		return err
	}
	*f = MFloat(v)
	return nil
}

// -----------------------------------------------------------------------------

// IsNaN reports whether the value is not-a-number
func (f MFloat) IsNaN() bool {
	return math.IsNaN(float64(f))
}
