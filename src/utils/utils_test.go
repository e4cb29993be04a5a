package utils

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGranularityLabel(t *testing.T) {
	tests := map[int]string{
		GranularityOneMinute:      "1m",
		GranularityFifteenMinutes: "15m",
		GranularitySixHours:       "6h",
		GranularityOneDay:         "1d",
		45:                        "45s",
		0:                         "?",
	}
	for in, want := range tests {
		assert.Equal(t, want, GranularityLabel(in))
	}
}

func TestNewSnapshotIDIsSortable(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	a := NewSnapshotID(at)
	b := NewSnapshotID(at)

	assert.Less(t, a, b, "ids within the same millisecond stay increasing")

	parsed, err := ulid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, at, ulid.Time(parsed.Time()).UTC())
}
