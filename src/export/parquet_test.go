package export

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cryptoboard/src/models"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func primaryTable() []models.MDerivedBar {
	return []models.MDerivedBar{
		{Time: time.Unix(0, 0).UTC(), Open: 9, High: 10, Low: 8, Close: 9, Volume: 0, VWAP: models.MFloat(math.NaN()), Change: 0},
		{Time: time.Unix(60, 0).UTC(), Open: 9, High: 11, Low: 9, Close: 10, Volume: 4, VWAP: 10, Change: 1},
	}
}

func TestWritePrimary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePrimary(&buf, primaryTable()))

	rows, err := parquet.Read[PrimaryRow](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(60_000), rows[1].Time)
	assert.Nil(t, rows[0].VWAP, "NaN vwap is written as null")
	require.NotNil(t, rows[1].VWAP)
	assert.Equal(t, 10.0, *rows[1].VWAP)
	assert.Equal(t, 1.0, rows[1].Change)
}

func TestWriteCross(t *testing.T) {
	table := []models.MUsdVolume{
		{Time: time.Unix(0, 0).UTC(), UsdVolume: 1500},
		{Time: time.Unix(60, 0).UTC(), UsdVolume: models.MFloat(math.NaN())},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCross(&buf, table))

	rows, err := parquet.Read[CrossRow](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].UsdVolume)
	assert.Equal(t, 1500.0, *rows[0].UsdVolume)
	assert.Nil(t, rows[1].UsdVolume)
}

func TestWriteDashboard(t *testing.T) {
	dir := t.TempDir()
	page := models.MDashboard{
		Primary: models.MPrimaryPanel{Symbol: "BTC-USD", Granularity: 86400, Table: primaryTable()},
		Cross:   models.MCrossPanel{Base: "ETH-BTC", Quote: "BTC-USD", Granularity: 60},
	}

	p, c, err := WriteDashboard(dir, page)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "BTC-USD_86400.parquet"), p)
	assert.Equal(t, filepath.Join(dir, "ETH-BTC_usd_volume_60.parquet"), c)

	rows, err := parquet.ReadFile[PrimaryRow](p)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = os.Stat(c)
	assert.NoError(t, err)
}
