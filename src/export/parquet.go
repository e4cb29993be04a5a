package export

import (
	"io"
	"math"
	"path/filepath"
	"strconv"

	"cryptoboard/src/models"

	"github.com/parquet-go/parquet-go"
)

// PrimaryRow is one row of the primary table on disk. Time is Unix
// milliseconds; missing VWAP is stored as null.
type PrimaryRow struct {
	Time   int64    `parquet:"t"`
	Open   float64  `parquet:"o"`
	High   float64  `parquet:"h"`
	Low    float64  `parquet:"l"`
	Close  float64  `parquet:"c"`
	Volume float64  `parquet:"v"`
	VWAP   *float64 `parquet:"vw,optional"`
	Change float64  `parquet:"change"`
}

// CrossRow is one row of the USD volume table on disk.
type CrossRow struct {
	Time      int64    `parquet:"t"`
	UsdVolume *float64 `parquet:"usd_volume,optional"`
}

// -----------------------------------------------------------------------------

func PrimaryRows(table []models.MDerivedBar) []PrimaryRow {
	rows := make([]PrimaryRow, len(table))
	for i, r := range table {
		rows[i] = PrimaryRow{
			Time:   r.Time.UnixMilli(),
			Open:   float64(r.Open),
			High:   float64(r.High),
			Low:    float64(r.Low),
			Close:  float64(r.Close),
			Volume: float64(r.Volume),
			VWAP:   optional(r.VWAP),
			Change: float64(r.Change),
		}
	}
	return rows
}

func CrossRows(table []models.MUsdVolume) []CrossRow {
	rows := make([]CrossRow, len(table))
	for i, r := range table {
		rows[i] = CrossRow{Time: r.Time.UnixMilli(), UsdVolume: optional(r.UsdVolume)}
	}
	return rows
}

func optional(f models.MFloat) *float64 {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// -----------------------------------------------------------------------------

func WritePrimary(w io.Writer, table []models.MDerivedBar) error {
	return parquet.Write(w, PrimaryRows(table))
}

func WriteCross(w io.Writer, table []models.MUsdVolume) error {
	return parquet.Write(w, CrossRows(table))
}

// -----------------------------------------------------------------------------

// WriteDashboard saves both tables of a rendered page under dir and returns
// the file paths.
func WriteDashboard(dir string, page models.MDashboard) (string, string, error) {
	primaryPath := filepath.Join(dir, FileName(page.Primary.Symbol, page.Primary.Granularity))
	if err := parquet.WriteFile(primaryPath, PrimaryRows(page.Primary.Table)); err != nil {
		return "", "", err
	}

	crossPath := filepath.Join(dir, FileName(page.Cross.Base+"_usd_volume", page.Cross.Granularity))
	if err := parquet.WriteFile(crossPath, CrossRows(page.Cross.Table)); err != nil {
		return "", "", err
	}
	return primaryPath, crossPath, nil
}

// FileName is e.g. "BTC-USD_86400.parquet".
func FileName(name string, granularity int) string {
	return name + "_" + strconv.Itoa(granularity) + ".parquet"
}
