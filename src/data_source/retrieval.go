package datasource

import (
	"context"
	"fmt"
	"math"
	"time"

	"cryptoboard/src/interfaces"
	"cryptoboard/src/models"
)

// -----------------------------------------------------------------------------

// FetchBarSeries retrieves one symbol+granularity from source and remaps
// the raw rows into bars. Provider ordering is preserved. Errors from the
// source are returned unchanged.
func FetchBarSeries(ctx context.Context, source interfaces.IMarketDataSource, symbol string, granularity int) (models.MBarSeries, error) {
	rows, err := source.GetHistoricRates(ctx, symbol, granularity)
	if err != nil {
		return models.MBarSeries{}, err
	}

	series := models.MBarSeries{
		Symbol:      symbol,
		Granularity: granularity,
		Bars:        make([]models.MBar, 0, len(rows)),
	}
	for _, row := range rows {
		series.Bars = append(series.Bars, BarFromRaw(row))
	}
	return series, nil
}

// -----------------------------------------------------------------------------

// BarFromRaw maps [time, low, high, open, close, volume] onto a Bar.
func BarFromRaw(row models.MRawRate) models.MBar {
	return models.MBar{
		Time:   epochSeconds(row[models.RAW_IDX_TIME]),
		Open:   row[models.RAW_IDX_OPEN],
		High:   row[models.RAW_IDX_HIGH],
		Low:    row[models.RAW_IDX_LOW],
		Close:  row[models.RAW_IDX_CLOSE],
		Volume: row[models.RAW_IDX_VOLUME],
	}
}

// RawFromBar is the inverse of BarFromRaw.
func RawFromBar(bar models.MBar) models.MRawRate {
	var row models.MRawRate
	row[models.RAW_IDX_TIME] = float64(bar.Time.Unix())
	row[models.RAW_IDX_LOW] = bar.Low
	row[models.RAW_IDX_HIGH] = bar.High
	row[models.RAW_IDX_OPEN] = bar.Open
	row[models.RAW_IDX_CLOSE] = bar.Close
	row[models.RAW_IDX_VOLUME] = bar.Volume
	return row
}

// -----------------------------------------------------------------------------

func epochSeconds(v float64) time.Time {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return time.Time{}
	}
	return time.Unix(int64(v), 0).UTC()
}

// Describe is used in log lines and errors.
func Describe(symbol string, granularity int) string {
	return fmt.Sprintf("%s@%ds", symbol, granularity)
}
