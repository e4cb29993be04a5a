package interfaces

import (
	"context"

	"cryptoboard/src/models"
)

// -----------------------------------------------------------------------------
// IMarketDataSource is the historic-rates query of a market-data provider.
// -----------------------------------------------------------------------------

type IMarketDataSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// GetHistoricRates returns raw rows [time, low, high, open, close, volume]
	// in provider order. Unsupported symbols or granularities come back as
	// *helpers.ProviderRejectedParametersError.
	GetHistoricRates(ctx context.Context, symbol string, granularity int) ([]models.MRawRate, error)
}
