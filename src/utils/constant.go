package utils

// -----------------------------------------------------------------------------

// Coinbase Exchange public market data.
// The candles endpoint returns at most MaxCandlesPerRequest rows; longer
// histories would need paging, which the dashboard does not do.
const (
	CoinbaseExchangeURL  = "https://api.exchange.coinbase.com"
	MaxCandlesPerRequest = 300
)

// Bucket widths (seconds) accepted by the candles endpoint.
const (
	GranularityOneMinute      = 60
	GranularityFiveMinutes    = 300
	GranularityFifteenMinutes = 900
	GranularityOneHour        = 3600
	GranularitySixHours       = 21600
	GranularityOneDay         = 86400
)

// -----------------------------------------------------------------------------

// GranularityLabel returns a short label ("1m", "1h", "1d") for captions.
func GranularityLabel(seconds int) string {
	switch {
	case seconds <= 0:
		return "?"
	case seconds%86400 == 0:
		return itoa(seconds/86400) + "d"
	case seconds%3600 == 0:
		return itoa(seconds/3600) + "h"
	case seconds%60 == 0:
		return itoa(seconds/60) + "m"
	default:
		return itoa(seconds) + "s"
	}
}
