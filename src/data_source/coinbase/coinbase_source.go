package coinbase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"cryptoboard/src/helpers"
	"cryptoboard/src/interfaces"
	"cryptoboard/src/logger"
	"cryptoboard/src/models"
	"cryptoboard/src/network"
)

// CoinbaseSource queries the Coinbase Exchange public candles endpoint.
type CoinbaseSource struct {
	BaseURL string
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewCoinbaseSource(baseURL string, netMgr interfaces.INetworkManager, log *logger.Logger) *CoinbaseSource {
	return &CoinbaseSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Network: netMgr,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

func (s *CoinbaseSource) Name() string {
	return "coinbase"
}

// -----------------------------------------------------------------------------

// coinbaseMessage is the body Coinbase sends with 4xx answers.
type coinbaseMessage struct {
	Message string `json:"message"`
}

// -----------------------------------------------------------------------------

// GetHistoricRates issues one candles request. Rows come back in provider
// order (most recent first for Coinbase).
func (s *CoinbaseSource) GetHistoricRates(ctx context.Context, symbol string, granularity int) ([]models.MRawRate, error) {
	endpoint := fmt.Sprintf("%s/products/%s/candles", s.BaseURL, url.PathEscape(symbol))
	params := map[string]string{
		"granularity": strconv.Itoa(granularity),
	}

	body, err := s.Network.Get(ctx, endpoint, params)
	if err != nil {
		return nil, s.translateError(symbol, err)
	}

	rows, err := ParseCandles(body)
	if err != nil {
		return nil, helpers.NewProviderRequestError(fmt.Sprintf("coinbase candles for %s", symbol), 0, err)
	}

	s.Logger.Info("Fetched %s @%ds: %d rows", symbol, granularity, len(rows))
	return rows, nil
}

// -----------------------------------------------------------------------------

// translateError classifies a failed request. 400/404 carrying a provider
// message are parameter rejections; the message is kept verbatim.
func (s *CoinbaseSource) translateError(symbol string, err error) error {
	var statusErr *network.HTTPStatusError
	if !errors.As(err, &statusErr) {
		return helpers.NewProviderRequestError(fmt.Sprintf("coinbase candles request for %s", symbol), 0, err)
	}

	var msg coinbaseMessage
	_ = json.Unmarshal(statusErr.Body, &msg)

	switch statusErr.StatusCode {
	case http.StatusBadRequest, http.StatusNotFound:
		if msg.Message != "" {
			return helpers.NewProviderRejectedParametersError(msg.Message, statusErr.StatusCode)
		}
	}

	return helpers.NewProviderRequestError(
		fmt.Sprintf("coinbase candles request for %s", symbol), statusErr.StatusCode, err)
}

// -----------------------------------------------------------------------------

// ParseCandles decodes a candles body. Short rows are padded with NaN.
func ParseCandles(data []byte) ([]models.MRawRate, error) {
	var raw [][]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	rows := make([]models.MRawRate, 0, len(raw))
	for _, r := range raw {
		var row models.MRawRate
		for i := range row {
			if i < len(r) {
				row[i] = r[i]
			} else {
				row[i] = math.NaN()
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
