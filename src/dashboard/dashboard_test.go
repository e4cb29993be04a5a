package dashboard

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"cryptoboard/src/analysis"
	"cryptoboard/src/config"
	"cryptoboard/src/helpers"
	"cryptoboard/src/logger"
	"cryptoboard/src/models"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	symbol      string
	granularity int
}

type fakeSource struct {
	rows  map[string][]models.MRawRate
	errs  map[string]error
	calls []call
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) GetHistoricRates(ctx context.Context, symbol string, granularity int) ([]models.MRawRate, error) {
	f.calls = append(f.calls, call{symbol, granularity})
	if err := f.errs[symbol]; err != nil {
		return nil, err
	}
	return f.rows[symbol], nil
}

func newTestDashboard(src *fakeSource) *Dashboard {
	log := logger.NewLoggerTo(io.Discard, "ERROR", "test")
	d := NewDashboard(config.Default().MConfig, src, analysis.NewAnalysisFacade(log), log)
	d.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return d
}

func defaultRows() map[string][]models.MRawRate {
	return map[string][]models.MRawRate{
		// most recent first, like Coinbase
		"BTC-USD": {{60, 9, 11, 9, 10, 4}, {0, 8, 10, 9, 9, 2}},
		"ETH-BTC": {{60, 0.05, 0.06, 0.05, 0.055, 10}, {0, 0.04, 0.05, 0.045, 0.05, 20}},
	}
}

func TestRenderSequence(t *testing.T) {
	src := &fakeSource{rows: defaultRows()}
	page, err := newTestDashboard(src).Render(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []call{{"BTC-USD", 86400}, {"ETH-BTC", 60}, {"BTC-USD", 60}}, src.calls)

	assert.Equal(t, "SKM's Cryptoboard", page.Title)
	assert.NotEmpty(t, page.Attribution)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), page.RenderedAt)

	require.Len(t, page.Primary.Table, 2)
	assert.Equal(t, int64(0), page.Primary.Table[0].Time.Unix())
	assert.Equal(t, models.MFloat(9), page.Primary.Table[0].VWAP)
	assert.InDelta(t, 58.0/6, float64(page.Primary.Table[1].VWAP), 1e-12)
	assert.Equal(t, "BTC-USD", page.Primary.Figure.Layout.Title.Text)
	assert.Contains(t, page.Primary.Caption, "1d")

	require.Len(t, page.Cross.Table, 2)
	assert.False(t, page.Cross.Table[0].UsdVolume.IsNaN())
	assert.Equal(t, "ETH-BTC Volume", page.Cross.Figure.Layout.Title.Text)
	assert.Contains(t, page.Cross.Caption, "1m")
}

func TestRenderAbortsOnPrimaryFailure(t *testing.T) {
	rejected := helpers.NewProviderRejectedParametersError("Unsupported granularity", 400)
	src := &fakeSource{rows: defaultRows(), errs: map[string]error{"BTC-USD": rejected}}

	_, err := newTestDashboard(src).Render(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, rejected))
	assert.Contains(t, err.Error(), "fetch BTC-USD@86400s")
	assert.Len(t, src.calls, 1)
}

func TestCrossPairAbortsWhenQuoteFails(t *testing.T) {
	reqErr := helpers.NewProviderRequestError("coinbase candles request for BTC-USD", 503, nil)
	src := &fakeSource{rows: defaultRows(), errs: map[string]error{"BTC-USD": reqErr}}

	_, err := newTestDashboard(src).CrossPair(context.Background(), "ETH-BTC", "BTC-USD", 60)
	require.Error(t, err)

	var target *helpers.ProviderRequestError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, []call{{"ETH-BTC", 60}, {"BTC-USD", 60}}, src.calls)
}

func TestPrimaryEmptyProviderAnswer(t *testing.T) {
	src := &fakeSource{}
	panel, err := newTestDashboard(src).Primary(context.Background(), "BTC-USD", 60)
	require.NoError(t, err)
	assert.Empty(t, panel.Table)
	require.Len(t, panel.Figure.Data, 4)
	assert.Empty(t, panel.Figure.Data[0].X)
}

func TestSnapshot(t *testing.T) {
	src := &fakeSource{rows: defaultRows()}
	snap, err := newTestDashboard(src).Snapshot(context.Background())
	require.NoError(t, err)

	_, err = ulid.Parse(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "BTC-USD", snap.Symbol)
	assert.Equal(t, 86400, snap.PrimaryGranularity)
	assert.Equal(t, "ETH-BTC", snap.Base)
	assert.Equal(t, "BTC-USD", snap.Quote)
	assert.Equal(t, 60, snap.CrossGranularity)
	assert.Len(t, snap.Primary, 2)
	assert.Len(t, snap.Cross, 2)
}
