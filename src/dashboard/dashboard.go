package dashboard

import (
	"context"
	"fmt"
	"time"

	"cryptoboard/src/analysis"
	"cryptoboard/src/chart"
	datasource "cryptoboard/src/data_source"
	"cryptoboard/src/interfaces"
	"cryptoboard/src/logger"
	"cryptoboard/src/models"
	"cryptoboard/src/utils"
)

const attribution = "Market data provided by the Coinbase Exchange public API."

// Dashboard renders the page data. Nothing happens at construction; every
// call re-fetches from the provider.
type Dashboard struct {
	Config   *models.MConfig
	Source   interfaces.IMarketDataSource
	Analyzer *analysis.AnalysisFacade
	Logger   *logger.Logger
	now      func() time.Time
}

// -----------------------------------------------------------------------------

func NewDashboard(cfg *models.MConfig, source interfaces.IMarketDataSource, analyzer *analysis.AnalysisFacade, log *logger.Logger) *Dashboard {
	return &Dashboard{
		Config:   cfg,
		Source:   source,
		Analyzer: analyzer,
		Logger:   log,
		now:      time.Now,
	}
}

// -----------------------------------------------------------------------------

// Render builds both panels with the configured pairs. Either panel failing
// aborts the whole render.
func (d *Dashboard) Render(ctx context.Context) (models.MDashboard, error) {
	p := d.Config.Dashboard.Primary
	primary, err := d.Primary(ctx, p.Symbol, p.Granularity)
	if err != nil {
		return models.MDashboard{}, err
	}

	c := d.Config.Dashboard.Cross
	cross, err := d.CrossPair(ctx, c.Base, c.Quote, c.Granularity)
	if err != nil {
		return models.MDashboard{}, err
	}

	return models.MDashboard{
		Title:       d.Config.Dashboard.Title,
		Attribution: attribution,
		Primary:     primary,
		Cross:       cross,
		RenderedAt:  d.now().UTC(),
	}, nil
}

// -----------------------------------------------------------------------------

// Primary fetches one pair and derives OHLC, volume, VWAP and change.
func (d *Dashboard) Primary(ctx context.Context, symbol string, granularity int) (models.MPrimaryPanel, error) {
	series, err := datasource.FetchBarSeries(ctx, d.Source, symbol, granularity)
	if err != nil {
		return models.MPrimaryPanel{}, fmt.Errorf("fetch %s: %w", datasource.Describe(symbol, granularity), err)
	}

	table := d.Analyzer.DeriveSeries(series)
	d.Logger.Info("Rendered primary panel %s (%d rows)", datasource.Describe(symbol, granularity), len(table))

	return models.MPrimaryPanel{
		Symbol:      symbol,
		Granularity: granularity,
		Caption: fmt.Sprintf("OHLC bars for each %s interval, with volume, change (in USD) and VWAP.",
			utils.GranularityLabel(granularity)),
		Table:  table,
		Figure: chart.PrimaryFigure(symbol, table),
	}, nil
}

// -----------------------------------------------------------------------------

// CrossPair fetches base (A/B) and then quote (B/USD) and derives the USD
// volume of the base pair. The fetches are sequential.
func (d *Dashboard) CrossPair(ctx context.Context, base, quote string, granularity int) (models.MCrossPanel, error) {
	baseSeries, err := datasource.FetchBarSeries(ctx, d.Source, base, granularity)
	if err != nil {
		return models.MCrossPanel{}, fmt.Errorf("fetch %s: %w", datasource.Describe(base, granularity), err)
	}

	quoteSeries, err := datasource.FetchBarSeries(ctx, d.Source, quote, granularity)
	if err != nil {
		return models.MCrossPanel{}, fmt.Errorf("fetch %s: %w", datasource.Describe(quote, granularity), err)
	}

	table := d.Analyzer.DeriveUsdVolume(baseSeries, quoteSeries)
	d.Logger.Info("Rendered cross panel %s via %s (%d rows)", base, quote, len(table))

	return models.MCrossPanel{
		Base:        base,
		Quote:       quote,
		Granularity: granularity,
		Caption: fmt.Sprintf("%s volume converted to USD through %s on a per %s basis.",
			base, quote, utils.GranularityLabel(granularity)),
		Table:  table,
		Figure: chart.CrossFigure(base+" Volume", table),
	}, nil
}

// -----------------------------------------------------------------------------

// Snapshot renders the configured dashboard into an archive record.
func (d *Dashboard) Snapshot(ctx context.Context) (models.MSnapshot, error) {
	page, err := d.Render(ctx)
	if err != nil {
		return models.MSnapshot{}, err
	}

	return models.MSnapshot{
		ID:                 utils.NewSnapshotID(page.RenderedAt),
		CreatedAt:          page.RenderedAt,
		Symbol:             page.Primary.Symbol,
		PrimaryGranularity: page.Primary.Granularity,
		Base:               page.Cross.Base,
		Quote:              page.Cross.Quote,
		CrossGranularity:   page.Cross.Granularity,
		Primary:            page.Primary.Table,
		Cross:              page.Cross.Table,
	}, nil
}
