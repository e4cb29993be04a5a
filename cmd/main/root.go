package main

import (
	"fmt"

	"cryptoboard/src/analysis"
	"cryptoboard/src/config"
	"cryptoboard/src/dashboard"
	"cryptoboard/src/data_source/coinbase"
	"cryptoboard/src/logger"
	"cryptoboard/src/network"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cryptoboard",
	Short: "Coinbase OHLCV dashboard with VWAP and cross-pair USD volume",
	Long: `Cryptoboard fetches candles from the Coinbase Exchange public API and
derives a cumulative VWAP, per-bar dollar change and the USD volume of a
cross pair.

Every render fetches fresh data; nothing is cached between requests.`,
	SilenceUsage: true,
}

var (
	configPath string
	logLevel   string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file (defaults are used when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log_level from the config")
}

// -----------------------------------------------------------------------------

type app struct {
	cfg  *config.Config
	log  *logger.Logger
	dash *dashboard.Dashboard
}

// bootstrap loads the configuration and wires the render pipeline.
func bootstrap() (*app, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.NewConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)

	netMgr := network.NewNetworkManager(cfg.MConfig, appLogger.Named("network"))
	source := coinbase.NewCoinbaseSource(cfg.Network.BaseURL, netMgr, appLogger.Named("coinbase"))
	analyzer := analysis.NewAnalysisFacade(appLogger.Named("analysis"))
	dash := dashboard.NewDashboard(cfg.MConfig, source, analyzer, appLogger.Named("dashboard"))

	return &app{cfg: cfg, log: appLogger, dash: dash}, nil
}
