package config

import (
	"fmt"
	"os"

	"cryptoboard/src/helpers"
	"cryptoboard/src/models"
	"cryptoboard/src/utils"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// Default returns the built-in dashboard: daily BTC-USD bars
// and minute ETH-BTC volume converted through BTC-USD.
func Default() *Config {
	return &Config{MConfig: &models.MConfig{
		Name:     "cryptoboard",
		Host:     "127.0.0.1",
		Port:     8050,
		LogLevel: "INFO",
		Network: models.MNetworkConfig{
			BaseURL:        utils.CoinbaseExchangeURL,
			RequestTimeout: 15,
			UserAgent:      "cryptoboard/1.0",
		},
		Dashboard: models.MDashboardConfig{
			Title: "SKM's Cryptoboard",
			Primary: models.MPrimaryPanelConfig{
				Symbol:      "BTC-USD",
				Granularity: utils.GranularityOneDay,
			},
			Cross: models.MCrossPanelConfig{
				Base:        "ETH-BTC",
				Quote:       "BTC-USD",
				Granularity: utils.GranularityOneMinute,
			},
		},
		Storage: models.MStorageConfig{
			DBType: "none",
		},
		Archive: models.MArchiveConfig{
			Enabled:  false,
			Schedule: "0 */15 * * * *",
		},
	}}
}

// -----------------------------------------------------------------------------

// NewConfig loads a YAML file on top of Default and validates the result
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal over the defaults so omitted keys keep their values
	config := Default()
	if err := yaml.Unmarshal(data, config.MConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, helpers.NewConfigurationError("config validation failed", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation. Granularities are only
// checked for sign: the provider decides which bucket widths it accepts.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	// Network
	if c.Network.BaseURL == "" {
		return fmt.Errorf("network base_url cannot be empty")
	}
	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}
	if err := helpers.ValidateProxies(c.Network.Proxies); err != nil {
		return fmt.Errorf("network.proxies: %w", err)
	}

	// Dashboard panels
	if c.Dashboard.Primary.Symbol == "" {
		return fmt.Errorf("dashboard.primary.symbol cannot be empty")
	}
	if c.Dashboard.Primary.Granularity <= 0 {
		return fmt.Errorf("dashboard.primary.granularity must be greater than 0")
	}
	if c.Dashboard.Cross.Base == "" || c.Dashboard.Cross.Quote == "" {
		return fmt.Errorf("dashboard.cross needs both base and quote symbols")
	}
	if c.Dashboard.Cross.Granularity <= 0 {
		return fmt.Errorf("dashboard.cross.granularity must be greater than 0")
	}

	// Storage
	switch c.Storage.DBType {
	case "", "none":
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("database connection string cannot be empty for postgres")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Storage.DBType)
	}

	// Archive
	if c.Archive.Enabled {
		if c.Archive.Schedule == "" {
			return fmt.Errorf("archive schedule cannot be empty when archive is enabled")
		}
		if !c.HasStorage() {
			return fmt.Errorf("archive requires storage.db_type sqlite or postgres")
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// HasStorage reports whether a snapshot database is configured
func (c *Config) HasStorage() bool {
	return c.Storage.DBType == "sqlite" || c.Storage.DBType == "postgres"
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
