package models

// MConfig Structure
type MConfig struct {
	Name      string           `yaml:"name"`
	Host      string           `yaml:"host"`
	Port      int              `yaml:"port"`
	LogLevel  string           `yaml:"log_level"`
	Network   MNetworkConfig   `yaml:"network"`
	Dashboard MDashboardConfig `yaml:"dashboard"`
	Storage   MStorageConfig   `yaml:"storage"`
	Archive   MArchiveConfig   `yaml:"archive"`
}

type MNetworkConfig struct {
	BaseURL        string   `yaml:"base_url"`
	RequestTimeout int      `yaml:"timeout"` // seconds
	UserAgent      string   `yaml:"user_agent"`
	Proxies        []string `yaml:"proxies,omitempty"` // rotated after a transport failure
}

type MDashboardConfig struct {
	Title   string              `yaml:"title"`
	Primary MPrimaryPanelConfig `yaml:"primary"`
	Cross   MCrossPanelConfig   `yaml:"cross"`
}

type MPrimaryPanelConfig struct {
	Symbol      string `yaml:"symbol"`
	Granularity int    `yaml:"granularity"`
}

type MCrossPanelConfig struct {
	Base        string `yaml:"base"`  // e.g. ETH-BTC
	Quote       string `yaml:"quote"` // e.g. BTC-USD
	Granularity int    `yaml:"granularity"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"` // none, sqlite, postgres
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

type MArchiveConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"` // cron spec with seconds
}
