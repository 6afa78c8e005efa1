package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Quote providers accepted in quotes.provider.
const (
	ProviderYahoo     = "yahoo"
	ProviderFinanceGo = "finance-go"
)

// DefaultSampleURL is the bundled sample dataset.
const DefaultSampleURL = "https://raw.githubusercontent.com/mwaskom/seaborn-data/master/tips.csv"

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
		Mode string `yaml:"mode"`
	} `yaml:"server"`
	Quotes struct {
		Symbol       string        `yaml:"symbol"`
		Provider     string        `yaml:"provider"`
		BaseURL      string        `yaml:"base_url"`
		DownloadName string        `yaml:"download_name"`
		Timeout      time.Duration `yaml:"timeout"`
	} `yaml:"quotes"`
	Dataset struct {
		SampleURL string `yaml:"sample_url"`
	} `yaml:"dataset"`
	Uploads struct {
		MaxBytes  int64         `yaml:"max_bytes"`
		TTL       time.Duration `yaml:"ttl"`
		PurgeCron string        `yaml:"purge_cron"`
	} `yaml:"uploads"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults cover every key.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.Server.Mode = v
	}
	if v := os.Getenv("QUOTES_SYMBOL"); v != "" {
		cfg.Quotes.Symbol = v
	}
	if v := os.Getenv("QUOTES_PROVIDER"); v != "" {
		cfg.Quotes.Provider = v
	}
	if v := os.Getenv("SAMPLE_URL"); v != "" {
		cfg.Dataset.SampleURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("UPLOAD_MAX_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Uploads.MaxBytes = n
		}
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Quotes.Symbol == "" {
		cfg.Quotes.Symbol = "AAPL"
	}
	if cfg.Quotes.Provider == "" {
		cfg.Quotes.Provider = ProviderYahoo
	}
	if cfg.Quotes.BaseURL == "" {
		cfg.Quotes.BaseURL = "https://query1.finance.yahoo.com"
	}
	if cfg.Quotes.DownloadName == "" {
		cfg.Quotes.DownloadName = downloadName(cfg.Quotes.Symbol)
	}
	if cfg.Quotes.Timeout == 0 {
		cfg.Quotes.Timeout = 30 * time.Second
	}
	if cfg.Dataset.SampleURL == "" {
		cfg.Dataset.SampleURL = DefaultSampleURL
	}
	if cfg.Uploads.MaxBytes == 0 {
		cfg.Uploads.MaxBytes = 10 << 20
	}
	if cfg.Uploads.TTL == 0 {
		cfg.Uploads.TTL = 24 * time.Hour
	}
	if cfg.Uploads.PurgeCron == "" {
		cfg.Uploads.PurgeCron = "0 */10 * * * *"
	}

	return cfg, nil
}

// downloadName is the quote chart file name for symbol.
func downloadName(symbol string) string {
	if strings.EqualFold(symbol, "AAPL") {
		return "apple.png"
	}
	return strings.ToLower(symbol) + ".png"
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Quotes.Symbol == "" {
		return fmt.Errorf("quotes.symbol is required")
	}
	switch c.Quotes.Provider {
	case ProviderYahoo, ProviderFinanceGo:
	default:
		return fmt.Errorf("quotes.provider %q is not supported", c.Quotes.Provider)
	}
	if c.Quotes.Timeout <= 0 {
		return fmt.Errorf("quotes.timeout must be positive")
	}
	if c.Dataset.SampleURL == "" {
		return fmt.Errorf("dataset.sample_url is required")
	}
	if c.Uploads.MaxBytes <= 0 {
		return fmt.Errorf("uploads.max_bytes must be positive")
	}
	if c.Uploads.TTL <= 0 {
		return fmt.Errorf("uploads.ttl must be positive")
	}
	return nil
}
