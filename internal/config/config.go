package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultSymbols is the symbol universe scanned when the config does
// not override it.
var DefaultSymbols = []string{"AAPL", "AMD", "CRM", "MSFT", "NIO", "NVDA", "TSLA", "XPEV"}

// Config holds all application configuration.
type Config struct {
	Auth struct {
		CronToken string `yaml:"cron_token"`
	} `yaml:"auth"`
	Finnhub struct {
		Token   string `yaml:"token"`
		BaseURL string `yaml:"base_url"`
		WSURL   string `yaml:"ws_url"`
	} `yaml:"finnhub"`
	Scan struct {
		Symbols    []string `yaml:"symbols"`
		Resolution string   `yaml:"resolution"`
	} `yaml:"scan"`
	Stream struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"stream"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Logging struct {
		Level    string `yaml:"level"`
		Encoding string `yaml:"encoding"`
	} `yaml:"logging"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
}

// Load reads config from a YAML file, then applies environment
// variable overrides and defaults. A missing file is not an error;
// the env vars alone can carry a full configuration.
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
	if v := os.Getenv("CRON_TOKEN"); v != "" {
		cfg.Auth.CronToken = v
	}
	if v := os.Getenv("FINNHUB_AUTH_TOKEN"); v != "" {
		cfg.Finnhub.Token = v
	}
	if v := os.Getenv("FINNHUB_BASE_URL"); v != "" {
		cfg.Finnhub.BaseURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	// Defaults
	if len(cfg.Scan.Symbols) == 0 {
		cfg.Scan.Symbols = DefaultSymbols
	}
	if cfg.Scan.Resolution == "" {
		cfg.Scan.Resolution = "D"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "scanner.db"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	return cfg, nil
}

// Validate checks the fields the process cannot run without. The cron
// token is intentionally not required here: its absence is reported
// per-request as 500 "config not setup".
func (c *Config) Validate() error {
	if c.Finnhub.Token == "" {
		return fmt.Errorf("finnhub.token (FINNHUB_AUTH_TOKEN) is required")
	}
	return nil
}
