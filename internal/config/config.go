package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"MarketLens/internal/common"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
		Title      string `yaml:"title"`
	} `yaml:"server"`
	DataSource struct {
		BaseURL        string        `yaml:"base_url"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
		// Mock serves generated data instead of calling BaseURL.
		Mock bool `yaml:"mock"`
	} `yaml:"data_source"`
	Refresh struct {
		Spec string `yaml:"spec"`
	} `yaml:"refresh"`
	Dashboard struct {
		OpenBestItems *bool `yaml:"open_best_items"`
	} `yaml:"dashboard"`
	Notify struct {
		WebhookURL string `yaml:"webhook_url"`
		MaxRetries int    `yaml:"max_retries"`
	} `yaml:"notify"`
	LogLevel string `yaml:"log_level"`
	Proxy    string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Variables from a .env file in the working directory are loaded
// first and never replace ones already set.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

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
	if v := os.Getenv("MARKETLENS_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("REFRESH_SPEC"); v != "" {
		cfg.Refresh.Spec = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("REQUEST_TIMEOUT: %w", err)
		}
		cfg.DataSource.RequestTimeout = d
	}
	if v := os.Getenv("MARKETLENS_MOCK"); v != "" {
		mock, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("MARKETLENS_MOCK: %w", err)
		}
		cfg.DataSource.Mock = mock
	}
	if v := os.Getenv("NOTIFY_WEBHOOK_URL"); v != "" {
		cfg.Notify.WebhookURL = v
	}

	// Defaults
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = common.DefaultListenAddr
	}
	if cfg.Server.Title == "" {
		cfg.Server.Title = "MarketLens"
	}
	if cfg.DataSource.RequestTimeout == 0 {
		cfg.DataSource.RequestTimeout = common.DefaultRequestTimeout
	}
	if cfg.Refresh.Spec == "" {
		cfg.Refresh.Spec = common.DefaultRefreshSpec
	}
	if cfg.Dashboard.OpenBestItems == nil {
		open := true
		cfg.Dashboard.OpenBestItems = &open
	}
	if cfg.Notify.MaxRetries == 0 {
		cfg.Notify.MaxRetries = 3
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.DataSource.BaseURL == "" && !c.DataSource.Mock {
		return fmt.Errorf("data_source.base_url is required unless data_source.mock is set")
	}
	if c.DataSource.BaseURL != "" {
		u, err := url.Parse(c.DataSource.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("data_source.base_url %q is not an absolute URL", c.DataSource.BaseURL)
		}
	}
	if c.DataSource.RequestTimeout < 0 {
		return fmt.Errorf("data_source.request_timeout must not be negative")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q is invalid, use: debug, info, warn, error", c.LogLevel)
	}
	if c.Notify.MaxRetries < 0 {
		return fmt.Errorf("notify.max_retries must not be negative")
	}
	return nil
}
