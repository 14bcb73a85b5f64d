// Package config loads runtime configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries every tunable the harvester consumes.
type Config struct {
	HTTPAddr string

	DBPath string

	UserAgent      string
	RequestTimeout time.Duration
	CrawlInterval  time.Duration
	FetchLimit     int

	LookbackDays int

	PublishersFile string

	LogLevel string

	// DetailDates overrides the per-source detail-fetch default, keyed
	// by source id. Sources absent from the map keep their built-in
	// behavior.
	DetailDates map[string]bool
}

const (
	defaultHTTPAddr       = ":8080"
	defaultDBPath         = "data/pantau.db"
	defaultUserAgent      = "Mozilla/5.0 (compatible; PantauBerita/1.0; +https://jombangkab.go.id)"
	defaultRequestTimeout = 15 * time.Second
	defaultCrawlInterval  = time.Hour
	defaultFetchLimit     = 20
	defaultLookbackDays   = 7
	defaultLogLevel       = "info"
)

// Load reads .env (when present) and binds environment variables with
// documented defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", defaultHTTPAddr)
	v.SetDefault("DB_PATH", defaultDBPath)
	v.SetDefault("USER_AGENT", defaultUserAgent)
	v.SetDefault("REQUEST_TIMEOUT", defaultRequestTimeout.String())
	v.SetDefault("CRAWL_INTERVAL", defaultCrawlInterval.String())
	v.SetDefault("FETCH_LIMIT", defaultFetchLimit)
	v.SetDefault("LOOKBACK_DAYS", defaultLookbackDays)
	v.SetDefault("PUBLISHERS_FILE", "")
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("DETAIL_DATES", "")

	cfg := &Config{
		HTTPAddr:       v.GetString("HTTP_ADDR"),
		DBPath:         v.GetString("DB_PATH"),
		UserAgent:      v.GetString("USER_AGENT"),
		FetchLimit:     v.GetInt("FETCH_LIMIT"),
		LookbackDays:   v.GetInt("LOOKBACK_DAYS"),
		PublishersFile: v.GetString("PUBLISHERS_FILE"),
		LogLevel:       v.GetString("LOG_LEVEL"),
	}

	var err error
	if cfg.RequestTimeout, err = time.ParseDuration(v.GetString("REQUEST_TIMEOUT")); err != nil {
		return nil, fmt.Errorf("parse REQUEST_TIMEOUT: %w", err)
	}
	if cfg.CrawlInterval, err = time.ParseDuration(v.GetString("CRAWL_INTERVAL")); err != nil {
		return nil, fmt.Errorf("parse CRAWL_INTERVAL: %w", err)
	}
	if cfg.DetailDates, err = parseDetailDates(v.GetString("DETAIL_DATES")); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("DB_PATH is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.CrawlInterval <= 0 {
		return fmt.Errorf("CRAWL_INTERVAL must be positive, got %s", c.CrawlInterval)
	}
	if c.FetchLimit <= 0 {
		return fmt.Errorf("FETCH_LIMIT must be positive, got %d", c.FetchLimit)
	}
	if c.LookbackDays <= 0 {
		return fmt.Errorf("LOOKBACK_DAYS must be positive, got %d", c.LookbackDays)
	}
	return nil
}

// parseDetailDates decodes a "source:on,source:off" list.
func parseDetailDates(raw string) (map[string]bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	out := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, val, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("DETAIL_DATES entry %q is not source:on|off", part)
		}
		id = strings.ToLower(strings.TrimSpace(id))
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "on", "true", "1":
			out[id] = true
		case "off", "false", "0":
			out[id] = false
		default:
			return nil, fmt.Errorf("DETAIL_DATES entry %q has unknown value", part)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
