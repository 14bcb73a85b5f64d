package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "data/pantau.db", cfg.DBPath)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Hour, cfg.CrawlInterval)
	assert.Equal(t, 20, cfg.FetchLimit)
	assert.Equal(t, 7, cfg.LookbackDays)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.PublishersFile)
	assert.Nil(t, cfg.DetailDates)
	assert.Contains(t, cfg.UserAgent, "PantauBerita")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("CRAWL_INTERVAL", "30m")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("FETCH_LIMIT", "50")
	t.Setenv("LOOKBACK_DAYS", "14")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DETAIL_DATES", "detik:off, wartajombang:on")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, 30*time.Minute, cfg.CrawlInterval)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 50, cfg.FetchLimit)
	assert.Equal(t, 14, cfg.LookbackDays)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, map[string]bool{"detik": false, "wartajombang": true}, cfg.DetailDates)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad interval", "CRAWL_INTERVAL", "soon"},
		{"bad timeout", "REQUEST_TIMEOUT", "fast"},
		{"negative interval", "CRAWL_INTERVAL", "-1h"},
		{"zero fetch limit", "FETCH_LIMIT", "0"},
		{"zero lookback", "LOOKBACK_DAYS", "0"},
		{"empty db path", "DB_PATH", "   "},
		{"malformed detail dates", "DETAIL_DATES", "detik"},
		{"unknown detail value", "DETAIL_DATES", "detik:maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseDetailDates(t *testing.T) {
	got, err := parseDetailDates("Detik:ON, tribunjatim:false ,, jombangkab:1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{
		"detik":       true,
		"tribunjatim": false,
		"jombangkab":  true,
	}, got)

	got, err = parseDetailDates("   ")
	require.NoError(t, err)
	assert.Nil(t, got)
}
