// Package sources holds the site-specific fetchers that extract raw
// headline candidates from each monitored news site. Every site hides
// behind the same Fetcher contract; the orchestrator never depends on
// site specifics.
package sources

import (
	"context"
	"time"

	"github.com/dinkominfo-jombang/pantau-berita/internal/domain"
	"github.com/dinkominfo-jombang/pantau-berita/internal/logger"
	"github.com/dinkominfo-jombang/pantau-berita/pkg/httpclient"
)

// Fetcher extracts at most limit raw candidates from one site,
// preserving document order. A hard listing-level failure (request or
// parse) is returned as an error; a page with nothing matching yields
// an empty slice and nil error. Fetchers are read-only and stateless
// per call.
type Fetcher interface {
	ID() string
	Fetch(ctx context.Context, limit int) ([]domain.RawItem, error)
}

// Config carries the shared knobs every fetcher is built with.
type Config struct {
	Client    httpclient.Client
	UserAgent string
	Log       logger.Logger

	// DetailDates overrides, per source id, whether a fetcher visits
	// each candidate link to read the article's own publish date.
	// Sources absent from the map keep their built-in default.
	DetailDates map[string]bool
}

func (c Config) detailDates(id string, def bool) bool {
	if v, ok := c.DetailDates[id]; ok {
		return v
	}
	return def
}

func (c Config) normalized() Config {
	if c.Client == nil {
		c.Client = DefaultHTTPClient()
	}
	if c.Log == nil {
		c.Log = logger.NopLogger{}
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	return c
}

const (
	defaultUserAgent = "Mozilla/5.0 (compatible; PantauBerita/1.0; +https://jombangkab.go.id)"
	defaultTimeout   = 15 * time.Second
)

// DefaultHTTPClient returns the tuned client fetchers fall back to
// when none is injected.
func DefaultHTTPClient() httpclient.Client {
	return httpclient.NewRestyClient(defaultTimeout)
}

// DefaultFetchers wires up the known site fetchers in their registered
// order.
func DefaultFetchers(cfg Config) []Fetcher {
	cfg = cfg.normalized()
	return []Fetcher{
		NewBeritaJombangFetcher(cfg),
		NewKabarJombangFetcher(cfg),
		NewJombangKabFetcher(cfg),
		NewDetikFetcher(cfg),
		NewTribunJatimFetcher(cfg),
		NewWartaJombangFetcher(cfg),
	}
}
