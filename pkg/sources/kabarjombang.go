package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dinkominfo-jombang/pantau-berita/internal/domain"
)

const (
	kabarJombangID   = "kabarjombang"
	kabarJombangBase = "https://kabarjombang.com/"
)

// kabarJombangFetcher scrapes the kabarjombang.com front page. The
// site exposes no usable timestamp near the listing, so items are
// emitted without one and the normalizer applies the ingestion-time
// fallback.
type kabarJombangFetcher struct {
	cfg  Config
	base string
}

// NewKabarJombangFetcher builds the kabarjombang.com fetcher.
func NewKabarJombangFetcher(cfg Config) Fetcher {
	return &kabarJombangFetcher{cfg: cfg.normalized(), base: kabarJombangBase}
}

func (f *kabarJombangFetcher) ID() string { return kabarJombangID }

func (f *kabarJombangFetcher) Fetch(ctx context.Context, limit int) ([]domain.RawItem, error) {
	doc, err := fetchDocument(ctx, f.cfg.Client, f.base, f.cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("%s listing: %w", kabarJombangID, err)
	}

	var items []domain.RawItem
	doc.Find("h2.entry-title a, h3.post-title a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if len(items) >= limit {
			return false
		}

		title := strings.TrimSpace(a.Text())
		href, _ := a.Attr("href")
		link := resolveURL(href, f.base)
		if title == "" || link == "" {
			return true
		}

		items = append(items, domain.RawItem{
			Title:  title,
			URL:    link,
			Source: "kabarjombang.com",
		})
		return true
	})

	return items, nil
}
