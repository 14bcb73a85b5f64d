package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dinkominfo-jombang/pantau-berita/internal/domain"
)

const (
	beritaJombangID   = "beritajombang"
	beritaJombangBase = "https://beritajombang.com/"
)

// beritaJombangFetcher scrapes the beritajombang.com front page. The
// listing carries a <time> element inside each article card, so no
// detail fetch is needed.
type beritaJombangFetcher struct {
	cfg  Config
	base string
}

// NewBeritaJombangFetcher builds the beritajombang.com fetcher.
func NewBeritaJombangFetcher(cfg Config) Fetcher {
	return &beritaJombangFetcher{cfg: cfg.normalized(), base: beritaJombangBase}
}

func (f *beritaJombangFetcher) ID() string { return beritaJombangID }

func (f *beritaJombangFetcher) Fetch(ctx context.Context, limit int) ([]domain.RawItem, error) {
	doc, err := fetchDocument(ctx, f.cfg.Client, f.base, f.cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("%s listing: %w", beritaJombangID, err)
	}

	var items []domain.RawItem
	doc.Find("h2.entry-title a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if len(items) >= limit {
			return false
		}

		title := strings.TrimSpace(a.Text())
		href, _ := a.Attr("href")
		link := resolveURL(href, f.base)
		if title == "" || link == "" {
			return true
		}

		// Publish date lives on the enclosing article card when present.
		published := ""
		if card := a.Closest("article"); card.Length() > 0 {
			published = timeTagValue(card)
		}

		items = append(items, domain.RawItem{
			Title:         title,
			URL:           link,
			Source:        "beritajombang.com",
			PublishedText: published,
		})
		return true
	})

	return items, nil
}
