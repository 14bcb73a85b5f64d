package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dinkominfo-jombang/pantau-berita/internal/domain"
)

const (
	wartaJombangID   = "wartajombang"
	wartaJombangBase = "https://wartajombang.com/"
)

// wartaJombangFetcher scrapes the wartajombang.com front page.
type wartaJombangFetcher struct {
	cfg         Config
	base        string
	detailDates bool
}

// NewWartaJombangFetcher builds the wartajombang.com fetcher.
func NewWartaJombangFetcher(cfg Config) Fetcher {
	cfg = cfg.normalized()
	return &wartaJombangFetcher{
		cfg:         cfg,
		base:        wartaJombangBase,
		detailDates: cfg.detailDates(wartaJombangID, true),
	}
}

func (f *wartaJombangFetcher) ID() string { return wartaJombangID }

func (f *wartaJombangFetcher) Fetch(ctx context.Context, limit int) ([]domain.RawItem, error) {
	doc, err := fetchDocument(ctx, f.cfg.Client, f.base, f.cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("%s listing: %w", wartaJombangID, err)
	}

	var items []domain.RawItem
	doc.Find("h2.entry-title a, .post-title a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if len(items) >= limit {
			return false
		}

		title := strings.TrimSpace(a.Text())
		href, _ := a.Attr("href")
		link := resolveURL(href, f.base)
		if title == "" || link == "" {
			return true
		}

		published := ""
		if f.detailDates && ctx.Err() == nil {
			published = detailPublishedText(ctx, f.cfg.Client, link, f.cfg.UserAgent)
		}

		items = append(items, domain.RawItem{
			Title:         title,
			URL:           link,
			Source:        "wartajombang",
			PublishedText: published,
		})
		return true
	})

	return items, nil
}
