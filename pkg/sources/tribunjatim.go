package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dinkominfo-jombang/pantau-berita/internal/domain"
)

const (
	tribunJatimID   = "tribunjatim"
	tribunJatimBase = "https://jatim.tribunnews.com"
	tribunJatimTag  = tribunJatimBase + "/tag/jombang"
)

// tribunJatimFetcher scrapes the Tribun Jatim "jombang" tag page.
type tribunJatimFetcher struct {
	cfg         Config
	base        string
	listing     string
	detailDates bool
}

// NewTribunJatimFetcher builds the jatim.tribunnews.com fetcher.
func NewTribunJatimFetcher(cfg Config) Fetcher {
	cfg = cfg.normalized()
	return &tribunJatimFetcher{
		cfg:         cfg,
		base:        tribunJatimBase,
		listing:     tribunJatimTag,
		detailDates: cfg.detailDates(tribunJatimID, true),
	}
}

func (f *tribunJatimFetcher) ID() string { return tribunJatimID }

func (f *tribunJatimFetcher) Fetch(ctx context.Context, limit int) ([]domain.RawItem, error) {
	doc, err := fetchDocument(ctx, f.cfg.Client, f.listing, f.cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("%s listing: %w", tribunJatimID, err)
	}

	var items []domain.RawItem
	doc.Find("h3.post-title a, h2.post-title a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
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
			Source:        "tribunjatim",
			PublishedText: published,
		})
		return true
	})

	return items, nil
}
