package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dinkominfo-jombang/pantau-berita/internal/domain"
	"github.com/dinkominfo-jombang/pantau-berita/internal/pipeline"
)

const (
	jombangKabID      = "jombangkab"
	jombangKabBase    = "https://www.jombangkab.go.id"
	jombangKabListing = jombangKabBase + "/berita"
)

// jombangKabFetcher scrapes the Pemkab Jombang portal. The listing only
// carries links; title and publish date (an Indonesian prose date) live
// on each article page, so the per-link detail fetch is structural
// here, not optional. A failed detail fetch drops that link only.
type jombangKabFetcher struct {
	cfg     Config
	base    string
	listing string
}

// NewJombangKabFetcher builds the jombangkab.go.id fetcher.
func NewJombangKabFetcher(cfg Config) Fetcher {
	return &jombangKabFetcher{cfg: cfg.normalized(), base: jombangKabBase, listing: jombangKabListing}
}

func (f *jombangKabFetcher) ID() string { return jombangKabID }

func (f *jombangKabFetcher) Fetch(ctx context.Context, limit int) ([]domain.RawItem, error) {
	doc, err := fetchDocument(ctx, f.cfg.Client, f.listing, f.cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("%s listing: %w", jombangKabID, err)
	}

	links := f.candidateLinks(doc, limit)

	var items []domain.RawItem
	for _, link := range links {
		if ctx.Err() != nil {
			break
		}

		item, err := f.fetchArticle(ctx, link)
		if err != nil {
			f.cfg.Log.WarnObj("article page fetch failed", "source_item_error", map[string]any{
				"source": jombangKabID,
				"url":    link,
				"error":  err.Error(),
			})
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// candidateLinks collects detail-page links from the listing,
// deduplicated preserving document order.
func (f *jombangKabFetcher) candidateLinks(doc *goquery.Document, limit int) []string {
	seen := make(map[string]struct{})
	var links []string

	doc.Find(`a[href*="/berita/"]`).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if len(links) >= limit {
			return false
		}

		href, _ := a.Attr("href")
		link := resolveURL(href, f.base)
		// Detail pages look like /berita/<kategori>/<slug>-<id>;
		// shallower paths are section indexes, not articles.
		if link == "" || !strings.Contains(link, "/berita/") || strings.Count(link, "/") < 5 {
			return true
		}
		if _, dup := seen[link]; dup {
			return true
		}
		seen[link] = struct{}{}
		links = append(links, link)
		return true
	})

	return links
}

func (f *jombangKabFetcher) fetchArticle(ctx context.Context, link string) (domain.RawItem, error) {
	doc, err := fetchDocument(ctx, f.cfg.Client, link, f.cfg.UserAgent)
	if err != nil {
		return domain.RawItem{}, err
	}

	title := strings.TrimSpace(doc.Find("h1, h2, h3").First().Text())
	if title == "" {
		return domain.RawItem{}, fmt.Errorf("no heading found at %s", link)
	}

	// The publish date appears as "25 Agustus 2025" somewhere near the
	// title; scan the page text for the first prose date.
	published := pipeline.FindIndonesianDate(doc.Text())

	return domain.RawItem{
		Title:         title,
		URL:           link,
		Source:        "jombangkab.go.id",
		PublishedText: published,
	}, nil
}
