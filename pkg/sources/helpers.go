package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dinkominfo-jombang/pantau-berita/pkg/httpclient"
)

const maxHTMLBodyBytes = 1 << 20 // 1 MiB

func requestHeaders(userAgent string) map[string]string {
	return map[string]string{
		"User-Agent": userAgent,
		"Accept":     "text/html,application/xhtml+xml",
	}
}

// fetchDocument GETs url and parses the body as HTML. Oversized bodies
// are truncated before parsing.
func fetchDocument(ctx context.Context, client httpclient.Client, pageURL, userAgent string) (*goquery.Document, error) {
	resp, err := client.Get(ctx, pageURL, requestHeaders(userAgent))
	if err != nil {
		return nil, fmt.Errorf("http fetch %s: %w", pageURL, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d body: %s", pageURL, resp.StatusCode(), responseSnippet(resp.Body()))
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html %s: %w", pageURL, err)
	}
	return doc, nil
}

// responseSnippet returns a truncated body snippet for error messages.
func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

// resolveURL resolves a possibly relative href against the source base.
func resolveURL(raw, base string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if parsed.IsAbs() {
		return parsed.String()
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return raw
	}
	return baseURL.ResolveReference(parsed).String()
}

// timeTagValue reads the first <time> element in sel, preferring the
// machine-readable datetime attribute over display text.
func timeTagValue(sel *goquery.Selection) string {
	node := sel.Find("time").First()
	if node.Length() == 0 {
		return ""
	}
	if val, ok := node.Attr("datetime"); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return strings.TrimSpace(node.Text())
}

// detailPublishedText fetches an article page and extracts its <time>
// value. Any failure degrades to an empty string; the caller still
// emits the item and lets the normalizer fall back.
func detailPublishedText(ctx context.Context, client httpclient.Client, articleURL, userAgent string) string {
	doc, err := fetchDocument(ctx, client, articleURL, userAgent)
	if err != nil {
		return ""
	}
	return timeTagValue(doc.Selection)
}
