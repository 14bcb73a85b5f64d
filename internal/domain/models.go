package domain

import "time"

// Domain contains the core models shared by the ingestion pipeline and
// the read API.

// Article is a persisted, immutable news record. URL is the dedup
// boundary: the store keeps at most one article per URL for its
// lifetime.
type Article struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// RawItem is the transient output of a source fetcher, before date
// normalization and categorization. It is never persisted.
type RawItem struct {
	Title         string
	URL           string
	Source        string
	PublishedText string // best-effort raw timestamp text, may be empty
	Summary       string // optional, feeds the categorizer alongside the title
}
