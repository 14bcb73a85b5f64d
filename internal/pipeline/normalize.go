// Package pipeline holds the pure ingest-side transforms applied to
// raw scrape results: timestamp normalization and topic
// categorization.
package pipeline

import (
	"regexp"
	"strings"
	"time"
)

// dateLayouts is tried in order; first successful parse wins.
var dateLayouts = []string{
	time.RFC3339,               // 2025-08-25T10:30:00+07:00
	"2006-01-02T15:04:05-0700", // offset without colon
	"2006-01-02T15:04:05",      // offset-naive ISO-8601
	"2 January 2006",           // long-form date
	"02/01/2006",               // slash date, day first
	"2006-01-02",               // bare date
}

// indonesianMonths maps the month names used by regional portals to
// their numbers.
var indonesianMonths = map[string]time.Month{
	"januari":   time.January,
	"februari":  time.February,
	"maret":     time.March,
	"april":     time.April,
	"mei":       time.May,
	"juni":      time.June,
	"juli":      time.July,
	"agustus":   time.August,
	"september": time.September,
	"oktober":   time.October,
	"november":  time.November,
	"desember":  time.December,
}

var indonesianDateRe = regexp.MustCompile(
	`(\d{1,2})\s+(Januari|Februari|Maret|April|Mei|Juni|Juli|Agustus|September|Oktober|November|Desember)\s+(\d{4})`)

// DateNormalizer turns heterogeneous timestamp text into a canonical
// instant. Inputs matching no known pattern resolve to the injected
// clock's current time: an intentional ingestion-time approximation,
// never an error.
type DateNormalizer struct {
	now func() time.Time
}

// NewDateNormalizer builds a normalizer around the given clock. A nil
// clock means time.Now in UTC.
func NewDateNormalizer(now func() time.Time) *DateNormalizer {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &DateNormalizer{now: now}
}

// Normalize parses raw against the known layouts, then the Indonesian
// long-form date, and falls back to now.
func (n *DateNormalizer) Normalize(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return n.now()
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}

	if t, ok := ParseIndonesianDate(raw); ok {
		return t
	}

	return n.now()
}

// FindIndonesianDate returns the first "25 Agustus 2025" style date
// found in text, or the empty string. Fetchers use it to lift a prose
// date out of a page body.
func FindIndonesianDate(text string) string {
	return indonesianDateRe.FindString(text)
}

// ParseIndonesianDate scans text for a "25 Agustus 2025" style date.
// The text may be a whole article body; the first match wins.
func ParseIndonesianDate(text string) (time.Time, bool) {
	m := indonesianDateRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	day := atoiSafe(m[1])
	month, ok := indonesianMonths[strings.ToLower(m[2])]
	if !ok || day < 1 || day > 31 {
		return time.Time{}, false
	}
	year := atoiSafe(m[3])

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
