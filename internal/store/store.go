// Package store persists articles in an embedded bbolt database. The
// url key is the dedup boundary; a secondary bucket indexes articles by
// publish time for range scans.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/dinkominfo-jombang/pantau-berita/internal/domain"
	"github.com/dinkominfo-jombang/pantau-berita/internal/logger"
	"github.com/dinkominfo-jombang/pantau-berita/internal/pipeline"
)

var (
	bucketArticles = []byte("articles")      // url -> json article
	bucketIndex    = []byte("published_idx") // time key -> url

	// ErrEmptyURL rejects inserts that violate the url contract.
	ErrEmptyURL = errors.New("store: article url is empty")
)

// timeKeyLayout is fixed-width so index keys sort bytewise by instant.
const timeKeyLayout = "2006-01-02T15:04:05.000000000Z"

// Store is the single shared mutable resource of the harvester. bbolt
// serializes writers, so concurrent inserts of the same url have
// exactly one winner.
type Store struct {
	db  *bolt.DB
	log logger.Logger
	now func() time.Time
}

// Option tweaks store construction.
type Option func(*Store)

// WithClock overrides the ingestion clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens (creating if needed) the database at path, ensures the
// buckets exist, and runs the category migration.
func Open(path string, log logger.Logger, opts ...Option) (*Store, error) {
	if log == nil {
		log = logger.NopLogger{}
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}

	s := &Store{
		db:  db,
		log: log,
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketArticles); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketIndex)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// migrate backfills the catch-all category on rows written before
// categorization existed. Safe to run on every startup.
func (s *Store) migrate() error {
	migrated := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketArticles)
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var art domain.Article
			if err := json.Unmarshal(v, &art); err != nil {
				return fmt.Errorf("decode article %q: %w", k, err)
			}
			if art.Category != "" {
				continue
			}
			art.Category = pipeline.CategoryLainnya
			raw, err := json.Marshal(art)
			if err != nil {
				return err
			}
			if err := b.Put(k, raw); err != nil {
				return err
			}
			migrated++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("category migration: %w", err)
	}
	if migrated > 0 {
		s.log.InfoObj("backfilled default category on legacy rows", "store_migration", map[string]any{
			"rows": migrated,
		})
	}
	return nil
}

func timeKey(t time.Time, url string) []byte {
	key := make([]byte, 0, len(timeKeyLayout)+1+len(url))
	key = append(key, t.UTC().Format(timeKeyLayout)...)
	key = append(key, 0x00)
	return append(key, url...)
}

func keyInstant(key []byte) (time.Time, bool) {
	if len(key) < len(timeKeyLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(timeKeyLayout, string(key[:len(timeKeyLayout)]))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// InsertIfAbsent persists the candidate unless an article with the same
// url already exists. It reports whether a new row was written; a
// duplicate is a no-op that leaves the existing row untouched, not an
// error. On insert, ID and CreatedAt are assigned here, written back
// into candidate, and never change afterwards.
func (s *Store) InsertIfAbsent(candidate *domain.Article) (bool, error) {
	if candidate == nil {
		return false, fmt.Errorf("store: nil candidate")
	}
	if candidate.URL == "" {
		return false, ErrEmptyURL
	}

	inserted := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketArticles)
		if b.Get([]byte(candidate.URL)) != nil {
			return nil
		}

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		candidate.ID = seq
		candidate.CreatedAt = s.now()
		if candidate.Category == "" {
			candidate.Category = pipeline.CategoryLainnya
		}

		raw, err := json.Marshal(candidate)
		if err != nil {
			return err
		}
		if err := b.Put([]byte(candidate.URL), raw); err != nil {
			return err
		}
		if err := tx.Bucket(bucketIndex).Put(timeKey(candidate.PublishedAt, candidate.URL), []byte(candidate.URL)); err != nil {
			return err
		}
		inserted = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("insert article: %w", err)
	}
	return inserted, nil
}

// QueryRecent returns articles published at or after since, newest
// first, capped at limit.
func (s *Store) QueryRecent(since time.Time, limit int) ([]domain.Article, error) {
	if limit <= 0 {
		return nil, nil
	}

	var out []domain.Article
	err := s.db.View(func(tx *bolt.Tx) error {
		arts := tx.Bucket(bucketArticles)
		c := tx.Bucket(bucketIndex).Cursor()
		lower := timeKey(since, "")

		for k, v := c.Last(); k != nil && len(out) < limit; k, v = c.Prev() {
			if bytes.Compare(k, lower) < 0 {
				break
			}
			raw := arts.Get(v)
			if raw == nil {
				continue
			}
			var art domain.Article
			if err := json.Unmarshal(raw, &art); err != nil {
				return fmt.Errorf("decode article %q: %w", v, err)
			}
			out = append(out, art)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DayCount is one calendar day with its article count.
type DayCount struct {
	Day   string `json:"day"` // 2006-01-02, UTC
	Count int    `json:"count"`
}

// QueryDailyCounts returns one entry per UTC calendar day in
// [since, until] inclusive, ascending, zero-filled for days with no
// articles. Callers never have to post-process sparse results.
func (s *Store) QueryDailyCounts(since, until time.Time) ([]DayCount, error) {
	sinceDay := since.UTC().Truncate(24 * time.Hour)
	untilDay := until.UTC().Truncate(24 * time.Hour)
	if untilDay.Before(sinceDay) {
		return nil, fmt.Errorf("daily counts: until %s precedes since %s", until, since)
	}

	counts := make(map[string]int)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketIndex).Cursor()
		lower := timeKey(since.UTC(), "")

		for k, _ := c.Seek(lower); k != nil; k, _ = c.Next() {
			t, ok := keyInstant(k)
			if !ok {
				continue
			}
			if t.After(until.UTC()) {
				break
			}
			counts[t.Format("2006-01-02")]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var out []DayCount
	for day := sinceDay; !day.After(untilDay); day = day.AddDate(0, 0, 1) {
		label := day.Format("2006-01-02")
		out = append(out, DayCount{Day: label, Count: counts[label]})
	}
	return out, nil
}

// QueryTitles returns the titles of articles published at or after
// since, newest first, capped at limit. Feeds the keyword extractor.
func (s *Store) QueryTitles(since time.Time, limit int) ([]string, error) {
	arts, err := s.QueryRecent(since, limit)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(arts))
	for _, a := range arts {
		titles = append(titles, a.Title)
	}
	return titles, nil
}
