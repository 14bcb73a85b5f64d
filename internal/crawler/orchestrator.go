// Package crawler runs one ingestion pass: every source fetcher in
// parallel, raw items normalized and categorized, results written
// through the article store. This is the single boundary where
// per-source failures are swallowed and logged.
package crawler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dinkominfo-jombang/pantau-berita/internal/domain"
	"github.com/dinkominfo-jombang/pantau-berita/internal/logger"
	"github.com/dinkominfo-jombang/pantau-berita/internal/pipeline"
	"github.com/dinkominfo-jombang/pantau-berita/internal/store"
	"github.com/dinkominfo-jombang/pantau-berita/pkg/publishers"
	"github.com/dinkominfo-jombang/pantau-berita/pkg/sources"
)

// ArticleStore is the write surface the orchestrator needs.
type ArticleStore interface {
	InsertIfAbsent(candidate *domain.Article) (bool, error)
}

// Orchestrator drives one crawl pass across all registered fetchers.
type Orchestrator struct {
	fetchers    []sources.Fetcher
	normalizer  *pipeline.DateNormalizer
	categorizer *pipeline.Categorizer
	store       ArticleStore
	publishers  []publishers.Publisher
	fetchLimit  int
	log         logger.Logger
}

// New builds an orchestrator. A nil logger is replaced with a no-op
// one; normalizer and categorizer default to their standard
// construction when nil.
func New(
	fetchers []sources.Fetcher,
	st ArticleStore,
	normalizer *pipeline.DateNormalizer,
	categorizer *pipeline.Categorizer,
	pubs []publishers.Publisher,
	fetchLimit int,
	log logger.Logger,
) *Orchestrator {
	if log == nil {
		log = logger.NopLogger{}
	}
	if normalizer == nil {
		normalizer = pipeline.NewDateNormalizer(nil)
	}
	if categorizer == nil {
		categorizer = pipeline.NewCategorizer()
	}
	if fetchLimit <= 0 {
		fetchLimit = 20
	}
	return &Orchestrator{
		fetchers:    fetchers,
		normalizer:  normalizer,
		categorizer: categorizer,
		store:       st,
		publishers:  pubs,
		fetchLimit:  fetchLimit,
		log:         log,
	}
}

// RunOnce runs every fetcher concurrently and returns the number of
// newly inserted articles across all sources. A failing source reduces
// the result, never aborts the pass.
func (o *Orchestrator) RunOnce(ctx context.Context) int {
	var (
		wg    sync.WaitGroup
		total atomic.Int64
	)

	for _, f := range o.fetchers {
		wg.Add(1)
		go func(f sources.Fetcher) {
			defer wg.Done()
			total.Add(int64(o.runSource(ctx, f)))
		}(f)
	}
	wg.Wait()

	o.log.InfoObj("crawl pass finished", "crawl_done", map[string]any{
		"sources":  len(o.fetchers),
		"inserted": total.Load(),
	})
	return int(total.Load())
}

// runSource fetches one source and ingests its items. Fetcher panics
// are a defensive boundary: recovered, logged, and treated as a failed
// source.
func (o *Orchestrator) runSource(ctx context.Context, f sources.Fetcher) (inserted int) {
	defer func() {
		if r := recover(); r != nil {
			o.log.ErrorObj("fetcher panicked", "source_panic", map[string]any{
				"source": f.ID(),
				"panic":  r,
			})
			inserted = 0
		}
	}()

	items, err := f.Fetch(ctx, o.fetchLimit)
	if err != nil {
		o.log.WarnObj("source fetch failed", "source_error", map[string]any{
			"source": f.ID(),
			"error":  err.Error(),
		})
		return 0
	}

	for _, item := range items {
		art := o.buildArticle(item)
		ok, err := o.store.InsertIfAbsent(&art)
		if err != nil {
			if errors.Is(err, store.ErrEmptyURL) {
				o.log.WarnObj("item rejected by store", "item_rejected", map[string]any{
					"source": f.ID(),
					"title":  item.Title,
					"error":  err.Error(),
				})
				continue
			}
			// Storage outage: keep going, remaining items may still land
			// once the store recovers on a later pass.
			o.log.ErrorObj("insert failed", "store_error", map[string]any{
				"source": f.ID(),
				"url":    item.URL,
				"error":  err.Error(),
			})
			continue
		}
		if !ok {
			continue
		}
		inserted++
		o.publish(ctx, art)
	}

	o.log.InfoObj("source ingested", "source_done", map[string]any{
		"source":   f.ID(),
		"fetched":  len(items),
		"inserted": inserted,
	})
	return inserted
}

// buildArticle derives the persisted shape from a raw scrape result.
func (o *Orchestrator) buildArticle(item domain.RawItem) domain.Article {
	text := item.Title
	if item.Summary != "" {
		text = item.Title + " " + item.Summary
	}

	return domain.Article{
		Title:       item.Title,
		URL:         item.URL,
		Source:      item.Source,
		Category:    o.categorizer.Categorize(text),
		PublishedAt: o.normalizer.Normalize(item.PublishedText),
	}
}

// publish hands a freshly inserted article to every configured sink.
func (o *Orchestrator) publish(ctx context.Context, art domain.Article) {
	if len(o.publishers) == 0 {
		return
	}

	evt := publishers.Event{
		ID:          art.ID,
		Title:       art.Title,
		URL:         art.URL,
		Source:      art.Source,
		Category:    art.Category,
		PublishedAt: art.PublishedAt,
		IngestedAt:  art.CreatedAt,
	}
	for _, pub := range o.publishers {
		if err := pub.Publish(ctx, evt); err != nil {
			o.log.WarnObj("publisher delivery failed", "publish_error", map[string]any{
				"publisher": pub.ID(),
				"url":       art.URL,
				"error":     err.Error(),
			})
		}
	}
}
