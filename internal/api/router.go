// Package api exposes the read and trigger HTTP surface consumed by
// the dashboard: recent articles, daily trend, top keywords, and a
// manual crawl trigger. It only ever reads through the store; fetchers
// are never invoked from a request handler except via the
// orchestrator's RunOnce.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dinkominfo-jombang/pantau-berita/internal/domain"
	"github.com/dinkominfo-jombang/pantau-berita/internal/keywords"
	"github.com/dinkominfo-jombang/pantau-berita/internal/logger"
	"github.com/dinkominfo-jombang/pantau-berita/internal/store"
)

const (
	maxArticles      = 500
	maxKeywordTitles = 1000
	topKeywordCount  = 20
)

// ReadStore is the query surface the API needs.
type ReadStore interface {
	QueryRecent(since time.Time, limit int) ([]domain.Article, error)
	QueryDailyCounts(since, until time.Time) ([]store.DayCount, error)
	QueryTitles(since time.Time, limit int) ([]string, error)
}

// Crawler triggers a single on-demand ingestion pass.
type Crawler interface {
	RunOnce(ctx context.Context) int
}

// Server wires the HTTP handlers to the store and orchestrator.
type Server struct {
	store        ReadStore
	crawler      Crawler
	lookbackDays int
	now          func() time.Time
	log          logger.Logger
}

// NewServer builds the API server. lookbackDays is the default window
// when a request omits ?days.
func NewServer(st ReadStore, crawler Crawler, lookbackDays int, log logger.Logger) *Server {
	if lookbackDays <= 0 {
		lookbackDays = 7
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Server{
		store:        st,
		crawler:      crawler,
		lookbackDays: lookbackDays,
		now:          func() time.Time { return time.Now().UTC() },
		log:          log,
	}
}

// RegisterRoutes attaches all handlers to the engine.
func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)
	r.GET("/api/articles", s.listArticles)
	r.GET("/api/trend", s.trend)
	r.GET("/api/keywords", s.topKeywords)
	// The dashboard's refresh button predates this service and uses
	// GET; both verbs are accepted.
	r.GET("/crawl-now", s.crawlNow)
	r.POST("/crawl-now", s.crawlNow)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// sinceParam resolves the lookback window from ?days.
func (s *Server) sinceParam(c *gin.Context) time.Time {
	days := s.lookbackDays
	if raw := c.Query("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			days = n
		}
	}
	return s.now().AddDate(0, 0, -days)
}

func (s *Server) listArticles(c *gin.Context) {
	arts, err := s.store.QueryRecent(s.sinceParam(c), maxArticles)
	if err != nil {
		s.fail(c, "list articles", err)
		return
	}
	if arts == nil {
		arts = []domain.Article{}
	}
	c.JSON(http.StatusOK, arts)
}

func (s *Server) trend(c *gin.Context) {
	since := s.sinceParam(c)
	counts, err := s.store.QueryDailyCounts(since, s.now())
	if err != nil {
		s.fail(c, "daily counts", err)
		return
	}

	labels := make([]string, 0, len(counts))
	values := make([]int, 0, len(counts))
	for _, dc := range counts {
		labels = append(labels, dc.Day)
		values = append(values, dc.Count)
	}
	c.JSON(http.StatusOK, gin.H{"labels": labels, "counts": values})
}

func (s *Server) topKeywords(c *gin.Context) {
	titles, err := s.store.QueryTitles(s.sinceParam(c), maxKeywordTitles)
	if err != nil {
		s.fail(c, "query titles", err)
		return
	}

	top := keywords.ExtractTop(titles, topKeywordCount)
	labels := make([]string, 0, len(top))
	values := make([]int, 0, len(top))
	for _, kw := range top {
		labels = append(labels, kw.Token)
		values = append(values, kw.Count)
	}
	c.JSON(http.StatusOK, gin.H{"labels": labels, "counts": values})
}

// crawlNow runs one ingestion pass inline and reports only the count
// of newly added articles; partial per-source failures are not
// surfaced, matching the best-effort pipeline contract.
func (s *Server) crawlNow(c *gin.Context) {
	added := s.crawler.RunOnce(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "ok", "added": added})
}

func (s *Server) fail(c *gin.Context, op string, err error) {
	s.log.ErrorObj("api request failed", "api_error", map[string]any{
		"op":    op,
		"error": err.Error(),
	})
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    "internal_error",
		"message": "internal server error",
	})
}
