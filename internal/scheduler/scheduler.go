// Package scheduler drives the periodic crawl: one pass immediately at
// startup, then one per configured interval until Stop.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dinkominfo-jombang/pantau-berita/internal/logger"
)

// Runner is the single operation the scheduler drives.
type Runner interface {
	RunOnce(ctx context.Context) int
}

// Scheduler owns its own lifecycle: idle until Start, then running
// until Stop. Start is idempotent; a second call is a no-op.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	log      logger.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	started bool
	cancel  context.CancelFunc
}

// New builds a scheduler around the runner with the given interval.
func New(runner Runner, interval time.Duration, log logger.Logger) (*Scheduler, error) {
	if runner == nil {
		return nil, fmt.Errorf("scheduler: runner is nil")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("scheduler: interval must be positive, got %s", interval)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Scheduler{runner: runner, interval: interval, log: log}, nil
}

// Start transitions idle -> running: one immediate pass in the
// background, then one per interval. Calling Start on a running
// scheduler does nothing.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), func() { s.pass(ctx) }); err != nil {
		cancel()
		return fmt.Errorf("schedule crawl: %w", err)
	}

	s.cron = c
	s.started = true
	c.Start()
	go s.pass(ctx)

	s.log.InfoObj("scheduler started", "scheduler_start", map[string]any{
		"interval": s.interval.String(),
	})
	return nil
}

// Stop cancels in-flight work and halts the loop. Waits for a pass
// already running inside cron to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.cancel()
	<-s.cron.Stop().Done()
	s.started = false
	s.log.InfoObj("scheduler stopped", "scheduler_stop", nil)
}

// pass runs one crawl, skipping cleanly once the scheduler is stopped.
// Panics inside the runner are contained here so one bad pass never
// kills the loop.
func (s *Scheduler) pass(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorObj("crawl pass panicked", "scheduler_panic", map[string]any{
				"panic": r,
			})
		}
	}()

	added := s.runner.RunOnce(ctx)
	s.log.InfoObj("scheduled crawl pass complete", "scheduler_pass", map[string]any{
		"added": added,
	})
}
