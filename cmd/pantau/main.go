// Command pantau runs the Jombang news monitoring backend: an hourly
// background crawl over the known sources plus the read/trigger HTTP
// API the dashboard consumes.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dinkominfo-jombang/pantau-berita/internal/api"
	"github.com/dinkominfo-jombang/pantau-berita/internal/config"
	"github.com/dinkominfo-jombang/pantau-berita/internal/crawler"
	"github.com/dinkominfo-jombang/pantau-berita/internal/logger"
	"github.com/dinkominfo-jombang/pantau-berita/internal/pipeline"
	"github.com/dinkominfo-jombang/pantau-berita/internal/scheduler"
	"github.com/dinkominfo-jombang/pantau-berita/internal/store"
	"github.com/dinkominfo-jombang/pantau-berita/pkg/httpclient"
	"github.com/dinkominfo-jombang/pantau-berita/pkg/publishers"
	"github.com/dinkominfo-jombang/pantau-berita/pkg/sources"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck // stdout sync failure is harmless

	if err := run(cfg, log); err != nil {
		log.ErrorObj("fatal", "startup_error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	st, err := store.Open(cfg.DBPath, log)
	if err != nil {
		return err
	}
	defer st.Close()

	fetchers := sources.DefaultFetchers(sources.Config{
		Client:      httpclient.NewRestyClient(cfg.RequestTimeout),
		UserAgent:   cfg.UserAgent,
		DetailDates: cfg.DetailDates,
		Log:         log,
	})

	pubs, err := buildPublishers(cfg, log)
	if err != nil {
		return err
	}

	orch := crawler.New(
		fetchers,
		st,
		pipeline.NewDateNormalizer(nil),
		pipeline.NewCategorizer(),
		pubs,
		cfg.FetchLimit,
		log,
	)

	sched, err := scheduler.New(orch, cfg.CrawlInterval, log)
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	api.NewServer(st, orch, cfg.LookbackDays, log).RegisterRoutes(engine)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.InfoObj("http server listening", "http_start", map[string]any{
		"addr": cfg.HTTPAddr,
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.InfoObj("shutting down", "shutdown", map[string]any{
			"signal": sig.String(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// buildPublishers wires up the optional downstream sinks. No file
// configured means no publishing.
func buildPublishers(cfg *config.Config, log logger.Logger) ([]publishers.Publisher, error) {
	if cfg.PublishersFile == "" {
		return nil, nil
	}

	reg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return publishers.BuildAll(ctx, publishers.DefaultRegistry(), reg.Enabled(), log)
}
