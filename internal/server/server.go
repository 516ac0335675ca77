// Package server wires the configuration, service and HTTP routes into a
// running process. Both binaries share it.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/okian/skillbudget/internal/adapters/http/api"
	"github.com/okian/skillbudget/internal/adapters/http/swagger"
	app "github.com/okian/skillbudget/internal/app"
	"github.com/okian/skillbudget/internal/config"
	"github.com/okian/skillbudget/internal/ingest"
	"github.com/okian/skillbudget/pkg/logger"
	"github.com/okian/skillbudget/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

var _ api.Dependencies = (*app.Service)(nil)

// NewSource builds the document source the config points at: the base URL
// when set, the data directory otherwise.
func NewSource(cfg *config.Config) (ingest.Source, error) {
	files, err := ingest.FilesFromConfig(cfg.SkillFiles)
	if err != nil {
		return nil, fmt.Errorf("%w: skill_files: %w", config.ErrInvalidConfig, err)
	}
	if cfg.DataBaseURL != "" {
		client := &http.Client{Timeout: cfg.FetchTimeout()}
		src, err := ingest.NewHTTPSource(cfg.DataBaseURL, files, client)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	return ingest.NewFileSource(cfg.DataDir, files), nil
}

// NewService builds an unstarted service from cfg.
func NewService(cfg *config.Config, log logger.Logger) (*app.Service, error) {
	src, err := NewSource(cfg)
	if err != nil {
		return nil, err
	}
	return app.New(
		app.WithLogger(log),
		app.WithSource(src),
		app.WithFetchConcurrency(cfg.FetchConcurrency),
		app.WithFetchTimeout(cfg.FetchTimeout()),
		app.WithMaxCells(cfg.MaxDPCells),
		app.WithSuggestionLimit(cfg.SuggestionLimit),
	), nil
}

// NewHandler registers the docs and API routes for svc.
func NewHandler(ctx context.Context, svc *app.Service) http.Handler {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)
	return mux
}

// Run loads the catalog, serves HTTP on cfg.Addr and shuts down gracefully
// when ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	svc, err := NewService(cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewHandler(ctx, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}
	log.Info(ctx, "server stopped")
	return nil
}

// startSystemMetricsUpdater refreshes the system gauges until ctx ends.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(metrics.RefreshInterval())
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
