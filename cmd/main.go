package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/stevillis/megasena/internal/adapters/http/api"
	"github.com/stevillis/megasena/internal/adapters/http/site"
	"github.com/stevillis/megasena/internal/adapters/http/swagger"
	"github.com/stevillis/megasena/internal/adapters/repository"
	"github.com/stevillis/megasena/internal/adapters/results"
	service "github.com/stevillis/megasena/internal/app"
	"github.com/stevillis/megasena/internal/config"
	"github.com/stevillis/megasena/internal/domain/analysis"
	"github.com/stevillis/megasena/internal/domain/generate"
	"github.com/stevillis/megasena/pkg/logger"
	"github.com/stevillis/megasena/pkg/metrics"
)

// HTTP server timeout constants.
const (
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging; init failures go to stderr since no logger exists yet
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to flush logs: " + err.Error() + "\n")
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		loggerInstance.Error(ctx, "failed to load config", logger.Error(err))
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Select the store backend
	drawStore, guessStore, closeDB, err := buildStores(ctx, cfg)
	if err != nil {
		loggerInstance.Error(ctx, "failed to set up stores", logger.Error(err))
		os.Exit(1)
	}
	if closeDB != nil {
		defer closeDB()
	}
	loggerInstance.Info(ctx, "store backend ready", logger.String("store", cfg.Store))

	// Create and start the service with configuration options
	svcOpts := []service.Option{
		service.WithLogger(loggerInstance),
		service.WithDrawStore(drawStore),
		service.WithGuessStore(guessStore),
		service.WithAnalyzer(analysis.New(analysis.WithParallelism(cfg.AnalyzerParallelism))),
		service.WithGenerator(generate.New(generate.WithRetryFactor(cfg.GeneratorRetryFactor))),
	}
	if cfg.ResultsBaseURL != "" {
		client := results.NewClient(cfg.ResultsBaseURL)
		syncer := results.NewSyncer(client, drawStore,
			results.WithWorkers(cfg.SyncWorkers),
			results.WithQueueSize(cfg.SyncQueueSize),
		)
		svcOpts = append(svcOpts, service.WithSyncer(syncer))
	}

	svc := service.New(svcOpts...)
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Error(ctx, "failed to start service", logger.Error(err))
		os.Exit(1)
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// Start service metrics updater
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	// Register the API docs under /api-docs
	swagger.Register(ctx, mux)

	// Register the landing site at /
	site.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	serverErr := make(chan error, 1)
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for shutdown signal or server failure
	select {
	case err := <-serverErr:
		loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
	case <-ctx.Done():
		loggerInstance.Info(ctx, "shutting down server...")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
		}
	}

	loggerInstance.Info(ctx, "server stopped")
}

// buildStores selects the store backend from configuration. The returned
// cleanup closes the shared database handle on the postgres path.
func buildStores(ctx context.Context, cfg *config.Config) (repository.DrawStore, repository.GuessStore, func(), error) {
	if cfg.Store == config.StorePostgres {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := repository.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return repository.NewPGDrawStore(db), repository.NewPGGuessStore(db), func() { _ = db.Close() }, nil
	}

	return repository.NewMemDrawStore(ctx), repository.NewMemGuessStore(ctx), nil, nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval) // Update every 10 seconds
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater starts a background goroutine that updates service metrics.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval) // Update every 5 seconds
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	// Update memory usage
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	// Update goroutine count
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	// Update GC pause time
	if m.NumGC > 0 {
		// Calculate average GC pause time
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics updates service-level metrics.
func updateServiceMetrics(svc *service.Service) {
	// GetStats refreshes the store gauges as a side effect; the map reads
	// below re-assert them so the dashboard stays fresh between polls
	stats := svc.GetStats()

	if draws, ok := stats["draws"].(int); ok {
		metrics.UpdateStoreDraws(draws)
	}

	if guesses, ok := stats["guesses"].(int); ok {
		metrics.UpdateStoreGuesses(guesses)
	}
}
