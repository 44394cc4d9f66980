package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/praxislabs/compass/internal/adapters/http/api"
	"github.com/praxislabs/compass/internal/adapters/insight"
	"github.com/praxislabs/compass/internal/adapters/store"
	app "github.com/praxislabs/compass/internal/app"
	"github.com/praxislabs/compass/internal/config"
	"github.com/praxislabs/compass/internal/domain/kpi"
	"github.com/praxislabs/compass/pkg/logger"
	"github.com/praxislabs/compass/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 15 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Select the upstream store: Postgres when configured, the seeded
	// in-memory store otherwise.
	st, closeStore, err := buildStore(ctx, cfg, loggerInstance)
	if err != nil {
		loggerInstance.Error(ctx, "failed to open store", logger.Error(err))
		return
	}
	defer closeStore()

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithStore(st),
		app.WithInsightGenerator(insight.New(cfg.InsightEndpoint, cfg.InsightAPIKey,
			insight.WithLogger(loggerInstance.Named("insight")))),
		app.WithHiddenIDs(cfg.HiddenIDs),
		app.WithRefreshInterval(time.Duration(cfg.RefreshMinutes)*time.Minute),
		app.WithCalculatorOptions(
			kpi.WithDefaultSessionsPerPerson(cfg.DefaultSessionsPerPerson),
			kpi.WithCompletionThreshold(cfg.CompletionThreshold),
		),
	)
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	// Start service metrics updater
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// buildStore opens the configured store and returns it with its cleanup.
func buildStore(ctx context.Context, cfg *config.Config, log logger.Logger) (store.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Info(ctx, "no database configured; using in-memory demo store")
		return store.NewDemoStore(), func() {}, nil
	}

	pg, err := store.NewPostgresStore(cfg.DatabaseURL, store.WithSchema(cfg.DatabaseSchema))
	if err != nil {
		return nil, nil, err
	}
	if err := pg.Ping(ctx); err != nil {
		_ = pg.Close()
		return nil, nil, err
	}
	if err := pg.InitSchema(ctx); err != nil {
		_ = pg.Close()
		return nil, nil, err
	}
	if err := pg.Seed(ctx); err != nil {
		log.Warn(ctx, "demo seed skipped", logger.Error(err))
	}
	log.Info(ctx, "connected to postgres", logger.String("schema", cfg.DatabaseSchema))
	return pg, func() { _ = pg.Close() }, nil
}

// startServiceMetricsUpdater periodically mirrors snapshot record counts
// into the record-count gauges.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
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

// updateServiceMetrics updates record-count gauges from service stats.
func updateServiceMetrics(svc *app.Service) {
	stats := svc.GetStats()
	for _, set := range []string{"people", "sessions", "scores", "surveys", "baselines", "configs"} {
		if n, ok := stats[set].(int); ok {
			metrics.UpdateRecordCount(set, n)
		}
	}
}
