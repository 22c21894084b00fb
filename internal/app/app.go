package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"freight-matching-service/internal/adapters/repositories"
	"freight-matching-service/internal/api"
	"freight-matching-service/internal/config"
	"freight-matching-service/internal/platform/db"
	"freight-matching-service/internal/platform/logger"
	"freight-matching-service/internal/platform/metrics"
	"freight-matching-service/internal/ports"
	"freight-matching-service/internal/services"
)

// App holds the wired service.
type App struct {
	cfg    *config.Config
	log    logger.Logger
	db     *sql.DB
	Router *gin.Engine
}

// Engine bundles the matching and audit services built from one configuration.
type Engine struct {
	Processor *services.OrderProcessor
	Auditor   *services.FleetComplianceValidator
}

// ConfigureLogging applies the logging section to every logger created afterwards.
func ConfigureLogging(cfg config.LoggingConfig) {
	logger.Configure(logger.Options{Level: cfg.Level, Format: cfg.Format})
}

// NewEngine builds the processor and auditor from cfg.
func NewEngine(cfg *config.Config, rec ports.MatchRecorder) (Engine, error) {
	pairing, err := services.ParsePairingMode(cfg.Matching.Pairing)
	if err != nil {
		return Engine{}, fmt.Errorf("new engine: %w", err)
	}

	c := services.DefaultConstants()
	c.BaselineDailyLoss = cfg.Compliance.BaselineDailyLoss
	if err := c.Validate(); err != nil {
		return Engine{}, fmt.Errorf("new engine: %w", err)
	}

	return Engine{
		Processor: services.NewOrderProcessor(c,
			services.WithLogger(logger.New("matching")),
			services.WithRecorder(rec),
			services.WithPairing(pairing),
			services.WithWorkers(cfg.Matching.Workers),
			services.WithCallTimeout(cfg.Matching.CallTimeout),
		),
		Auditor: services.NewFleetComplianceValidator(c,
			services.WithComplianceLogger(logger.New("compliance")),
			services.WithComplianceRecorder(rec),
		),
	}, nil
}

// OpenSnapshots picks the snapshot source: Postgres when a URL is set, the
// JSON file otherwise. It returns a nil repository when neither is configured.
// The returned *sql.DB is nil unless Postgres was opened.
func OpenSnapshots(ctx context.Context, cfg config.DatabaseConfig) (ports.SnapshotRepository, *sql.DB, error) {
	switch {
	case cfg.URL != "":
		conn, err := db.Open(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewPostgresFleetRepository(conn), conn, nil
	case cfg.SnapshotFile != "":
		return repositories.NewJSONSnapshotSource(cfg.SnapshotFile), nil, nil
	default:
		return nil, nil, nil
	}
}

// New wires configuration, storage, metrics and the HTTP router.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.New("app")

	var (
		rec            ports.MatchRecorder = ports.NopRecorder{}
		metricsHandler http.Handler
	)
	if cfg.Metrics.Enabled {
		prom, err := metrics.NewPromRecorder()
		if err != nil {
			return nil, fmt.Errorf("app: metrics: %w", err)
		}
		rec = prom
		metricsHandler = promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{})
	}

	engine, err := NewEngine(cfg, rec)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	snapshots, conn, err := OpenSnapshots(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	if snapshots == nil {
		log.Warnf("no database url or snapshot file configured; GET /v1/compliance is disabled")
	}

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	deps := api.Deps{
		Processor:         engine.Processor,
		Auditor:           engine.Auditor,
		BaselineDailyLoss: cfg.Compliance.BaselineDailyLoss,
		RequestTimeout:    cfg.Server.WriteTimeout,
		MetricsPath:       cfg.Metrics.Path,
		MetricsHandler:    metricsHandler,
		Log:               logger.New("http"),
	}
	if snapshots != nil {
		deps.Snapshots = snapshots
	}

	return &App{cfg: cfg, log: log, db: conn, Router: api.NewRouter(deps)}, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.cfg.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: a.cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       a.cfg.Server.ReadTimeout,
		WriteTimeout:      a.cfg.Server.WriteTimeout,
		IdleTimeout:       a.cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("server listening addr=%s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("app: serve: %w", err)
	case <-ctx.Done():
	}

	a.log.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	return nil
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
