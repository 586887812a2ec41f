package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/votabien/votabien-engine/pkg/config"
	"github.com/votabien/votabien-engine/pkg/database"
	"github.com/votabien/votabien-engine/pkg/handlers"
	"github.com/votabien/votabien-engine/pkg/logging"
	"github.com/votabien/votabien-engine/pkg/metrics"
	"github.com/votabien/votabien-engine/pkg/middleware"
	"github.com/votabien/votabien-engine/pkg/repositories"
	"github.com/votabien/votabien-engine/pkg/retry"
	"github.com/votabien/votabien-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "votabien-engine: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(Version)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if _, err := maxprocs.Set(maxprocs.Logger(logger.Sugar().Infof)); err != nil {
		logger.Warn("Failed to set GOMAXPROCS", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("version", cfg.Version),
		zap.String("api_prefix", cfg.APIPrefix),
		zap.Strings("cors_origins", cfg.CORSOriginsList()),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())),
		zap.Bool("rate_limit_disabled", cfg.RateLimit.Disabled))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)

	// The database may still be starting when the service comes up.
	waitForDB := func(attempt int, err error, wait time.Duration) {
		logger.Warn("Database not ready, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.String("error", logging.SanitizeError(err)))
	}

	db, err := retry.DoWithResult(ctx, retry.DefaultConfig(), waitForDB, func(ctx context.Context) (*database.DB, error) {
		return database.NewConnection(ctx, &database.Config{
			URL:            cfg.Database.ConnectionString(),
			MaxConnections: cfg.Database.MaxConnections,
			Tracer:         metrics.NewQueryTracer(m),
		})
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	prometheus.MustRegister(metrics.NewPoolCollector(db.Pool))

	if cfg.RunMigrations {
		if err := database.MigrateURL(cfg.Database.ConnectionString(), logger); err != nil {
			return err
		}
	}

	router := newRouter(cfg, db, m, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting votabien-engine", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// newRouter wires repositories, services and handlers onto one chi router.
func newRouter(cfg *config.Config, db *database.DB, m *metrics.Metrics, logger *zap.Logger) chi.Router {
	memberRepo := repositories.NewMemberRepository()
	membershipRepo := repositories.NewMembershipRepository()
	partyRepo := repositories.NewPartyRepository()
	attendanceRepo := repositories.NewAttendanceRepository()
	sessionRepo := repositories.NewSessionRepository()
	territoryRepo := repositories.NewTerritoryRepository()
	lawRepo := repositories.NewLawRepository()

	memberService := services.NewMemberService(memberRepo, membershipRepo, attendanceRepo, lawRepo, nil, logger)
	partyService := services.NewPartyService(partyRepo, membershipRepo, nil, logger)
	sessionService := services.NewSessionService(sessionRepo, attendanceRepo, memberRepo, logger)
	territoryService := services.NewTerritoryService(territoryRepo, memberRepo, logger)
	lawService := services.NewLawService(lawRepo, memberRepo, membershipRepo, logger)

	healthHandler := handlers.NewHealthHandler(cfg, logger)
	resourceHandlers := []interface{ RegisterRoutes(chi.Router) }{
		handlers.NewMemberHandler(memberService, logger),
		handlers.NewPartyHandler(partyService, logger),
		handlers.NewSessionHandler(sessionService, logger),
		handlers.NewTerritoryHandler(territoryService, logger),
		handlers.NewLawHandler(lawService, logger),
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Instrument(m))
	r.Use(middleware.CORS(cfg.CORSOriginsList()))

	healthHandler.RegisterRoutes(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	api := func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit))
		healthHandler.RegisterAPIRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(database.WithScope(db, logger))
			for _, h := range resourceHandlers {
				h.RegisterRoutes(r)
			}
		})
	}
	if cfg.APIPrefix == "" {
		r.Group(api)
	} else {
		r.Route(cfg.APIPrefix, api)
	}

	return r
}
