// Package app wires storage, services and the HTTP stack from a Config.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"

	"projecthub/internal/config"
	"projecthub/internal/domain/repositories"
	"projecthub/internal/domain/services"
	"projecthub/internal/handler"
	"projecthub/internal/httputil"
	"projecthub/internal/metrics"
	"projecthub/internal/middleware"
	"projecthub/internal/repository/memory"
	"projecthub/internal/repository/postgres"
	"projecthub/internal/service"
)

// App holds the assembled services and the resources backing them.
type App struct {
	Services handler.Services
	Pool     *pgxpool.Pool // nil for the memory driver
	Tables   *postgres.TableNames
	logger   *slog.Logger
}

// New connects storage for cfg.StorageDriver and builds the service layer.
// With the postgres driver the schema is created when cfg.AutoSchema is set.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		return newMemory(logger), nil
	case config.StorageDriverPostgres:
		return newPostgres(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func newMemory(logger *slog.Logger) *App {
	store := memory.NewStore()
	txManager := memory.NewTransactionManager(store)

	logger.Warn("using in-memory storage, data is lost on restart")

	return &App{
		Services: buildServices(
			memory.NewProjectRepository(store),
			memory.NewTaskRepository(store),
			memory.NewStatisticsRepository(store),
			txManager,
			txManager,
			logger,
			memory.HealthChecker{},
		),
		logger: logger,
	}
}

func newPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		ApplicationName: "projecthub",
	})
	if err != nil {
		return nil, err
	}

	logger.Info("database connected",
		"max_conns", cfg.DBMaxConns,
		"min_conns", cfg.DBMinConns,
	)

	if err := metrics.RegisterPoolStats(pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("register pool metrics: %w", err)
	}

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if cfg.AutoSchema {
		if err := postgres.EnsureSchema(ctx, pool, tables, logger); err != nil {
			pool.Close()
			return nil, err
		}
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}

	return &App{
		Services: buildServices(
			postgres.NewProjectRepository(repoConfig),
			postgres.NewTaskRepository(repoConfig),
			postgres.NewStatisticsRepository(repoConfig),
			postgres.NewTransactionManager(pool, logger),
			postgres.NewSnapshotTransactionManager(pool, logger),
			logger,
			postgres.NewHealthChecker(pool),
		),
		Pool:   pool,
		Tables: tables,
		logger: logger,
	}, nil
}

func buildServices(
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	statsRepo repositories.StatisticsRepository,
	txManager repositories.TransactionManager,
	snapshotManager repositories.TransactionManager,
	logger *slog.Logger,
	checkers ...services.HealthChecker,
) handler.Services {
	return handler.Services{
		Projects:   service.NewProjectService(projectRepo, taskRepo, txManager, logger),
		Tasks:      service.NewTaskService(projectRepo, taskRepo, txManager, logger),
		Statistics: service.NewStatisticsService(statsRepo, snapshotManager, logger),
		Health:     checkers,
	}
}

// Handler builds the routed API wrapped in the middleware chain.
// Order: CORS → Logging → Recovery → RateLimit → Metrics → Routes.
// Recovery sits inside Logging so a recovered panic is logged as a 500
// under its request id.
func (a *App) Handler(cfg *config.Config, limiter *middleware.RateLimiter) http.Handler {
	var h http.Handler = handler.NewRouter(a.Services, a.logger)

	// Apply middleware in reverse order (they wrap each other)
	h = middleware.Prometheus(h)
	if limiter != nil {
		h = middleware.RateLimitByIP(limiter)(h)
	}
	h = middleware.Recovery(a.logger)(h)
	h = middleware.RequestLogger(a.logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", httputil.RequestIDHeader},
		ExposedHeaders: []string{httputil.RequestIDHeader},
	})
	return corsHandler.Handler(h)
}

// Server returns the API http.Server for handler h.
func (a *App) Server(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}
