package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"projecthub/internal/app"
	"projecthub/internal/config"
	"projecthub/internal/metrics"
	"projecthub/internal/middleware"
	"projecthub/internal/repository/postgres"
)

// Set at build time with -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 15 * time.Second

var (
	configFile string
	dropSchema bool
)

var rootCmd = &cobra.Command{
	Use:           "projecthub",
	Short:         "ProjectHub API - projects, tasks and statistics over HTTP",
	RunE:          runServer,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServer,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create (or with --drop, recreate) the database tables",
	RunE:  runSchema,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("projecthub %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file (optional, env vars override it)")
	schemaCmd.Flags().BoolVar(&dropSchema, "drop", false, "drop existing tables first (destroys all data)")

	rootCmd.AddCommand(serveCmd, schemaCmd, versionCmd)
}

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the process logger.
func setup() (*config.Config, *slog.Logger, func(), error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := config.NewLogger(cfg, os.Stdout)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setup logging: %w", err)
	}
	slog.SetDefault(logger)

	return cfg, logger, func() { _ = closer.Close() }, nil
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("server starting",
		"version", version,
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage", cfg.StorageDriver,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	server := application.Server(cfg, application.Handler(cfg, limiter))

	var metricsServer *metrics.Server
	if cfg.MetricsAddr != "" {
		metricsServer = metrics.NewServer(cfg.MetricsAddr, logger)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("api listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})

	if metricsServer != nil {
		g.Go(metricsServer.Start)
	}

	g.Go(func() error {
		limiter.Run(gctx.Done())
		return nil
	})

	// Shut everything down on signal or when any server fails
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		if err := server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("api shutdown: %w", err))
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("metrics shutdown: %w", err))
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}

func runSchema(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.StorageDriver != config.StorageDriverPostgres {
		return fmt.Errorf("schema command requires the postgres storage driver, got %q", cfg.StorageDriver)
	}

	ctx := cmd.Context()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		ApplicationName: "projecthub",
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if dropSchema {
		if cfg.Environment == "prod" {
			return errors.New("refusing to drop tables in prod")
		}
		if err := postgres.DropSchema(ctx, pool, tables, logger); err != nil {
			return err
		}
	}
	return postgres.EnsureSchema(ctx, pool, tables, logger)
}
