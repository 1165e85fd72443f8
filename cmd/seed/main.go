package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"projecthub/internal/app"
	"projecthub/internal/config"
	"projecthub/internal/repository/postgres"
	"projecthub/internal/seed"
)

func main() {
	// Parse command-line flags
	configFile := flag.String("config", "", "YAML config file (optional)")
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	clearData := flag.Bool("clear-data", false, "Delete all projects and tasks (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}
	if cfg.StorageDriver != config.StorageDriverPostgres {
		log.Fatalf("Seeding requires STORAGE_DRIVER=postgres (got %q)", cfg.StorageDriver)
	}

	logger, closer, err := config.NewLogger(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer closer.Close()

	switch {
	case *clearData:
		log.Printf("Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	case *schemaOnly:
		log.Printf("Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	default:
		log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	ctx := context.Background()

	// Schema is handled explicitly below
	cfg.AutoSchema = false
	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer application.Close()

	pool, tables := application.Pool, application.Tables

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := postgres.DropSchema(ctx, pool, tables, logger); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	log.Println("Ensuring database schema is up to date...")
	if err := postgres.EnsureSchema(ctx, pool, tables, logger); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		if err := postgres.ClearData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("Data cleared successfully")
		return
	}

	seeder := seed.NewSeeder(application.Services.Projects, application.Services.Tasks, logger)
	result, err := seeder.Run(ctx, seed.DemoData())
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeding complete: %d projects, %d tasks created, %d projects skipped",
		result.Projects, result.Tasks, result.Skipped)
}
