package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage drivers accepted by STORAGE_DRIVER
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Port          string `yaml:"port"`
	Environment   string `yaml:"environment"`
	DatabaseURL   string `yaml:"database_url"`
	StorageDriver string `yaml:"storage_driver"`
	TablePrefix   string `yaml:"table_prefix"`
	CORSOrigins   string `yaml:"cors_origins"`
	AutoSchema    bool   `yaml:"auto_schema"`

	// Connection pool
	DBMaxConns int32 `yaml:"db_max_conns"`
	DBMinConns int32 `yaml:"db_min_conns"`

	// Observability
	MetricsAddr string `yaml:"metrics_addr"` // empty disables the metrics server
	LogLevel    string `yaml:"log_level"`
	LogDir      string `yaml:"log_dir"` // empty disables file logging
	LogMaxFiles int    `yaml:"log_max_files"`

	// Per-client rate limiting; RateLimitRPS <= 0 disables it
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

// Load builds the configuration. Values come from defaults, then the
// optional YAML file at path, then environment variables, which win.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := overrideFromEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.TablePrefix == "" {
		cfg.TablePrefix = getTablePrefix(cfg.Environment)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = getDefaultLogLevel(cfg.Environment)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Port:           "8080",
		Environment:    "dev",
		StorageDriver:  StorageDriverPostgres,
		CORSOrigins:    "*",
		AutoSchema:     true,
		DBMaxConns:     10,
		DBMinConns:     2,
		MetricsAddr:    ":9090",
		LogMaxFiles:    10,
		RateLimitRPS:   50,
		RateLimitBurst: 100,
	}
}

func overrideFromEnv(cfg *Config) error {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.StorageDriver = getEnv("STORAGE_DRIVER", cfg.StorageDriver)
	cfg.TablePrefix = getEnv("TABLE_PREFIX", cfg.TablePrefix)
	cfg.CORSOrigins = getEnv("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.MetricsAddr = getEnv("METRICS_ADDR", cfg.MetricsAddr)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogDir = getEnv("LOG_DIR", cfg.LogDir)

	var err error
	if cfg.AutoSchema, err = getEnvBool("AUTO_SCHEMA", cfg.AutoSchema); err != nil {
		return err
	}
	if cfg.DBMaxConns, err = getEnvInt32("DB_MAX_CONNS", cfg.DBMaxConns); err != nil {
		return err
	}
	if cfg.DBMinConns, err = getEnvInt32("DB_MIN_CONNS", cfg.DBMinConns); err != nil {
		return err
	}
	if cfg.LogMaxFiles, err = getEnvInt("LOG_MAX_FILES", cfg.LogMaxFiles); err != nil {
		return err
	}
	if cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", cfg.RateLimitBurst); err != nil {
		return err
	}
	if cfg.RateLimitRPS, err = getEnvFloat("RATE_LIMIT_RPS", cfg.RateLimitRPS); err != nil {
		return err
	}
	return nil
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when storage driver is %q", StorageDriverPostgres)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q (want %q or %q)", c.StorageDriver, StorageDriverPostgres, StorageDriverMemory)
	}

	if c.DBMaxConns < 1 {
		return fmt.Errorf("db_max_conns must be at least 1")
	}
	if c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("db_min_conns must be between 0 and db_max_conns")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		return fmt.Errorf("rate_limit_burst must be at least 1 when rate limiting is enabled")
	}
	return nil
}

// AllowedOrigins splits CORSOrigins on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// getDefaultLogLevel returns the default log level based on environment
func getDefaultLogLevel(env string) string {
	if env == "dev" {
		return "debug"
	}
	return "info"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getEnvInt32(key string, defaultValue int32) (int32, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return int32(v), nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
