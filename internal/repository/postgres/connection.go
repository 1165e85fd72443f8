package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"projecthub/internal/domain"
	"projecthub/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Prefix   string
	Projects string
	Tasks    string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Prefix:   prefix,
		Projects: fmt.Sprintf("%sprojects", prefix),
		Tasks:    fmt.Sprintf("%stasks", prefix),
	}
}

// PoolOptions tunes the connection pool. Zero values keep pgxpool defaults.
type PoolOptions struct {
	MaxConns        int32
	MinConns        int32
	ApplicationName string
}

// pgBouncerPort is where Supabase-style transaction poolers listen.
const pgBouncerPort = 6543

// CreateConnectionPool opens a pgx pool and pings it. A failed ping is
// reported as domain.ErrStorageUnavailable.
//
// Behind a transaction-mode pooler prepared statements cannot be reused,
// so unless the URL picks a mode the pool switches to
// QueryExecModeCacheDescribe. JSONB and NUMERIC parameters still use the
// extended protocol that way.
//
// Table prefixes are formatted into the SQL text, so every prefix caches
// its own statement descriptions.
func CreateConnectionPool(ctx context.Context, databaseURL string, opts PoolOptions) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	if opts.MaxConns > 0 {
		poolCfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 && opts.MinConns <= poolCfg.MaxConns {
		poolCfg.MinConns = opts.MinConns
	}
	if opts.ApplicationName != "" {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = opts.ApplicationName
	}

	conn := poolCfg.ConnConfig
	if conn.Port == pgBouncerPort && conn.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		conn.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("pooler port detected, caching statement descriptions only", "port", conn.Port)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping database: %v", domain.ErrStorageUnavailable, err)
	}

	return pool, nil
}

// GetExecutor returns the transaction ExecTx stored in ctx, falling back
// to the pool for work outside a transaction.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}
