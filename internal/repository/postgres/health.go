package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthChecker verifies the database is reachable.
type HealthChecker struct {
	pool *pgxpool.Pool
}

// NewHealthChecker creates a new PostgreSQL health checker.
func NewHealthChecker(pool *pgxpool.Pool) *HealthChecker {
	return &HealthChecker{pool: pool}
}

// Name returns the checker name.
func (c *HealthChecker) Name() string {
	return "postgres"
}

// Check acquires a connection and runs a trivial query.
func (c *HealthChecker) Check(ctx context.Context) error {
	if c.pool == nil {
		return fmt.Errorf("database not initialized")
	}
	var one int
	if err := c.pool.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}
