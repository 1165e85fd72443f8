package services

import "context"

// HealthChecker checks a dependency the API can't serve without.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}
