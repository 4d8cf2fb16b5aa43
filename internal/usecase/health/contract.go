package health

import "context"

// ProviderChecker checks an external catalog provider's availability.
type ProviderChecker interface {
	HealthCheck(ctx context.Context) error
}
