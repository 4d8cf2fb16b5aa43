package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all providers are reachable.
	Healthy Status = "ok"
	// Degraded indicates at least one provider is failing. The service
	// itself keeps serving: local search needs no provider at all.
	Degraded Status = "degraded"
)

// CheckResult represents an individual provider health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results per provider.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates provider health checks.
type Service struct {
	checkers map[string]ProviderChecker
}

// New creates a Service over named provider checkers.
func New(checkers map[string]ProviderChecker) *Service {
	return &Service{checkers: checkers}
}

// Check probes every registered provider.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.checkers))

	for name, checker := range s.checkers {
		if err := checker.HealthCheck(ctx); err != nil {
			checks[name] = CheckError
		} else {
			checks[name] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
