package health

import "context"

// DBPinger checks storage availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// GenerationChecker checks verse generation service availability.
type GenerationChecker interface {
	HealthCheck(ctx context.Context) error
}
