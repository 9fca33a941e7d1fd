package repository

import (
	"context"
	"time"

	"github.com/vrp-microservice/internal/domain"
)

// SolutionCacheRepository caches solver responses keyed by request hash, so an
// identical request within the TTL skips the solver round trip.
type SolutionCacheRepository interface {
	GetSolution(ctx context.Context, key string) (*domain.SolverResponse, error)

	SetSolution(ctx context.Context, key string, resp *domain.SolverResponse, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
}
