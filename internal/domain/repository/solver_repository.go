package repository

import (
	"context"

	"github.com/vrp-microservice/internal/domain"
)

// SolverRepository - access to the external optimization solver
type SolverRepository interface {
	// Solve posts a request to the solver and returns the decoded response.
	// A non-zero solver code is returned as an error.
	Solve(ctx context.Context, req *domain.SolverRequest) (*domain.SolverResponse, error)

	// Health reports whether the solver endpoint is reachable.
	Health(ctx context.Context) bool
}
