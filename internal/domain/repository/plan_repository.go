package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vrp-microservice/internal/domain"
)

// PlanRepository - persistence for optimization runs and their routes
type PlanRepository interface {
	CreateRun(ctx context.Context, run *domain.PlanRun) error

	GetRun(ctx context.Context, id uuid.UUID) (*domain.PlanRun, error)

	ListRuns(ctx context.Context, projectID uuid.UUID, limit int) ([]*domain.PlanRun, error)

	CreateRouteSummary(ctx context.Context, summary *domain.RouteSummary) error

	CreateRouteSteps(ctx context.Context, steps []*domain.RouteStep) error

	CreateUnassigned(ctx context.Context, tasks []*domain.UnassignedTask) error

	ListRouteSummaries(ctx context.Context, planRunID uuid.UUID) ([]*domain.RouteSummary, error)
}
