package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vrp-microservice/internal/domain"
)

// VehicleRepository - persistence for fleet vehicles
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)

	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Vehicle, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// MaxOptimizerID returns the highest solver id already allocated in the
	// project, 0 when the project has no vehicles.
	MaxOptimizerID(ctx context.Context, projectID uuid.UUID) (int64, error)
}
