package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vrp-microservice/internal/domain"
)

// ShipmentRepository - persistence for pickup/delivery pairs
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *domain.Shipment) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Shipment, error)

	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Shipment, error)

	Delete(ctx context.Context, id uuid.UUID) error

	MaxOptimizerID(ctx context.Context, projectID uuid.UUID) (int64, error)
}
