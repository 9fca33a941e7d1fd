package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vrp-microservice/internal/domain"
)

// JobRepository - persistence for single-stop tasks
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error

	// CreateBatch inserts pre-validated jobs in one transaction.
	CreateBatch(ctx context.Context, jobs []*domain.Job) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)

	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Job, error)

	Delete(ctx context.Context, id uuid.UUID) error

	MaxOptimizerID(ctx context.Context, projectID uuid.UUID) (int64, error)
}
