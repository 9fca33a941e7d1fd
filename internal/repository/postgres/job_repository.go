package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/vrp-microservice/internal/domain"
	"github.com/vrp-microservice/internal/domain/repository"
	"github.com/vrp-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type jobRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewJobRepository(db *DB) repository.JobRepository {
	return &jobRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const jobInsertQuery = `
	INSERT INTO jobs (
		id, project_id, name, optimizer_id,
		lon, lat, setup_time, service_time,
		delivery, pickup, skills, priority, time_windows
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
	)
`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	args, err := r.insertArgs(job)
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, jobInsertQuery, args...); err != nil {
		r.logger.Error("Failed to create job", zap.String("id", job.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *jobRepository) CreateBatch(ctx context.Context, jobs []*domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin batch transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	for _, job := range jobs {
		args, err := r.insertArgs(job)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, jobInsertQuery, args...); err != nil {
			r.logger.Error("Failed to insert job in batch",
				zap.String("id", job.ID.String()), zap.Error(err))
			return errors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit job batch", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	query := jobSelectColumns + ` WHERE id = $1`

	job, err := r.scanJob(r.db.QueryRowxContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrJobNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get job by ID", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return job, nil
}

func (r *jobRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Job, error) {
	query := jobSelectColumns + ` WHERE project_id = $1 ORDER BY optimizer_id`

	rows, err := r.db.QueryxContext(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to list jobs", zap.String("project_id", projectID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		job, err := r.scanJob(rows)
		if err != nil {
			r.logger.Error("Failed to scan job", zap.Error(err))
			continue
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

func (r *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete job", zap.String("id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.ErrJobNotFound
	}

	return nil
}

func (r *jobRepository) MaxOptimizerID(ctx context.Context, projectID uuid.UUID) (int64, error) {
	query := `SELECT COALESCE(MAX(optimizer_id), 0) FROM jobs WHERE project_id = $1`

	var max int64
	if err := r.db.QueryRowContext(ctx, query, projectID).Scan(&max); err != nil {
		r.logger.Error("Failed to get max job optimizer id",
			zap.String("project_id", projectID.String()), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return max, nil
}

const jobSelectColumns = `
	SELECT
		id, project_id, name, optimizer_id,
		lon, lat, setup_time, service_time,
		delivery, pickup, skills, priority, time_windows,
		created_at, updated_at
	FROM jobs
`

func (r *jobRepository) insertArgs(job *domain.Job) ([]interface{}, error) {
	var lon, lat *float64
	if job.Location != nil {
		lon, lat = &job.Location.Lon, &job.Location.Lat
	}

	windowsJSON, err := json.Marshal(job.TimeWindows)
	if err != nil {
		r.logger.Error("Failed to marshal job time windows",
			zap.String("id", job.ID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return []interface{}{
		job.ID, job.ProjectID, job.Name, job.OptimizerID,
		lon, lat, job.SetupTime, job.ServiceTime,
		pq.Array(job.Delivery), pq.Array(job.Pickup), pq.Array(job.Skills),
		job.Priority, windowsJSON,
	}, nil
}

func (r *jobRepository) scanJob(row rowScanner) (*domain.Job, error) {
	var job domain.Job
	var lon, lat *float64
	var delivery, pickup, skills pq.Int64Array
	var windowsJSON []byte

	err := row.Scan(
		&job.ID, &job.ProjectID, &job.Name, &job.OptimizerID,
		&lon, &lat, &job.SetupTime, &job.ServiceTime,
		&delivery, &pickup, &skills, &job.Priority, &windowsJSON,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lon != nil && lat != nil {
		job.Location = &domain.Coordinate{Lon: *lon, Lat: *lat}
	}
	job.Delivery = []int64(delivery)
	job.Pickup = []int64(pickup)
	job.Skills = []int64(skills)

	if len(windowsJSON) > 0 {
		if err := json.Unmarshal(windowsJSON, &job.TimeWindows); err != nil {
			r.logger.Warn("Failed to unmarshal job time windows",
				zap.String("id", job.ID.String()), zap.Error(err))
		}
	}

	return &job, nil
}
