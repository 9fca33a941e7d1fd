package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/vrp-microservice/internal/domain"
	"github.com/vrp-microservice/internal/domain/repository"
	"github.com/vrp-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type planRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPlanRepository(db *DB) repository.PlanRepository {
	return &planRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *planRepository) CreateRun(ctx context.Context, run *domain.PlanRun) error {
	query := `
		INSERT INTO plan_runs (
			id, project_id, status, solver_code, error_message,
			total_cost, total_routes, total_unassigned,
			total_distance, total_duration, total_waiting, total_service, total_setup,
			vehicle_count, job_count, shipment_count,
			computing_time_ms, computing_time_sec, currency_code
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.ProjectID, run.Status, run.SolverCode, run.ErrorMessage,
		run.TotalCost, run.TotalRoutes, run.TotalUnassigned,
		run.TotalDistance, run.TotalDuration, run.TotalWaiting, run.TotalService, run.TotalSetup,
		run.VehicleCount, run.JobCount, run.ShipmentCount,
		run.ComputingTimeMS, run.ComputingTimeSec, run.CurrencyCode,
	)
	if err != nil {
		r.logger.Error("Failed to create plan run", zap.String("id", run.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *planRepository) GetRun(ctx context.Context, id uuid.UUID) (*domain.PlanRun, error) {
	query := planRunSelectColumns + ` WHERE id = $1`

	run, err := r.scanRun(r.db.QueryRowxContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrPlanRunNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get plan run", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return run, nil
}

func (r *planRepository) ListRuns(ctx context.Context, projectID uuid.UUID, limit int) ([]*domain.PlanRun, error) {
	query := planRunSelectColumns + ` WHERE project_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.QueryxContext(ctx, query, projectID, limit)
	if err != nil {
		r.logger.Error("Failed to list plan runs", zap.String("project_id", projectID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var runs []*domain.PlanRun
	for rows.Next() {
		run, err := r.scanRun(rows)
		if err != nil {
			r.logger.Error("Failed to scan plan run", zap.Error(err))
			continue
		}
		runs = append(runs, run)
	}

	return runs, nil
}

func (r *planRepository) CreateRouteSummary(ctx context.Context, summary *domain.RouteSummary) error {
	query := `
		INSERT INTO route_summaries (
			id, plan_run_id, vehicle_id,
			cost, distance, duration, waiting_time, service_time, setup_time, priority,
			deliveries, pickups, geometry
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		summary.ID, summary.PlanRunID, summary.VehicleID,
		summary.Cost, summary.Distance, summary.Duration,
		summary.WaitingTime, summary.ServiceTime, summary.SetupTime, summary.Priority,
		pq.Array(summary.Deliveries), pq.Array(summary.Pickups), summary.Geometry,
	)
	if err != nil {
		r.logger.Error("Failed to create route summary",
			zap.String("plan_run_id", summary.PlanRunID.String()),
			zap.Int64("vehicle_id", summary.VehicleID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *planRepository) CreateRouteSteps(ctx context.Context, steps []*domain.RouteStep) error {
	if len(steps) == 0 {
		return nil
	}

	query := `
		INSERT INTO route_steps (
			id, route_summary_id, vehicle_id, step_type, step_order, job_id,
			lon, lat, arrival_time, setup_time, service_time, waiting_time,
			distance, duration, load, description
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin steps transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	for _, step := range steps {
		_, err := tx.ExecContext(ctx, query,
			step.ID, step.RouteSummaryID, step.VehicleID,
			step.StepType, step.StepOrder, step.JobID,
			step.Lon, step.Lat, step.ArrivalTime,
			step.SetupTime, step.ServiceTime, step.WaitingTime,
			step.Distance, step.Duration, pq.Array(step.Load), step.Description,
		)
		if err != nil {
			r.logger.Error("Failed to insert route step",
				zap.String("route_summary_id", step.RouteSummaryID.String()),
				zap.Int("step_order", step.StepOrder),
				zap.Error(err))
			return errors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit route steps", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *planRepository) CreateUnassigned(ctx context.Context, tasks []*domain.UnassignedTask) error {
	if len(tasks) == 0 {
		return nil
	}

	query := `
		INSERT INTO unassigned_tasks (
			id, plan_run_id, optimizer_id, task_type, lon, lat, description
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin unassigned transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	for _, task := range tasks {
		_, err := tx.ExecContext(ctx, query,
			task.ID, task.PlanRunID, task.OptimizerID,
			task.TaskType, task.Lon, task.Lat, task.Description,
		)
		if err != nil {
			r.logger.Error("Failed to insert unassigned task",
				zap.String("plan_run_id", task.PlanRunID.String()),
				zap.Int64("optimizer_id", task.OptimizerID),
				zap.Error(err))
			return errors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit unassigned tasks", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *planRepository) ListRouteSummaries(ctx context.Context, planRunID uuid.UUID) ([]*domain.RouteSummary, error) {
	query := `
		SELECT
			id, plan_run_id, vehicle_id,
			cost, distance, duration, waiting_time, service_time, setup_time, priority,
			deliveries, pickups, geometry
		FROM route_summaries
		WHERE plan_run_id = $1
		ORDER BY vehicle_id
	`

	rows, err := r.db.QueryxContext(ctx, query, planRunID)
	if err != nil {
		r.logger.Error("Failed to list route summaries",
			zap.String("plan_run_id", planRunID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var summaries []*domain.RouteSummary
	for rows.Next() {
		var s domain.RouteSummary
		var deliveries, pickups pq.Int64Array

		err := rows.Scan(
			&s.ID, &s.PlanRunID, &s.VehicleID,
			&s.Cost, &s.Distance, &s.Duration,
			&s.WaitingTime, &s.ServiceTime, &s.SetupTime, &s.Priority,
			&deliveries, &pickups, &s.Geometry,
		)
		if err != nil {
			r.logger.Error("Failed to scan route summary", zap.Error(err))
			continue
		}

		s.Deliveries = []int64(deliveries)
		s.Pickups = []int64(pickups)
		summaries = append(summaries, &s)
	}

	return summaries, nil
}

const planRunSelectColumns = `
	SELECT
		id, project_id, status, solver_code, error_message,
		total_cost, total_routes, total_unassigned,
		total_distance, total_duration, total_waiting, total_service, total_setup,
		vehicle_count, job_count, shipment_count,
		computing_time_ms, computing_time_sec, currency_code, created_at
	FROM plan_runs
`

func (r *planRepository) scanRun(row rowScanner) (*domain.PlanRun, error) {
	var run domain.PlanRun
	err := row.Scan(
		&run.ID, &run.ProjectID, &run.Status, &run.SolverCode, &run.ErrorMessage,
		&run.TotalCost, &run.TotalRoutes, &run.TotalUnassigned,
		&run.TotalDistance, &run.TotalDuration, &run.TotalWaiting, &run.TotalService, &run.TotalSetup,
		&run.VehicleCount, &run.JobCount, &run.ShipmentCount,
		&run.ComputingTimeMS, &run.ComputingTimeSec, &run.CurrencyCode, &run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
