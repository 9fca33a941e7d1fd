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

type vehicleRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewVehicleRepository(db *DB) repository.VehicleRepository {
	return &vehicleRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (
			id, project_id, name, optimizer_id,
			start_lon, start_lat, end_lon, end_lat,
			capacity, skills, tw_start, tw_end,
			cost_fixed, cost_per_hour, cost_per_km,
			max_distance, max_travel_time, profile, breaks
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19
		)
	`

	var startLon, startLat, endLon, endLat *float64
	if v.Start != nil {
		startLon, startLat = &v.Start.Lon, &v.Start.Lat
	}
	if v.End != nil {
		endLon, endLat = &v.End.Lon, &v.End.Lat
	}

	var twStart, twEnd *int64
	if v.TimeWindow != nil {
		s, e := v.TimeWindow.Start(), v.TimeWindow.End()
		twStart, twEnd = &s, &e
	}

	breaksJSON, err := json.Marshal(v.Breaks)
	if err != nil {
		r.logger.Error("Failed to marshal vehicle breaks", zap.String("id", v.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	_, err = r.db.ExecContext(ctx, query,
		v.ID, v.ProjectID, v.Name, v.OptimizerID,
		startLon, startLat, endLon, endLat,
		pq.Array(v.Capacity), pq.Array(v.Skills), twStart, twEnd,
		v.CostFixed, v.CostPerHour, v.CostPerKm,
		v.MaxDistance, v.MaxTravelTime, v.Profile, breaksJSON,
	)
	if err != nil {
		r.logger.Error("Failed to create vehicle", zap.String("id", v.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	query := `
		SELECT
			id, project_id, name, optimizer_id,
			start_lon, start_lat, end_lon, end_lat,
			capacity, skills, tw_start, tw_end,
			cost_fixed, cost_per_hour, cost_per_km,
			max_distance, max_travel_time, profile, breaks,
			created_at, updated_at
		FROM vehicles
		WHERE id = $1
	`

	v, err := r.scanVehicle(r.db.QueryRowxContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrVehicleNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get vehicle by ID", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return v, nil
}

func (r *vehicleRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Vehicle, error) {
	query := `
		SELECT
			id, project_id, name, optimizer_id,
			start_lon, start_lat, end_lon, end_lat,
			capacity, skills, tw_start, tw_end,
			cost_fixed, cost_per_hour, cost_per_km,
			max_distance, max_travel_time, profile, breaks,
			created_at, updated_at
		FROM vehicles
		WHERE project_id = $1
		ORDER BY optimizer_id
	`

	rows, err := r.db.QueryxContext(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to list vehicles", zap.String("project_id", projectID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		v, err := r.scanVehicle(rows)
		if err != nil {
			r.logger.Error("Failed to scan vehicle", zap.Error(err))
			continue
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete vehicle", zap.String("id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.ErrVehicleNotFound
	}

	return nil
}

func (r *vehicleRepository) MaxOptimizerID(ctx context.Context, projectID uuid.UUID) (int64, error) {
	query := `SELECT COALESCE(MAX(optimizer_id), 0) FROM vehicles WHERE project_id = $1`

	var max int64
	if err := r.db.QueryRowContext(ctx, query, projectID).Scan(&max); err != nil {
		r.logger.Error("Failed to get max vehicle optimizer id",
			zap.String("project_id", projectID.String()), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return max, nil
}

// rowScanner covers both QueryRowx and Rows from sqlx.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *vehicleRepository) scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	var v domain.Vehicle
	var startLon, startLat, endLon, endLat *float64
	var twStart, twEnd *int64
	var capacity, skills pq.Int64Array
	var breaksJSON []byte

	err := row.Scan(
		&v.ID, &v.ProjectID, &v.Name, &v.OptimizerID,
		&startLon, &startLat, &endLon, &endLat,
		&capacity, &skills, &twStart, &twEnd,
		&v.CostFixed, &v.CostPerHour, &v.CostPerKm,
		&v.MaxDistance, &v.MaxTravelTime, &v.Profile, &breaksJSON,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startLon != nil && startLat != nil {
		v.Start = &domain.Coordinate{Lon: *startLon, Lat: *startLat}
	}
	if endLon != nil && endLat != nil {
		v.End = &domain.Coordinate{Lon: *endLon, Lat: *endLat}
	}
	if twStart != nil && twEnd != nil {
		tw := domain.TimeWindow{*twStart, *twEnd}
		v.TimeWindow = &tw
	}
	v.Capacity = []int64(capacity)
	v.Skills = []int64(skills)

	if len(breaksJSON) > 0 {
		if err := json.Unmarshal(breaksJSON, &v.Breaks); err != nil {
			r.logger.Warn("Failed to unmarshal vehicle breaks",
				zap.String("id", v.ID.String()), zap.Error(err))
		}
	}

	return &v, nil
}
