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

type shipmentRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewShipmentRepository(db *DB) repository.ShipmentRepository {
	return &shipmentRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *shipmentRepository) Create(ctx context.Context, s *domain.Shipment) error {
	query := `
		INSERT INTO shipments (
			id, project_id, name, optimizer_id,
			amount, skills, priority,
			pickup_lon, pickup_lat, pickup_setup, pickup_service, pickup_time_windows,
			delivery_lon, delivery_lat, delivery_setup, delivery_service, delivery_time_windows
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17
		)
	`

	var pickupLon, pickupLat, deliveryLon, deliveryLat *float64
	if s.PickupLocation != nil {
		pickupLon, pickupLat = &s.PickupLocation.Lon, &s.PickupLocation.Lat
	}
	if s.DeliveryLocation != nil {
		deliveryLon, deliveryLat = &s.DeliveryLocation.Lon, &s.DeliveryLocation.Lat
	}

	pickupWindowsJSON, err := json.Marshal(s.PickupTimeWindows)
	if err != nil {
		r.logger.Error("Failed to marshal pickup time windows", zap.String("id", s.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}
	deliveryWindowsJSON, err := json.Marshal(s.DeliveryTimeWindows)
	if err != nil {
		r.logger.Error("Failed to marshal delivery time windows", zap.String("id", s.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	_, err = r.db.ExecContext(ctx, query,
		s.ID, s.ProjectID, s.Name, s.OptimizerID,
		pq.Array(s.Amount), pq.Array(s.Skills), s.Priority,
		pickupLon, pickupLat, s.PickupSetup, s.PickupService, pickupWindowsJSON,
		deliveryLon, deliveryLat, s.DeliverySetup, s.DeliveryService, deliveryWindowsJSON,
	)
	if err != nil {
		r.logger.Error("Failed to create shipment", zap.String("id", s.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *shipmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shipment, error) {
	query := shipmentSelectColumns + ` WHERE id = $1`

	s, err := r.scanShipment(r.db.QueryRowxContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrShipmentNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get shipment by ID", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return s, nil
}

func (r *shipmentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Shipment, error) {
	query := shipmentSelectColumns + ` WHERE project_id = $1 ORDER BY optimizer_id`

	rows, err := r.db.QueryxContext(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to list shipments", zap.String("project_id", projectID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var shipments []*domain.Shipment
	for rows.Next() {
		s, err := r.scanShipment(rows)
		if err != nil {
			r.logger.Error("Failed to scan shipment", zap.Error(err))
			continue
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}

func (r *shipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete shipment", zap.String("id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.ErrShipmentNotFound
	}

	return nil
}

func (r *shipmentRepository) MaxOptimizerID(ctx context.Context, projectID uuid.UUID) (int64, error) {
	query := `SELECT COALESCE(MAX(optimizer_id), 0) FROM shipments WHERE project_id = $1`

	var max int64
	if err := r.db.QueryRowContext(ctx, query, projectID).Scan(&max); err != nil {
		r.logger.Error("Failed to get max shipment optimizer id",
			zap.String("project_id", projectID.String()), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return max, nil
}

const shipmentSelectColumns = `
	SELECT
		id, project_id, name, optimizer_id,
		amount, skills, priority,
		pickup_lon, pickup_lat, pickup_setup, pickup_service, pickup_time_windows,
		delivery_lon, delivery_lat, delivery_setup, delivery_service, delivery_time_windows,
		created_at, updated_at
	FROM shipments
`

func (r *shipmentRepository) scanShipment(row rowScanner) (*domain.Shipment, error) {
	var s domain.Shipment
	var pickupLon, pickupLat, deliveryLon, deliveryLat *float64
	var amount, skills pq.Int64Array
	var pickupWindowsJSON, deliveryWindowsJSON []byte

	err := row.Scan(
		&s.ID, &s.ProjectID, &s.Name, &s.OptimizerID,
		&amount, &skills, &s.Priority,
		&pickupLon, &pickupLat, &s.PickupSetup, &s.PickupService, &pickupWindowsJSON,
		&deliveryLon, &deliveryLat, &s.DeliverySetup, &s.DeliveryService, &deliveryWindowsJSON,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if pickupLon != nil && pickupLat != nil {
		s.PickupLocation = &domain.Coordinate{Lon: *pickupLon, Lat: *pickupLat}
	}
	if deliveryLon != nil && deliveryLat != nil {
		s.DeliveryLocation = &domain.Coordinate{Lon: *deliveryLon, Lat: *deliveryLat}
	}
	s.Amount = []int64(amount)
	s.Skills = []int64(skills)

	if len(pickupWindowsJSON) > 0 {
		if err := json.Unmarshal(pickupWindowsJSON, &s.PickupTimeWindows); err != nil {
			r.logger.Warn("Failed to unmarshal pickup time windows",
				zap.String("id", s.ID.String()), zap.Error(err))
		}
	}
	if len(deliveryWindowsJSON) > 0 {
		if err := json.Unmarshal(deliveryWindowsJSON, &s.DeliveryTimeWindows); err != nil {
			r.logger.Warn("Failed to unmarshal delivery time windows",
				zap.String("id", s.ID.String()), zap.Error(err))
		}
	}

	return &s, nil
}
