package domain

import (
	"time"

	"github.com/google/uuid"
)

// Shipment is a paired pickup and delivery that must ride on the same vehicle.
type Shipment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ProjectID   uuid.UUID `json:"project_id" db:"project_id"`
	Name        string    `json:"name" db:"name"`
	OptimizerID int64     `json:"optimizer_id" db:"optimizer_id"`

	Amount   []int64 `json:"amount,omitempty"`
	Skills   []int64 `json:"skills,omitempty"`
	Priority *int64  `json:"priority,omitempty" db:"priority"`

	PickupLocation    *Coordinate  `json:"pickup_location,omitempty"`
	PickupSetup       *int64       `json:"pickup_setup,omitempty" db:"pickup_setup"`
	PickupService     *int64       `json:"pickup_service,omitempty" db:"pickup_service"`
	PickupTimeWindows []TimeWindow `json:"pickup_time_windows,omitempty"`

	DeliveryLocation    *Coordinate  `json:"delivery_location,omitempty"`
	DeliverySetup       *int64       `json:"delivery_setup,omitempty" db:"delivery_setup"`
	DeliveryService     *int64       `json:"delivery_service,omitempty" db:"delivery_service"`
	DeliveryTimeWindows []TimeWindow `json:"delivery_time_windows,omitempty"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
