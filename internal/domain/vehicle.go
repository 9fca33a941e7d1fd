package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle is a fleet vehicle as stored. Optional fields are pointers: absent
// values are skipped by validation and omitted from the solver payload.
type Vehicle struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ProjectID   uuid.UUID `json:"project_id" db:"project_id"`
	Name        string    `json:"name" db:"name"`
	OptimizerID int64     `json:"optimizer_id" db:"optimizer_id"`

	Start *Coordinate `json:"start,omitempty"`
	End   *Coordinate `json:"end,omitempty"`

	Capacity []int64 `json:"capacity,omitempty"`
	Skills   []int64 `json:"skills,omitempty"`

	TimeWindow *TimeWindow `json:"time_window,omitempty"`

	// Costs are stored in minor currency units (cents).
	CostFixed   *int64 `json:"cost_fixed,omitempty" db:"cost_fixed"`
	CostPerHour *int64 `json:"cost_per_hour,omitempty" db:"cost_per_hour"`
	CostPerKm   *int64 `json:"cost_per_km,omitempty" db:"cost_per_km"`

	MaxDistance   *int64 `json:"max_distance,omitempty" db:"max_distance"`
	MaxTravelTime *int64 `json:"max_travel_time,omitempty" db:"max_travel_time"`
	Profile       string `json:"profile,omitempty" db:"profile"`

	Breaks []VehicleBreak `json:"breaks,omitempty"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// VehicleBreak is a driver break definition.
type VehicleBreak struct {
	ID          int64        `json:"id"`
	Service     *int64       `json:"service,omitempty"`
	TimeWindows []TimeWindow `json:"time_windows,omitempty"`
	Description string       `json:"description,omitempty"`
}
