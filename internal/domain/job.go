package domain

import (
	"time"

	"github.com/google/uuid"
)

// Job is a single-stop task (delivery or pickup at one location).
type Job struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ProjectID   uuid.UUID `json:"project_id" db:"project_id"`
	Name        string    `json:"name" db:"name"`
	OptimizerID int64     `json:"optimizer_id" db:"optimizer_id"`

	Location *Coordinate `json:"location,omitempty"`

	// SetupTime and ServiceTime are in seconds.
	SetupTime   *int64 `json:"setup_time,omitempty" db:"setup_time"`
	ServiceTime *int64 `json:"service_time,omitempty" db:"service_time"`

	Delivery []int64 `json:"delivery,omitempty"`
	Pickup   []int64 `json:"pickup,omitempty"`
	Skills   []int64 `json:"skills,omitempty"`

	Priority *int64 `json:"priority,omitempty" db:"priority"`

	TimeWindows []TimeWindow `json:"time_windows,omitempty"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
