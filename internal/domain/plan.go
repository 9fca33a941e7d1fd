package domain

import (
	"time"

	"github.com/google/uuid"
)

// Run statuses mapped from the solver response code.
const (
	RunStatusCompleted    = "completed"
	RunStatusWithWarnings = "completed_with_warnings"
	RunStatusError        = "error"
	RunStatusTimeout      = "timeout"
	RunStatusInfeasible   = "infeasible"
)

// RunStatusFromCode maps the solver response code to a stored run status.
func RunStatusFromCode(code int) string {
	switch code {
	case 0:
		return RunStatusCompleted
	case 1:
		return RunStatusWithWarnings
	case 2:
		return RunStatusError
	case 3:
		return RunStatusTimeout
	case 4:
		return RunStatusInfeasible
	default:
		return RunStatusError
	}
}

// PlanRun is one optimization run: totals extracted from the solver summary
// plus the context it was produced under.
type PlanRun struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id"`

	Status       string  `json:"status" db:"status"`
	SolverCode   int     `json:"solver_code" db:"solver_code"`
	ErrorMessage *string `json:"error_message,omitempty" db:"error_message"`

	TotalCost       int64 `json:"total_cost" db:"total_cost"`
	TotalRoutes     int   `json:"total_routes" db:"total_routes"`
	TotalUnassigned int   `json:"total_unassigned" db:"total_unassigned"`
	TotalDistance   int64 `json:"total_distance" db:"total_distance"`
	TotalDuration   int64 `json:"total_duration" db:"total_duration"`
	TotalWaiting    int64 `json:"total_waiting" db:"total_waiting"`
	TotalService    int64 `json:"total_service" db:"total_service"`
	TotalSetup      int64 `json:"total_setup" db:"total_setup"`

	VehicleCount  int `json:"vehicle_count" db:"vehicle_count"`
	JobCount      int `json:"job_count" db:"job_count"`
	ShipmentCount int `json:"shipment_count" db:"shipment_count"`

	ComputingTimeMS  int64 `json:"computing_time_ms" db:"computing_time_ms"`
	ComputingTimeSec int64 `json:"computing_time_sec" db:"computing_time_sec"`

	CurrencyCode string    `json:"currency_code" db:"currency_code"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// RouteSummary is one vehicle route out of a run. Geometry is stored after
// precision rounding and polyline simplification.
type RouteSummary struct {
	ID        uuid.UUID `json:"id" db:"id"`
	PlanRunID uuid.UUID `json:"plan_run_id" db:"plan_run_id"`
	VehicleID int64     `json:"vehicle_id" db:"vehicle_id"`

	Cost        int64 `json:"cost" db:"cost"`
	Distance    int64 `json:"distance" db:"distance"`
	Duration    int64 `json:"duration" db:"duration"`
	WaitingTime int64 `json:"waiting_time" db:"waiting_time"`
	ServiceTime int64 `json:"service_time" db:"service_time"`
	SetupTime   int64 `json:"setup_time" db:"setup_time"`
	Priority    int64 `json:"priority" db:"priority"`

	Deliveries []int64 `json:"deliveries,omitempty"`
	Pickups    []int64 `json:"pickups,omitempty"`

	Geometry *string `json:"geometry,omitempty" db:"geometry"`
}

// RouteStep is one stop on a route.
type RouteStep struct {
	ID             uuid.UUID `json:"id" db:"id"`
	RouteSummaryID uuid.UUID `json:"route_summary_id" db:"route_summary_id"`
	VehicleID      int64     `json:"vehicle_id" db:"vehicle_id"`

	StepType  string `json:"step_type" db:"step_type"`
	StepOrder int    `json:"step_order" db:"step_order"`
	JobID     *int64 `json:"job_id,omitempty" db:"job_id"`

	Lon *float64 `json:"lon,omitempty" db:"lon"`
	Lat *float64 `json:"lat,omitempty" db:"lat"`

	ArrivalTime int64   `json:"arrival_time" db:"arrival_time"`
	SetupTime   int64   `json:"setup_time" db:"setup_time"`
	ServiceTime int64   `json:"service_time" db:"service_time"`
	WaitingTime int64   `json:"waiting_time" db:"waiting_time"`
	Distance    int64   `json:"distance" db:"distance"`
	Duration    int64   `json:"duration" db:"duration"`
	Load        []int64 `json:"load,omitempty"`

	Description *string `json:"description,omitempty" db:"description"`
}

// UnassignedTask is a job or shipment the solver could not place on any route.
type UnassignedTask struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PlanRunID   uuid.UUID `json:"plan_run_id" db:"plan_run_id"`
	OptimizerID int64     `json:"optimizer_id" db:"optimizer_id"`
	TaskType    string    `json:"task_type" db:"task_type"`
	Lon         *float64  `json:"lon,omitempty" db:"lon"`
	Lat         *float64  `json:"lat,omitempty" db:"lat"`
	Description string    `json:"description,omitempty" db:"description"`
}
