package dto

import (
	"time"

	"github.com/vrp-microservice/internal/domain"
)

// CreatePlanRequest - synchronous optimization run
type CreatePlanRequest struct {
	ProjectID    string `json:"project_id" validate:"required,uuid"`
	WithGeometry bool   `json:"with_geometry"`
	Threads      int    `json:"threads" validate:"omitempty,min=1,max=32"`
}

// QueuePlanRequest - asynchronous optimization run via the plan stream
type QueuePlanRequest struct {
	ProjectID    string `json:"project_id" validate:"required,uuid"`
	WithGeometry bool   `json:"with_geometry"`
	Threads      int    `json:"threads" validate:"omitempty,min=1,max=32"`
}

// QueuePlanResponse - acknowledgement for a queued run
type QueuePlanResponse struct {
	RequestID string `json:"request_id"`
	Queued    bool   `json:"queued"`
}

// RouteStepDTO - one stop on a planned route
type RouteStepDTO struct {
	Type        string  `json:"type"`
	JobID       *int64  `json:"job_id,omitempty"`
	Location    *Point  `json:"location,omitempty"`
	Arrival     int64   `json:"arrival"`
	Setup       int64   `json:"setup"`
	Service     int64   `json:"service"`
	WaitingTime int64   `json:"waiting_time"`
	Distance    int64   `json:"distance"`
	Duration    int64   `json:"duration"`
	Load        []int64 `json:"load,omitempty"`
	Description string  `json:"description,omitempty"`
}

// RouteDTO - one vehicle route of a plan
type RouteDTO struct {
	VehicleID   int64          `json:"vehicle_id"`
	Cost        int64          `json:"cost"`
	Distance    int64          `json:"distance"`
	Duration    int64          `json:"duration"`
	WaitingTime int64          `json:"waiting_time"`
	ServiceTime int64          `json:"service_time"`
	SetupTime   int64          `json:"setup_time"`
	Priority    int64          `json:"priority"`
	Deliveries  []int64        `json:"deliveries,omitempty"`
	Pickups     []int64        `json:"pickups,omitempty"`
	Geometry    *string        `json:"geometry,omitempty"`
	Steps       []RouteStepDTO `json:"steps,omitempty"`
}

// UnassignedDTO - a task the solver left off every route
type UnassignedDTO struct {
	OptimizerID int64  `json:"optimizer_id"`
	TaskType    string `json:"task_type"`
	Location    *Point `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// PlanResponse - full optimization outcome
type PlanResponse struct {
	RunID     string `json:"run_id"`
	ProjectID string `json:"project_id"`
	Status    string `json:"status"`

	TotalCost       int64 `json:"total_cost"`
	TotalDistance   int64 `json:"total_distance"`
	TotalDuration   int64 `json:"total_duration"`
	TotalRoutes     int   `json:"total_routes"`
	TotalUnassigned int   `json:"total_unassigned"`

	ComputingTimeMS  int64 `json:"computing_time_ms"`
	ComputingTimeSec int64 `json:"computing_time_sec"`

	CurrencyCode string `json:"currency_code"`

	Routes     []RouteDTO      `json:"routes,omitempty"`
	Unassigned []UnassignedDTO `json:"unassigned,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// PlanRunSummary - run listing entry, no routes attached
type PlanRunSummary struct {
	RunID           string    `json:"run_id"`
	Status          string    `json:"status"`
	TotalCost       int64     `json:"total_cost"`
	TotalRoutes     int       `json:"total_routes"`
	TotalUnassigned int       `json:"total_unassigned"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToPlanRunSummary(run *domain.PlanRun) PlanRunSummary {
	return PlanRunSummary{
		RunID:           run.ID.String(),
		Status:          run.Status,
		TotalCost:       run.TotalCost,
		TotalRoutes:     run.TotalRoutes,
		TotalUnassigned: run.TotalUnassigned,
		CreatedAt:       run.CreatedAt,
	}
}

// SolverHealthResponse - solver reachability probe
type SolverHealthResponse struct {
	Healthy bool   `json:"healthy"`
	Status  string `json:"status"`
}
