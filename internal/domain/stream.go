package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamPlanQueue = "stream:plan:queue"
	StreamPlanDone  = "stream:plan:done"
)

// PlanQueuedEvent - incoming request for an asynchronous optimization run
type PlanQueuedEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	ProjectID uuid.UUID `json:"project_id"`
	Threads   int       `json:"threads,omitempty"`
	// WithGeometry asks the solver to return route polylines.
	WithGeometry bool `json:"with_geometry"`
}

// PlanDoneEvent - result notification for a queued run
type PlanDoneEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	PlanRunID uuid.UUID `json:"plan_run_id"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
}

// StreamMessage - message read from a Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
