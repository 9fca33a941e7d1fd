package dto

import (
	"time"

	"github.com/vrp-microservice/internal/domain"
)

// JobInput - a single task payload, shared by create and bulk import
type JobInput struct {
	Name string `json:"name" validate:"required,min=1,max=255"`

	Location *Point `json:"location,omitempty"`

	SetupTime   *int64 `json:"setup_time,omitempty"`
	ServiceTime *int64 `json:"service_time,omitempty"`

	Delivery []int64 `json:"delivery,omitempty"`
	Pickup   []int64 `json:"pickup,omitempty"`
	Skills   []int64 `json:"skills,omitempty"`

	Priority *int64 `json:"priority,omitempty"`

	TimeWindows [][]int64 `json:"time_windows,omitempty"`
}

// CreateJobRequest - single job creation
type CreateJobRequest struct {
	ProjectID string `json:"project_id" validate:"required,uuid"`
	JobInput
}

// BulkImportJobsRequest - batch job import. Invalid entries are reported
// per index, valid ones are inserted.
type BulkImportJobsRequest struct {
	ProjectID string     `json:"project_id" validate:"required,uuid"`
	Jobs      []JobInput `json:"jobs" validate:"required,min=1,max=1000"`
}

// BulkImportItemResult - outcome for one entry of a bulk import
type BulkImportItemResult struct {
	Index    int      `json:"index"`
	ID       string   `json:"id,omitempty"`
	Error    string   `json:"error,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// BulkImportJobsResponse - bulk import outcome
type BulkImportJobsResponse struct {
	Results      []BulkImportItemResult `json:"results"`
	TotalCount   int                    `json:"total_count"`
	SuccessCount int                    `json:"success_count"`
	ErrorCount   int                    `json:"error_count"`
}

// JobResponse - stored job as returned by the API
type JobResponse struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	OptimizerID int64  `json:"optimizer_id"`

	Location *Point `json:"location,omitempty"`

	SetupTime   *int64 `json:"setup_time,omitempty"`
	ServiceTime *int64 `json:"service_time,omitempty"`

	Delivery []int64 `json:"delivery,omitempty"`
	Pickup   []int64 `json:"pickup,omitempty"`
	Skills   []int64 `json:"skills,omitempty"`

	Priority *int64 `json:"priority,omitempty"`

	TimeWindows [][]int64 `json:"time_windows,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToJobResponse(j *domain.Job) *JobResponse {
	resp := &JobResponse{
		ID:          j.ID.String(),
		ProjectID:   j.ProjectID.String(),
		Name:        j.Name,
		OptimizerID: j.OptimizerID,
		SetupTime:   j.SetupTime,
		ServiceTime: j.ServiceTime,
		Delivery:    j.Delivery,
		Pickup:      j.Pickup,
		Skills:      j.Skills,
		Priority:    j.Priority,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}

	if j.Location != nil {
		resp.Location = &Point{Lon: j.Location.Lon, Lat: j.Location.Lat}
	}
	for _, w := range j.TimeWindows {
		resp.TimeWindows = append(resp.TimeWindows, []int64{w.Start(), w.End()})
	}

	return resp
}
