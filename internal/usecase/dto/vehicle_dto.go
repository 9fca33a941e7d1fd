package dto

import (
	"time"

	"github.com/vrp-microservice/internal/domain"
)

// BreakInput - driver break definition
type BreakInput struct {
	ID          int64     `json:"id" validate:"required,min=1"`
	Service     *int64    `json:"service,omitempty"`
	TimeWindows [][]int64 `json:"time_windows,omitempty"`
	Description string    `json:"description,omitempty"`
}

// CreateVehicleRequest - vehicle creation payload. Costs are in major
// currency units (dollars) and are converted to cents on the way in.
type CreateVehicleRequest struct {
	ProjectID string `json:"project_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,min=1,max=255"`

	Start *Point `json:"start,omitempty"`
	End   *Point `json:"end,omitempty"`

	Capacity []int64 `json:"capacity,omitempty"`
	Skills   []int64 `json:"skills,omitempty"`

	TimeWindow []int64 `json:"time_window,omitempty"`

	CostFixed   *float64 `json:"cost_fixed,omitempty"`
	CostPerHour *float64 `json:"cost_per_hour,omitempty"`
	CostPerKm   *float64 `json:"cost_per_km,omitempty"`

	MaxDistance   *int64 `json:"max_distance,omitempty"`
	MaxTravelTime *int64 `json:"max_travel_time,omitempty"`
	Profile       string `json:"profile,omitempty"`

	Breaks []BreakInput `json:"breaks,omitempty"`
}

// VehicleResponse - stored vehicle as returned by the API
type VehicleResponse struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	OptimizerID int64  `json:"optimizer_id"`

	Start *Point `json:"start,omitempty"`
	End   *Point `json:"end,omitempty"`

	Capacity []int64 `json:"capacity,omitempty"`
	Skills   []int64 `json:"skills,omitempty"`

	TimeWindow []int64 `json:"time_window,omitempty"`

	CostFixed   *int64 `json:"cost_fixed,omitempty"`
	CostPerHour *int64 `json:"cost_per_hour,omitempty"`
	CostPerKm   *int64 `json:"cost_per_km,omitempty"`

	MaxDistance   *int64 `json:"max_distance,omitempty"`
	MaxTravelTime *int64 `json:"max_travel_time,omitempty"`
	Profile       string `json:"profile,omitempty"`

	Breaks []BreakInput `json:"breaks,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToVehicleResponse(v *domain.Vehicle) *VehicleResponse {
	resp := &VehicleResponse{
		ID:            v.ID.String(),
		ProjectID:     v.ProjectID.String(),
		Name:          v.Name,
		OptimizerID:   v.OptimizerID,
		Capacity:      v.Capacity,
		Skills:        v.Skills,
		CostFixed:     v.CostFixed,
		CostPerHour:   v.CostPerHour,
		CostPerKm:     v.CostPerKm,
		MaxDistance:   v.MaxDistance,
		MaxTravelTime: v.MaxTravelTime,
		Profile:       v.Profile,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}

	if v.Start != nil {
		resp.Start = &Point{Lon: v.Start.Lon, Lat: v.Start.Lat}
	}
	if v.End != nil {
		resp.End = &Point{Lon: v.End.Lon, Lat: v.End.Lat}
	}
	if v.TimeWindow != nil {
		resp.TimeWindow = []int64{v.TimeWindow.Start(), v.TimeWindow.End()}
	}
	for _, b := range v.Breaks {
		bi := BreakInput{
			ID:          b.ID,
			Service:     b.Service,
			Description: b.Description,
		}
		for _, w := range b.TimeWindows {
			bi.TimeWindows = append(bi.TimeWindows, []int64{w.Start(), w.End()})
		}
		resp.Breaks = append(resp.Breaks, bi)
	}

	return resp
}
