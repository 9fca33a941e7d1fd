package dto

import (
	"time"

	"github.com/vrp-microservice/internal/domain"
)

// ShipmentLegInput - one side of a pickup/delivery pair
type ShipmentLegInput struct {
	Location    *Point    `json:"location,omitempty"`
	Setup       *int64    `json:"setup,omitempty"`
	Service     *int64    `json:"service,omitempty"`
	TimeWindows [][]int64 `json:"time_windows,omitempty"`
}

// CreateShipmentRequest - shipment creation payload
type CreateShipmentRequest struct {
	ProjectID string `json:"project_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,min=1,max=255"`

	Amount   []int64 `json:"amount,omitempty"`
	Skills   []int64 `json:"skills,omitempty"`
	Priority *int64  `json:"priority,omitempty"`

	Pickup   ShipmentLegInput `json:"pickup"`
	Delivery ShipmentLegInput `json:"delivery"`
}

// ShipmentLegResponse mirrors ShipmentLegInput for output
type ShipmentLegResponse struct {
	Location    *Point    `json:"location,omitempty"`
	Setup       *int64    `json:"setup,omitempty"`
	Service     *int64    `json:"service,omitempty"`
	TimeWindows [][]int64 `json:"time_windows,omitempty"`
}

// ShipmentResponse - stored shipment as returned by the API
type ShipmentResponse struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	OptimizerID int64  `json:"optimizer_id"`

	Amount   []int64 `json:"amount,omitempty"`
	Skills   []int64 `json:"skills,omitempty"`
	Priority *int64  `json:"priority,omitempty"`

	Pickup   ShipmentLegResponse `json:"pickup"`
	Delivery ShipmentLegResponse `json:"delivery"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToShipmentResponse(s *domain.Shipment) *ShipmentResponse {
	resp := &ShipmentResponse{
		ID:          s.ID.String(),
		ProjectID:   s.ProjectID.String(),
		Name:        s.Name,
		OptimizerID: s.OptimizerID,
		Amount:      s.Amount,
		Skills:      s.Skills,
		Priority:    s.Priority,
		Pickup: ShipmentLegResponse{
			Setup:   s.PickupSetup,
			Service: s.PickupService,
		},
		Delivery: ShipmentLegResponse{
			Setup:   s.DeliverySetup,
			Service: s.DeliveryService,
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}

	if s.PickupLocation != nil {
		resp.Pickup.Location = &Point{Lon: s.PickupLocation.Lon, Lat: s.PickupLocation.Lat}
	}
	if s.DeliveryLocation != nil {
		resp.Delivery.Location = &Point{Lon: s.DeliveryLocation.Lon, Lat: s.DeliveryLocation.Lat}
	}
	for _, w := range s.PickupTimeWindows {
		resp.Pickup.TimeWindows = append(resp.Pickup.TimeWindows, []int64{w.Start(), w.End()})
	}
	for _, w := range s.DeliveryTimeWindows {
		resp.Delivery.TimeWindows = append(resp.Delivery.TimeWindows, []int64{w.Start(), w.End()})
	}

	return resp
}
