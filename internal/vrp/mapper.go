package vrp

import (
	"github.com/vrp-microservice/internal/domain"
	"github.com/vrp-microservice/internal/pkg/errors"
)

// Entity mappers project stored records into the flat solver structures.
// Validation is conditional: absent optional fields are skipped, present ones
// must pass. Mapping stops at the first invalid field.

// Default vehicle costs in minor units, applied when the record omits them.
// An hour of driving defaults to 3600 cents so time and cost stay 1:1.
const (
	DefaultCostPerHour int64 = 3600
	DefaultCostPerKm   int64 = 0
	DefaultCostFixed   int64 = 0
)

// ToSolverVehicle validates and projects a vehicle.
func ToSolverVehicle(v *domain.Vehicle) (*domain.SolverVehicle, *errors.ValidationError) {
	if v.Capacity != nil {
		if err := ValidateCapacity(v.Capacity, "vehicle.capacity"); err != nil {
			return nil, err
		}
	}
	if err := ValidateVehicleTimeConstraints(v); err != nil {
		return nil, err
	}

	costs := &domain.SolverCosts{
		Fixed:   DefaultCostFixed,
		PerHour: DefaultCostPerHour,
		PerKm:   DefaultCostPerKm,
	}
	if v.CostFixed != nil {
		if err := ValidateCost(*v.CostFixed, "vehicle.cost_fixed"); err != nil {
			return nil, err
		}
		costs.Fixed = *v.CostFixed
	}
	if v.CostPerHour != nil {
		if err := ValidateCost(*v.CostPerHour, "vehicle.cost_per_hour"); err != nil {
			return nil, err
		}
		costs.PerHour = *v.CostPerHour
	}
	if v.CostPerKm != nil {
		if err := ValidateCost(*v.CostPerKm, "vehicle.cost_per_km"); err != nil {
			return nil, err
		}
		costs.PerKm = *v.CostPerKm
	}

	if v.MaxDistance != nil && *v.MaxDistance < 0 {
		return nil, errors.NewRangeError("vehicle.max_distance", *v.MaxDistance,
			"max distance must be non-negative")
	}

	out := &domain.SolverVehicle{
		ID:            v.OptimizerID,
		Start:         CoordsToArray(v.Start),
		End:           CoordsToArray(v.End),
		Capacity:      v.Capacity,
		Skills:        v.Skills,
		TimeWindow:    v.TimeWindow,
		Costs:         costs,
		MaxDistance:   v.MaxDistance,
		MaxTravelTime: v.MaxTravelTime,
		Profile:       v.Profile,
	}

	for _, b := range v.Breaks {
		sb := domain.SolverBreak{
			ID:          b.ID,
			TimeWindows: b.TimeWindows,
			Description: b.Description,
		}
		if b.Service != nil {
			sb.Service = *b.Service
		}
		out.Breaks = append(out.Breaks, sb)
	}

	return out, nil
}

// ToSolverJob validates and projects a job. The stored service_time field is
// renamed to the solver's "service".
func ToSolverJob(j *domain.Job) (*domain.SolverJob, []errors.Warning, *errors.ValidationError) {
	if j.Location == nil {
		return nil, nil, errors.NewShapeError("job.location", nil, "job location is required")
	}

	warnings, err := ValidateServiceTimes(j.SetupTime, j.ServiceTime, "job")
	if err != nil {
		return nil, nil, err
	}

	if j.Delivery != nil {
		if verr := ValidateCapacity(j.Delivery, "job.delivery"); verr != nil {
			return nil, nil, verr
		}
	}
	if j.Pickup != nil {
		if verr := ValidateCapacity(j.Pickup, "job.pickup"); verr != nil {
			return nil, nil, verr
		}
	}
	if j.Priority != nil {
		if verr := ValidatePriority(*j.Priority, "job.priority"); verr != nil {
			return nil, nil, verr
		}
	}
	if verr := ValidateTimeWindowSet(j.TimeWindows, "job.time_windows"); verr != nil {
		return nil, nil, verr
	}

	out := &domain.SolverJob{
		ID:          j.OptimizerID,
		Location:    CoordsToArray(j.Location),
		Delivery:    j.Delivery,
		Pickup:      j.Pickup,
		Skills:      j.Skills,
		Priority:    j.Priority,
		TimeWindows: j.TimeWindows,
	}
	if j.SetupTime != nil {
		out.Setup = *j.SetupTime
	}
	if j.ServiceTime != nil {
		out.Service = *j.ServiceTime
	}

	return out, warnings, nil
}

// ToSolverShipment validates and projects a shipment with its pickup and
// delivery legs.
func ToSolverShipment(s *domain.Shipment) (*domain.SolverShipment, []errors.Warning, *errors.ValidationError) {
	if s.PickupLocation == nil {
		return nil, nil, errors.NewShapeError("shipment.pickup_location", nil, "shipment pickup location is required")
	}
	if s.DeliveryLocation == nil {
		return nil, nil, errors.NewShapeError("shipment.delivery_location", nil, "shipment delivery location is required")
	}

	if s.Amount != nil {
		if verr := ValidateCapacity(s.Amount, "shipment.amount"); verr != nil {
			return nil, nil, verr
		}
	}
	if s.Priority != nil {
		if verr := ValidatePriority(*s.Priority, "shipment.priority"); verr != nil {
			return nil, nil, verr
		}
	}

	var warnings []errors.Warning

	pickupWarnings, err := ValidateServiceTimes(s.PickupSetup, s.PickupService, "shipment.pickup")
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, pickupWarnings...)

	deliveryWarnings, err := ValidateServiceTimes(s.DeliverySetup, s.DeliveryService, "shipment.delivery")
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, deliveryWarnings...)

	if verr := ValidateTimeWindowSet(s.PickupTimeWindows, "shipment.pickup_time_windows"); verr != nil {
		return nil, nil, verr
	}
	if verr := ValidateTimeWindowSet(s.DeliveryTimeWindows, "shipment.delivery_time_windows"); verr != nil {
		return nil, nil, verr
	}

	out := &domain.SolverShipment{
		Amount:   s.Amount,
		Skills:   s.Skills,
		Priority: s.Priority,
		Pickup: domain.SolverShipmentStep{
			ID:          s.OptimizerID,
			Location:    CoordsToArray(s.PickupLocation),
			TimeWindows: s.PickupTimeWindows,
		},
		Delivery: domain.SolverShipmentStep{
			ID:          s.OptimizerID,
			Location:    CoordsToArray(s.DeliveryLocation),
			TimeWindows: s.DeliveryTimeWindows,
		},
	}
	if s.PickupSetup != nil {
		out.Pickup.Setup = *s.PickupSetup
	}
	if s.PickupService != nil {
		out.Pickup.Service = *s.PickupService
	}
	if s.DeliverySetup != nil {
		out.Delivery.Setup = *s.DeliverySetup
	}
	if s.DeliveryService != nil {
		out.Delivery.Service = *s.DeliveryService
	}

	return out, warnings, nil
}
