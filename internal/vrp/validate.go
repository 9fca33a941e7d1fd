package vrp

import (
	"fmt"
	"sort"

	"github.com/vrp-microservice/internal/domain"
	"github.com/vrp-microservice/internal/pkg/errors"
)

// Primitive validators for the numeric contract external solvers impose:
// bounded ranges, exact-length vectors and non-overlapping interval sets.
// Every validator is pure and safe for concurrent use.

const (
	MinPriority int64 = 0
	MaxPriority int64 = 100
)

// ValidateCapacity checks a capacity vector: exactly 3 entries
// ([weight, volume, count]), all non-negative.
func ValidateCapacity(v []int64, field string) *errors.ValidationError {
	if len(v) != domain.CapacitySize {
		return errors.NewShapeError(field, v,
			fmt.Sprintf("capacity vector must have exactly %d entries, got %d", domain.CapacitySize, len(v)))
	}
	for i, entry := range v {
		if entry < 0 {
			return errors.NewRangeError(field, entry,
				fmt.Sprintf("capacity entry %d must be non-negative", i))
		}
	}
	return nil
}

// ValidatePriority checks a priority is within [0, 100].
func ValidatePriority(p int64, field string) *errors.ValidationError {
	if p < MinPriority || p > MaxPriority {
		return errors.NewRangeError(field, p,
			fmt.Sprintf("priority must be between %d and %d", MinPriority, MaxPriority))
	}
	return nil
}

// ValidateCost checks a cost in minor currency units is non-negative.
func ValidateCost(c int64, field string) *errors.ValidationError {
	if c < 0 {
		return errors.NewRangeError(field, c, "cost must be non-negative")
	}
	return nil
}

// ValidateTimeInSeconds checks a time value is within [0, 604800] (one week).
func ValidateTimeInSeconds(t int64, field string) *errors.ValidationError {
	if t < 0 {
		return errors.NewRangeError(field, t, "time must be non-negative")
	}
	if t > domain.MaxTimeSeconds {
		return errors.NewRangeError(field, t,
			fmt.Sprintf("time must not exceed %d seconds (one week)", domain.MaxTimeSeconds))
	}
	return nil
}

// ValidateTimeWindow checks both bounds and requires start < end.
func ValidateTimeWindow(w domain.TimeWindow, field string) *errors.ValidationError {
	if err := ValidateTimeInSeconds(w.Start(), field+".start"); err != nil {
		return err
	}
	if err := ValidateTimeInSeconds(w.End(), field+".end"); err != nil {
		return err
	}
	if w.Start() >= w.End() {
		return errors.NewRangeError(field, w, "time window start must be before its end")
	}
	return nil
}

// ValidateTimeWindowSet checks every window individually, then sorts a copy by
// start and rejects any pair of overlapping windows. An empty set is valid.
func ValidateTimeWindowSet(ws []domain.TimeWindow, field string) *errors.ValidationError {
	for i, w := range ws {
		if err := ValidateTimeWindow(w, fmt.Sprintf("%s[%d]", field, i)); err != nil {
			return err
		}
	}

	if len(ws) < 2 {
		return nil
	}

	sorted := make([]domain.TimeWindow, len(ws))
	copy(sorted, ws)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start() < sorted[j].Start()
	})

	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i].End() > sorted[i+1].Start() {
			return errors.NewOverlapError(field, [2]domain.TimeWindow{sorted[i], sorted[i+1]},
				fmt.Sprintf("time windows [%d,%d] and [%d,%d] overlap",
					sorted[i].Start(), sorted[i].End(), sorted[i+1].Start(), sorted[i+1].End()))
		}
	}
	return nil
}

// ValidateServiceTimes validates optional setup and service times. A setup
// time longer than a positive service time is unusual but not invalid, so it
// is reported as a warning rather than a failure.
func ValidateServiceTimes(setup, service *int64, field string) ([]errors.Warning, *errors.ValidationError) {
	if setup != nil {
		if err := ValidateTimeInSeconds(*setup, field+".setup"); err != nil {
			return nil, err
		}
	}
	if service != nil {
		if err := ValidateTimeInSeconds(*service, field+".service"); err != nil {
			return nil, err
		}
	}

	var warnings []errors.Warning
	if setup != nil && service != nil && *service > 0 && *setup > *service {
		warnings = append(warnings, errors.Warning{
			Field: field,
			Message: fmt.Sprintf("setup time (%ds) is longer than service time (%ds)",
				*setup, *service),
		})
	}
	return warnings, nil
}

// ValidateVehicleTimeConstraints validates a vehicle's optional time window,
// max travel time and break definitions.
func ValidateVehicleTimeConstraints(v *domain.Vehicle) *errors.ValidationError {
	if v.TimeWindow != nil {
		if err := ValidateTimeWindow(*v.TimeWindow, "vehicle.time_window"); err != nil {
			return err
		}
	}

	if v.MaxTravelTime != nil {
		if err := ValidateTimeInSeconds(*v.MaxTravelTime, "vehicle.max_travel_time"); err != nil {
			return err
		}
	}

	for i, b := range v.Breaks {
		field := fmt.Sprintf("vehicle.breaks[%d]", i)
		if b.ID <= 0 {
			return errors.NewRangeError(field+".id", b.ID, "break id must be a positive integer")
		}
		if b.Service != nil {
			if err := ValidateTimeInSeconds(*b.Service, field+".service"); err != nil {
				return err
			}
		}
		if err := ValidateTimeWindowSet(b.TimeWindows, field+".time_windows"); err != nil {
			return err
		}
	}
	return nil
}
