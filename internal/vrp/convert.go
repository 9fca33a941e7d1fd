package vrp

import (
	"fmt"
	"math"

	"github.com/vrp-microservice/internal/domain"
	"github.com/vrp-microservice/internal/pkg/errors"
)

// Unit converters between storage units and solver units. All are pure; only
// ValidateAndConvertCost and ConvertTimeWindows have a failure mode.

// MillisecondsToSeconds floors a millisecond value to whole seconds.
func MillisecondsToSeconds(ms int64) int64 {
	if ms < 0 {
		return int64(math.Floor(float64(ms) / 1000))
	}
	return ms / 1000
}

// SecondsToMilliseconds converts whole seconds to milliseconds.
func SecondsToMilliseconds(s int64) int64 {
	return s * 1000
}

// CoordsToArray projects a coordinate to the [lon, lat] array form the solver
// expects. Returns nil when the coordinate is absent.
func CoordsToArray(c *domain.Coordinate) []float64 {
	if c == nil {
		return nil
	}
	return []float64{c.Lon, c.Lat}
}

// ArrayToCoords is the inverse of CoordsToArray. Returns nil when the pair is
// absent or too short.
func ArrayToCoords(pair []float64) *domain.Coordinate {
	if len(pair) < 2 {
		return nil
	}
	return &domain.Coordinate{Lon: pair[0], Lat: pair[1]}
}

// DollarsToCents converts a major-unit amount to minor units, rounding to the
// nearest cent.
func DollarsToCents(d float64) int64 {
	return int64(math.Round(d * 100))
}

// CentsToDollars converts minor units back to a major-unit amount.
func CentsToDollars(c int64) float64 {
	return float64(c) / 100
}

// ValidateAndConvertCost rejects a non-finite or negative major-unit amount,
// converts it to minor units and validates the result. Solvers need integer
// costs, so the minor-unit form is what gets stored and transmitted.
func ValidateAndConvertCost(dollars float64, field string) (int64, *errors.ValidationError) {
	if math.IsNaN(dollars) || math.IsInf(dollars, 0) {
		return 0, errors.NewShapeError(field, dollars, "cost must be a finite number")
	}
	if dollars < 0 {
		return 0, errors.NewRangeError(field, dollars, "cost must be non-negative")
	}
	cents := DollarsToCents(dollars)
	if err := ValidateCost(cents, field); err != nil {
		return 0, err
	}
	return cents, nil
}

// ConvertTimeWindows converts raw [start, end] pairs into the canonical
// TimeWindow form, checking shape only (exactly two elements per pair). Full
// window semantics are validated separately by ValidateTimeWindowSet; this
// conversion happens exactly once, at the API boundary.
func ConvertTimeWindows(pairs [][]int64, field string) ([]domain.TimeWindow, *errors.ValidationError) {
	if len(pairs) == 0 {
		return nil, nil
	}
	windows := make([]domain.TimeWindow, 0, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, errors.NewShapeError(fmt.Sprintf("%s[%d]", field, i), p,
				fmt.Sprintf("time window must be a [start, end] pair, got %d elements", len(p)))
		}
		windows = append(windows, domain.TimeWindow{p[0], p[1]})
	}
	return windows, nil
}
