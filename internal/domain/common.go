package domain

// Coordinate is a WGS84 point in (longitude, latitude) order, matching the
// coordinate arrays the solver consumes.
type Coordinate struct {
	Lon float64 `json:"lon" db:"lon"`
	Lat float64 `json:"lat" db:"lat"`
}

// TimeWindow is the canonical [start, end] pair in seconds. All durations and
// instants handed to the solver use seconds in [0, 604800].
type TimeWindow [2]int64

func (w TimeWindow) Start() int64 {
	return w[0]
}

func (w TimeWindow) End() int64 {
	return w[1]
}

// MaxTimeSeconds bounds every time value to one week.
const MaxTimeSeconds int64 = 604800

// CapacitySize is the required length of every capacity vector:
// [weight, volume, count].
const CapacitySize = 3
