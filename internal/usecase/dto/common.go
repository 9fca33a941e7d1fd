package dto

// Point - coordinate input in WGS84
type Point struct {
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
}

// TimeWindowInput - [start, end] pair in seconds from the planning horizon start
type TimeWindowInput []int64
