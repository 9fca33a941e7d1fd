package domain

// Solver wire types. These mirror the VROOM request/response schema: integer
// ids, [lon, lat] float arrays, seconds for every time value and minor
// currency units for every cost.

type SolverCosts struct {
	Fixed   int64 `json:"fixed"`
	PerHour int64 `json:"per_hour"`
	PerKm   int64 `json:"per_km"`
}

type SolverBreak struct {
	ID          int64        `json:"id"`
	Service     int64        `json:"service,omitempty"`
	TimeWindows []TimeWindow `json:"time_windows,omitempty"`
	Description string       `json:"description,omitempty"`
}

type SolverVehicle struct {
	ID            int64         `json:"id"`
	Start         []float64     `json:"start,omitempty"`
	End           []float64     `json:"end,omitempty"`
	Capacity      []int64       `json:"capacity,omitempty"`
	Skills        []int64       `json:"skills,omitempty"`
	TimeWindow    *TimeWindow   `json:"time_window,omitempty"`
	Costs         *SolverCosts  `json:"costs,omitempty"`
	MaxDistance   *int64        `json:"max_distance,omitempty"`
	MaxTravelTime *int64        `json:"max_travel_time,omitempty"`
	Profile       string        `json:"profile,omitempty"`
	Breaks        []SolverBreak `json:"breaks,omitempty"`
}

type SolverJob struct {
	ID          int64        `json:"id"`
	Location    []float64    `json:"location"`
	Setup       int64        `json:"setup"`
	Service     int64        `json:"service"`
	Delivery    []int64      `json:"delivery,omitempty"`
	Pickup      []int64      `json:"pickup,omitempty"`
	Skills      []int64      `json:"skills,omitempty"`
	Priority    *int64       `json:"priority,omitempty"`
	TimeWindows []TimeWindow `json:"time_windows,omitempty"`
}

type SolverShipmentStep struct {
	ID          int64        `json:"id"`
	Location    []float64    `json:"location"`
	Setup       int64        `json:"setup"`
	Service     int64        `json:"service"`
	TimeWindows []TimeWindow `json:"time_windows,omitempty"`
}

type SolverShipment struct {
	Amount   []int64            `json:"amount,omitempty"`
	Skills   []int64            `json:"skills,omitempty"`
	Priority *int64             `json:"priority,omitempty"`
	Pickup   SolverShipmentStep `json:"pickup"`
	Delivery SolverShipmentStep `json:"delivery"`
}

type SolverOptions struct {
	Geometry  bool `json:"g"`
	UseMatrix bool `json:"useMatrix"`
	Threads   int  `json:"threads,omitempty"`
}

type SolverRequest struct {
	Vehicles  []SolverVehicle  `json:"vehicles"`
	Jobs      []SolverJob      `json:"jobs,omitempty"`
	Shipments []SolverShipment `json:"shipments,omitempty"`
	Options   *SolverOptions   `json:"options,omitempty"`
}

type SolverComputingTimes struct {
	Loading int64 `json:"loading"`
	Solving int64 `json:"solving"`
	Routing int64 `json:"routing"`
	// Total is in milliseconds.
	Total int64 `json:"total"`
}

type SolverSummary struct {
	Cost           int64                `json:"cost"`
	Distance       int64                `json:"distance"`
	Duration       int64                `json:"duration"`
	WaitingTime    int64                `json:"waiting_time"`
	Service        int64                `json:"service"`
	Setup          int64                `json:"setup"`
	ComputingTimes SolverComputingTimes `json:"computing_times"`
}

type SolverStep struct {
	Type        string    `json:"type"`
	ID          *int64    `json:"id,omitempty"`
	Location    []float64 `json:"location,omitempty"`
	Arrival     int64     `json:"arrival"`
	Setup       int64     `json:"setup"`
	Service     int64     `json:"service"`
	WaitingTime int64     `json:"waiting_time"`
	Distance    int64     `json:"distance"`
	Duration    int64     `json:"duration"`
	Load        []int64   `json:"load,omitempty"`
	Description string    `json:"description,omitempty"`
}

type SolverRoute struct {
	Vehicle     int64        `json:"vehicle"`
	Cost        int64        `json:"cost"`
	Distance    int64        `json:"distance"`
	Duration    int64        `json:"duration"`
	WaitingTime int64        `json:"waiting_time"`
	Service     int64        `json:"service"`
	Setup       int64        `json:"setup"`
	Priority    int64        `json:"priority"`
	Delivery    []int64      `json:"delivery,omitempty"`
	Pickup      []int64      `json:"pickup,omitempty"`
	Geometry    string       `json:"geometry,omitempty"`
	Steps       []SolverStep `json:"steps,omitempty"`
}

type SolverUnassigned struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type,omitempty"`
	Location    []float64 `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
}

type SolverResponse struct {
	Code       int                `json:"code"`
	Error      string             `json:"error,omitempty"`
	Routes     []SolverRoute      `json:"routes,omitempty"`
	Summary    SolverSummary      `json:"summary"`
	Unassigned []SolverUnassigned `json:"unassigned,omitempty"`
}
