package vrp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrp-microservice/internal/domain"
	"github.com/vrp-microservice/internal/pkg/errors"
)

func TestValidateCapacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity []int64
		wantKind errors.ValidationKind
	}{
		{
			name:     "valid vector",
			capacity: []int64{10, 20, 5},
		},
		{
			name:     "all zeros is valid",
			capacity: []int64{0, 0, 0},
		},
		{
			name:     "too short",
			capacity: []int64{10, 20},
			wantKind: errors.KindShape,
		},
		{
			name:     "too long",
			capacity: []int64{10, 20, 5, 1},
			wantKind: errors.KindShape,
		},
		{
			name:     "negative entry",
			capacity: []int64{10, -1, 5},
			wantKind: errors.KindRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCapacity(tt.capacity, "capacity")
			if tt.wantKind == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.wantKind, err.Kind)
			assert.Equal(t, "capacity", err.Field)
		})
	}
}

func TestValidatePriority(t *testing.T) {
	tests := []struct {
		name     string
		priority int64
		wantErr  bool
	}{
		{name: "lower bound", priority: 0},
		{name: "upper bound", priority: 100},
		{name: "middle", priority: 50},
		{name: "negative", priority: -1, wantErr: true},
		{name: "too large", priority: 150, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePriority(tt.priority, "priority")
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, errors.KindRange, err.Kind)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestValidateCost(t *testing.T) {
	assert.Nil(t, ValidateCost(0, "cost"))
	assert.Nil(t, ValidateCost(360000, "cost"))

	err := ValidateCost(-1, "cost")
	require.NotNil(t, err)
	assert.Equal(t, errors.KindRange, err.Kind)
	assert.Equal(t, int64(-1), err.Value)
}

func TestValidateTimeInSeconds(t *testing.T) {
	tests := []struct {
		name    string
		seconds int64
		wantErr bool
	}{
		{name: "zero", seconds: 0},
		{name: "one day", seconds: 86400},
		{name: "exactly one week", seconds: 604800},
		{name: "negative", seconds: -5, wantErr: true},
		{name: "beyond one week", seconds: 604801, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimeInSeconds(tt.seconds, "time")
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, errors.KindRange, err.Kind)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestValidateTimeWindow(t *testing.T) {
	tests := []struct {
		name    string
		window  domain.TimeWindow
		wantErr bool
	}{
		{name: "valid window", window: domain.TimeWindow{0, 3600}},
		{name: "start equals end", window: domain.TimeWindow{100, 100}, wantErr: true},
		{name: "start after end", window: domain.TimeWindow{200, 100}, wantErr: true},
		{name: "negative start", window: domain.TimeWindow{-1, 100}, wantErr: true},
		{name: "end beyond one week", window: domain.TimeWindow{0, 604801}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimeWindow(tt.window, "time_window")
			if tt.wantErr {
				assert.NotNil(t, err)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestValidateTimeWindowSet(t *testing.T) {
	tests := []struct {
		name     string
		windows  []domain.TimeWindow
		wantKind errors.ValidationKind
	}{
		{
			name: "empty set is valid",
		},
		{
			name:    "single window",
			windows: []domain.TimeWindow{{0, 100}},
		},
		{
			name:    "disjoint windows",
			windows: []domain.TimeWindow{{0, 100}, {100, 200}, {300, 400}},
		},
		{
			name:    "disjoint but unsorted input",
			windows: []domain.TimeWindow{{300, 400}, {0, 100}},
		},
		{
			name:     "overlapping windows",
			windows:  []domain.TimeWindow{{0, 100}, {50, 200}},
			wantKind: errors.KindOverlap,
		},
		{
			name:     "overlap detected after sorting",
			windows:  []domain.TimeWindow{{50, 200}, {0, 100}},
			wantKind: errors.KindOverlap,
		},
		{
			name:     "invalid member window",
			windows:  []domain.TimeWindow{{100, 50}},
			wantKind: errors.KindRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimeWindowSet(tt.windows, "time_windows")
			if tt.wantKind == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.wantKind, err.Kind)
		})
	}
}

func TestValidateTimeWindowSet_DoesNotMutateInput(t *testing.T) {
	windows := []domain.TimeWindow{{300, 400}, {0, 100}}
	err := ValidateTimeWindowSet(windows, "time_windows")
	assert.Nil(t, err)
	assert.Equal(t, domain.TimeWindow{300, 400}, windows[0], "input order must be preserved")
}

func TestValidateServiceTimes(t *testing.T) {
	t.Run("both absent", func(t *testing.T) {
		warnings, err := ValidateServiceTimes(nil, nil, "job")
		assert.Nil(t, err)
		assert.Empty(t, warnings)
	})

	t.Run("setup longer than service warns but succeeds", func(t *testing.T) {
		warnings, err := ValidateServiceTimes(int64Ptr(600), int64Ptr(300), "job")
		assert.Nil(t, err)
		require.Len(t, warnings, 1)
		assert.Equal(t, "job", warnings[0].Field)
	})

	t.Run("setup longer than zero service does not warn", func(t *testing.T) {
		warnings, err := ValidateServiceTimes(int64Ptr(600), int64Ptr(0), "job")
		assert.Nil(t, err)
		assert.Empty(t, warnings)
	})

	t.Run("invalid setup fails", func(t *testing.T) {
		_, err := ValidateServiceTimes(int64Ptr(-1), nil, "job")
		require.NotNil(t, err)
		assert.Equal(t, "job.setup", err.Field)
	})
}

func TestValidateVehicleTimeConstraints(t *testing.T) {
	tests := []struct {
		name    string
		vehicle domain.Vehicle
		wantErr bool
	}{
		{
			name:    "no optional fields",
			vehicle: domain.Vehicle{},
		},
		{
			name: "valid window and travel time",
			vehicle: domain.Vehicle{
				TimeWindow:    &domain.TimeWindow{0, 28800},
				MaxTravelTime: int64Ptr(14400),
			},
		},
		{
			name: "inverted window",
			vehicle: domain.Vehicle{
				TimeWindow: &domain.TimeWindow{100, 50},
			},
			wantErr: true,
		},
		{
			name: "negative max travel time",
			vehicle: domain.Vehicle{
				MaxTravelTime: int64Ptr(-10),
			},
			wantErr: true,
		},
		{
			name: "valid break",
			vehicle: domain.Vehicle{
				Breaks: []domain.VehicleBreak{
					{ID: 1, Service: int64Ptr(900), TimeWindows: []domain.TimeWindow{{10000, 12000}}},
				},
			},
		},
		{
			name: "break without positive id",
			vehicle: domain.Vehicle{
				Breaks: []domain.VehicleBreak{{ID: 0}},
			},
			wantErr: true,
		},
		{
			name: "break with overlapping windows",
			vehicle: domain.Vehicle{
				Breaks: []domain.VehicleBreak{
					{ID: 1, TimeWindows: []domain.TimeWindow{{0, 100}, {50, 200}}},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVehicleTimeConstraints(&tt.vehicle)
			if tt.wantErr {
				assert.NotNil(t, err)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

// Helper function to create int64 pointers
func int64Ptr(v int64) *int64 {
	return &v
}
