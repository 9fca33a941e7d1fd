package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vrp-microservice/internal/domain"
	"github.com/vrp-microservice/internal/usecase"
	"github.com/vrp-microservice/internal/usecase/dto"
)

func TestVehicleUseCase_Create(t *testing.T) {
	projectID := uuid.New()

	t.Run("successful create converts costs and allocates optimizer id", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		uc := usecase.NewVehicleUseCase(repo, zap.NewNop())

		repo.On("MaxOptimizerID", mock.Anything, projectID).Return(int64(4), nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.Vehicle) bool {
			return v.OptimizerID == 5 &&
				v.CostPerHour != nil && *v.CostPerHour == 3650 &&
				v.TimeWindow != nil && v.TimeWindow.Start() == 0 && v.TimeWindow.End() == 28800
		})).Return(nil)

		resp, err := uc.Create(context.Background(), dto.CreateVehicleRequest{
			ProjectID:   projectID.String(),
			Name:        "truck-1",
			Start:       &dto.Point{Lon: 28.0473, Lat: -26.2041},
			Capacity:    []int64{100, 0, 50},
			TimeWindow:  []int64{0, 28800},
			CostPerHour: float64Ptr(36.50),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.OptimizerID)
		assert.Equal(t, []int64{0, 28800}, resp.TimeWindow)
		require.NotNil(t, resp.CostPerHour)
		assert.Equal(t, int64(3650), *resp.CostPerHour)
		repo.AssertExpectations(t)
	})

	t.Run("rejects capacity of wrong length", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		uc := usecase.NewVehicleUseCase(repo, zap.NewNop())

		_, err := uc.Create(context.Background(), dto.CreateVehicleRequest{
			ProjectID: projectID.String(),
			Name:      "truck-1",
			Capacity:  []int64{100, 50},
		})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects negative cost", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		uc := usecase.NewVehicleUseCase(repo, zap.NewNop())

		_, err := uc.Create(context.Background(), dto.CreateVehicleRequest{
			ProjectID: projectID.String(),
			Name:      "truck-1",
			CostFixed: float64Ptr(-10),
		})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects inverted time window", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		uc := usecase.NewVehicleUseCase(repo, zap.NewNop())

		_, err := uc.Create(context.Background(), dto.CreateVehicleRequest{
			ProjectID:  projectID.String(),
			Name:       "truck-1",
			TimeWindow: []int64{3600, 0},
		})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects break with overlapping windows", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		uc := usecase.NewVehicleUseCase(repo, zap.NewNop())

		_, err := uc.Create(context.Background(), dto.CreateVehicleRequest{
			ProjectID: projectID.String(),
			Name:      "truck-1",
			Breaks: []dto.BreakInput{
				{
					ID:          1,
					Service:     int64Ptr(900),
					TimeWindows: [][]int64{{0, 3600}, {1800, 7200}},
				},
			},
		})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("invalid project id", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		uc := usecase.NewVehicleUseCase(repo, zap.NewNop())

		_, err := uc.Create(context.Background(), dto.CreateVehicleRequest{
			ProjectID: "not-a-uuid",
			Name:      "truck-1",
		})

		require.Error(t, err)
		repo.AssertNotCalled(t, "MaxOptimizerID")
	})
}

func TestVehicleUseCase_Delete(t *testing.T) {
	repo := new(MockVehicleRepository)
	uc := usecase.NewVehicleUseCase(repo, zap.NewNop())

	id := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(nil)

	require.NoError(t, uc.Delete(context.Background(), id))
	repo.AssertExpectations(t)
}

func float64Ptr(v float64) *float64 {
	return &v
}
