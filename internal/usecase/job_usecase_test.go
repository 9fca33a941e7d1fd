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

func TestJobUseCase_Create(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()

	t.Run("allocates next optimizer id", func(t *testing.T) {
		repo := new(MockJobRepository)
		uc := usecase.NewJobUseCase(repo, zap.NewNop())

		repo.On("MaxOptimizerID", ctx, projectID).Return(int64(7), nil)
		repo.On("Create", ctx, mock.MatchedBy(func(j *domain.Job) bool {
			return j.OptimizerID == 8
		})).Return(nil)

		resp, warnings, err := uc.Create(ctx, dto.CreateJobRequest{
			ProjectID: projectID.String(),
			JobInput: dto.JobInput{
				Name:     "drop",
				Location: &dto.Point{Lon: 28.1, Lat: -26.1},
				Delivery: []int64{100, 2, 1},
			},
		})

		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, int64(8), resp.OptimizerID)
	})

	t.Run("setup exceeding service warns but does not fail", func(t *testing.T) {
		repo := new(MockJobRepository)
		uc := usecase.NewJobUseCase(repo, zap.NewNop())

		repo.On("MaxOptimizerID", ctx, projectID).Return(int64(0), nil)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		setup, service := int64(600), int64(300)
		_, warnings, err := uc.Create(ctx, dto.CreateJobRequest{
			ProjectID: projectID.String(),
			JobInput: dto.JobInput{
				Name:        "drop",
				SetupTime:   &setup,
				ServiceTime: &service,
			},
		})

		require.NoError(t, err)
		assert.NotEmpty(t, warnings)
	})

	t.Run("overlapping time windows rejected", func(t *testing.T) {
		repo := new(MockJobRepository)
		uc := usecase.NewJobUseCase(repo, zap.NewNop())

		_, _, err := uc.Create(ctx, dto.CreateJobRequest{
			ProjectID: projectID.String(),
			JobInput: dto.JobInput{
				Name:        "drop",
				TimeWindows: [][]int64{{0, 3600}, {1800, 7200}},
			},
		})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestJobUseCase_BulkImport(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()

	t.Run("invalid entries reported, valid ones inserted", func(t *testing.T) {
		repo := new(MockJobRepository)
		uc := usecase.NewJobUseCase(repo, zap.NewNop())

		repo.On("MaxOptimizerID", ctx, projectID).Return(int64(10), nil)
		repo.On("CreateBatch", ctx, mock.MatchedBy(func(jobs []*domain.Job) bool {
			return len(jobs) == 2 &&
				jobs[0].OptimizerID == 11 &&
				jobs[1].OptimizerID == 12
		})).Return(nil)

		badPriority := int64(150)
		resp, err := uc.BulkImport(ctx, dto.BulkImportJobsRequest{
			ProjectID: projectID.String(),
			Jobs: []dto.JobInput{
				{Name: "a", Delivery: []int64{1, 1, 1}},
				{Name: "b", Priority: &badPriority},
				{Name: "c"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 3, resp.TotalCount)
		assert.Equal(t, 2, resp.SuccessCount)
		assert.Equal(t, 1, resp.ErrorCount)

		require.Len(t, resp.Results, 3)
		assert.NotEmpty(t, resp.Results[0].ID)
		assert.NotEmpty(t, resp.Results[1].Error)
		assert.Empty(t, resp.Results[1].ID)
		assert.NotEmpty(t, resp.Results[2].ID)
	})

	t.Run("empty valid set still calls batch with nothing", func(t *testing.T) {
		repo := new(MockJobRepository)
		uc := usecase.NewJobUseCase(repo, zap.NewNop())

		repo.On("MaxOptimizerID", ctx, projectID).Return(int64(0), nil)
		repo.On("CreateBatch", ctx, mock.Anything).Return(nil)

		resp, err := uc.BulkImport(ctx, dto.BulkImportJobsRequest{
			ProjectID: projectID.String(),
			Jobs: []dto.JobInput{
				{Name: "bad", Delivery: []int64{1, -1, 1}},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 0, resp.SuccessCount)
		assert.Equal(t, 1, resp.ErrorCount)
	})
}
