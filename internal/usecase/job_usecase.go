package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/vrp-microservice/internal/domain"
	"github.com/vrp-microservice/internal/domain/repository"
	"github.com/vrp-microservice/internal/pkg/errors"
	"github.com/vrp-microservice/internal/usecase/dto"
	"github.com/vrp-microservice/internal/vrp"
	"go.uber.org/zap"
)

type JobUseCase struct {
	jobRepo repository.JobRepository
	logger  *zap.Logger
}

func NewJobUseCase(
	jobRepo repository.JobRepository,
	logger *zap.Logger,
) *JobUseCase {
	return &JobUseCase{
		jobRepo: jobRepo,
		logger:  logger,
	}
}

func (uc *JobUseCase) Create(ctx context.Context, req dto.CreateJobRequest) (*dto.JobResponse, []errors.Warning, error) {
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return nil, nil, errors.ErrInvalidRequest
	}

	job, warnings, vErr := buildJob(projectID, req.JobInput)
	if vErr != nil {
		return nil, nil, vErr
	}

	maxID, err := uc.jobRepo.MaxOptimizerID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	job.OptimizerID = vrp.NextOptimizerID(maxID)

	if err := uc.jobRepo.Create(ctx, job); err != nil {
		uc.logger.Error("Failed to create job",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
		return nil, nil, err
	}

	uc.logger.Info("Job created",
		zap.String("id", job.ID.String()),
		zap.Int64("optimizer_id", job.OptimizerID))

	return dto.ToJobResponse(job), warnings, nil
}

// BulkImport validates every entry and inserts the valid ones in a single
// transaction. Invalid entries are reported per index, they never block the
// rest of the batch.
func (uc *JobUseCase) BulkImport(ctx context.Context, req dto.BulkImportJobsRequest) (*dto.BulkImportJobsResponse, error) {
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return nil, errors.ErrInvalidRequest
	}

	maxID, err := uc.jobRepo.MaxOptimizerID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	nextID := vrp.NextOptimizerID(maxID)

	jobs := make([]*domain.Job, len(req.Jobs))
	results := vrp.ValidateBatch(len(req.Jobs), func(i int) ([]errors.Warning, error) {
		job, warnings, vErr := buildJob(projectID, req.Jobs[i])
		if vErr != nil {
			return warnings, vErr
		}
		jobs[i] = job
		return warnings, nil
	})

	resp := &dto.BulkImportJobsResponse{
		TotalCount: len(req.Jobs),
	}

	var toInsert []*domain.Job
	for _, res := range results {
		item := dto.BulkImportItemResult{Index: res.Index}
		for _, w := range res.Warnings {
			item.Warnings = append(item.Warnings, w.Message)
		}
		if !res.OK() {
			item.Error = res.Err.Error()
			resp.ErrorCount++
			resp.Results = append(resp.Results, item)
			continue
		}

		job := jobs[res.Index]
		job.OptimizerID = nextID
		nextID++
		toInsert = append(toInsert, job)

		item.ID = job.ID.String()
		resp.SuccessCount++
		resp.Results = append(resp.Results, item)
	}

	if err := uc.jobRepo.CreateBatch(ctx, toInsert); err != nil {
		uc.logger.Error("Failed to bulk import jobs",
			zap.String("project_id", projectID.String()),
			zap.Int("count", len(toInsert)),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Jobs bulk imported",
		zap.String("project_id", projectID.String()),
		zap.Int("success", resp.SuccessCount),
		zap.Int("errors", resp.ErrorCount))

	return resp, nil
}

func (uc *JobUseCase) GetByID(ctx context.Context, id uuid.UUID) (*dto.JobResponse, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToJobResponse(job), nil
}

func (uc *JobUseCase) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*dto.JobResponse, error) {
	jobs, err := uc.jobRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		result = append(result, dto.ToJobResponse(j))
	}
	return result, nil
}

func (uc *JobUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.jobRepo.Delete(ctx, id)
}

func buildJob(projectID uuid.UUID, in dto.JobInput) (*domain.Job, []errors.Warning, *errors.ValidationError) {
	job := &domain.Job{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Name:        in.Name,
		SetupTime:   in.SetupTime,
		ServiceTime: in.ServiceTime,
		Delivery:    in.Delivery,
		Pickup:      in.Pickup,
		Skills:      in.Skills,
		Priority:    in.Priority,
	}

	if in.Location != nil {
		job.Location = &domain.Coordinate{Lon: in.Location.Lon, Lat: in.Location.Lat}
	}

	if len(in.Delivery) > 0 {
		if vErr := vrp.ValidateCapacity(in.Delivery, "delivery"); vErr != nil {
			return nil, nil, vErr
		}
	}
	if len(in.Pickup) > 0 {
		if vErr := vrp.ValidateCapacity(in.Pickup, "pickup"); vErr != nil {
			return nil, nil, vErr
		}
	}
	if in.Priority != nil {
		if vErr := vrp.ValidatePriority(*in.Priority, "priority"); vErr != nil {
			return nil, nil, vErr
		}
	}

	warnings, vErr := vrp.ValidateServiceTimes(in.SetupTime, in.ServiceTime, "service_time")
	if vErr != nil {
		return nil, warnings, vErr
	}

	windows, vErr := vrp.ConvertTimeWindows(in.TimeWindows, "time_windows")
	if vErr != nil {
		return nil, warnings, vErr
	}
	if vErr := vrp.ValidateTimeWindowSet(windows, "time_windows"); vErr != nil {
		return nil, warnings, vErr
	}
	job.TimeWindows = windows

	return job, warnings, nil
}
