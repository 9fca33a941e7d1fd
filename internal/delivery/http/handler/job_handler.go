package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vrp-microservice/internal/pkg/errors"
	"github.com/vrp-microservice/internal/pkg/utils"
	"github.com/vrp-microservice/internal/pkg/validator"
	"github.com/vrp-microservice/internal/usecase"
	"github.com/vrp-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// JobHandler - single-stop task endpoints
type JobHandler struct {
	jobUC  *usecase.JobUseCase
	logger *zap.Logger
}

func NewJobHandler(jobUC *usecase.JobUseCase, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		jobUC:  jobUC,
		logger: logger,
	}
}

// Create - register a job
// @Summary Create a job
// @Description Registers a delivery or pickup task. Non-fatal issues (such as setup exceeding service time) are returned as warnings.
// @Tags Jobs
// @Accept json
// @Produce json
// @Param request body dto.CreateJobRequest true "Job definition"
// @Success 200 {object} utils.SuccessResponse{data=dto.JobResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, warnings, err := h.jobUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccessWithWarnings(c, result, warnings, nil)
}

// BulkImport - import a batch of jobs
// @Summary Bulk import jobs
// @Description Validates every entry independently and inserts the valid ones. Per-index errors and warnings are reported in the response.
// @Tags Jobs
// @Accept json
// @Produce json
// @Param request body dto.BulkImportJobsRequest true "Batch of jobs"
// @Success 200 {object} utils.SuccessResponse{data=dto.BulkImportJobsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/jobs/bulk [post]
func (h *JobHandler) BulkImport(c *fiber.Ctx) error {
	var req dto.BulkImportJobsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.jobUC.BulkImport(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.TotalCount})
}

// GetByID - fetch one job
// @Summary Get a job
// @Tags Jobs
// @Produce json
// @Param id path string true "Job UUID"
// @Success 200 {object} utils.SuccessResponse{data=dto.JobResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/jobs/{id} [get]
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEntityID)
	}

	result, err := h.jobUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// ListByProject - list project jobs
// @Summary List jobs of a project
// @Tags Jobs
// @Produce json
// @Param project_id path string true "Project UUID"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.JobResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/projects/{project_id}/jobs [get]
func (h *JobHandler) ListByProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEntityID)
	}

	result, err := h.jobUC.ListByProject(c.Context(), projectID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result)})
}

// Delete - remove a job
// @Summary Delete a job
// @Tags Jobs
// @Param id path string true "Job UUID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEntityID)
	}

	if err := h.jobUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
