package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vrp-microservice/internal/pkg/errors"
	"github.com/vrp-microservice/internal/pkg/utils"
	"github.com/vrp-microservice/internal/pkg/validator"
	"github.com/vrp-microservice/internal/usecase"
	"github.com/vrp-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// PlanHandler - optimization run endpoints
type PlanHandler struct {
	planUC *usecase.PlanUseCase
	logger *zap.Logger
}

func NewPlanHandler(planUC *usecase.PlanUseCase, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{
		planUC: planUC,
		logger: logger,
	}
}

// Run - synchronous optimization
// @Summary Run an optimization
// @Description Loads the project fleet and tasks, solves and persists the plan. Route geometry is precision-rounded and simplified before storage. Mapping warnings are attached to the response.
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body dto.CreatePlanRequest true "Run parameters"
// @Success 200 {object} utils.SuccessResponse{data=dto.PlanResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/plans/run [post]
func (h *PlanHandler) Run(c *fiber.Ctx) error {
	var req dto.CreatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, warnings, err := h.planUC.Run(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccessWithWarnings(c, result, warnings, nil)
}

// Queue - asynchronous optimization
// @Summary Queue an optimization
// @Description Publishes the run request to the plan stream. A worker executes it and publishes the outcome to the done stream.
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body dto.QueuePlanRequest true "Run parameters"
// @Success 200 {object} utils.SuccessResponse{data=dto.QueuePlanResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/plans/queue [post]
func (h *PlanHandler) Queue(c *fiber.Ctx) error {
	var req dto.QueuePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.planUC.Queue(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// GetRun - fetch a stored run
// @Summary Get an optimization run
// @Tags Plans
// @Produce json
// @Param id path string true "Run UUID"
// @Success 200 {object} utils.SuccessResponse{data=dto.PlanResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/plans/{id} [get]
func (h *PlanHandler) GetRun(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEntityID)
	}

	result, err := h.planUC.GetRun(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// ListRuns - list runs of a project
// @Summary List optimization runs
// @Tags Plans
// @Produce json
// @Param project_id path string true "Project UUID"
// @Param limit query int false "Maximum number of runs" default(20)
// @Success 200 {object} utils.SuccessResponse{data=[]dto.PlanRunSummary}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/projects/{project_id}/plans [get]
func (h *PlanHandler) ListRuns(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEntityID)
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	result, err := h.planUC.ListRuns(c.Context(), projectID, limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result)})
}

// SolverHealth - solver reachability probe
// @Summary Check solver availability
// @Tags Plans
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.SolverHealthResponse}
// @Router /api/v1/plans/solver/health [get]
func (h *PlanHandler) SolverHealth(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.planUC.SolverHealth(c.Context()), nil)
}
