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

// VehicleHandler - fleet vehicle endpoints
type VehicleHandler struct {
	vehicleUC *usecase.VehicleUseCase
	logger    *zap.Logger
}

func NewVehicleHandler(vehicleUC *usecase.VehicleUseCase, logger *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		vehicleUC: vehicleUC,
		logger:    logger,
	}
}

// Create - register a vehicle
// @Summary Create a vehicle
// @Description Registers a fleet vehicle. Costs are given in major currency units and stored in cents. A solver id is allocated automatically.
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param request body dto.CreateVehicleRequest true "Vehicle definition"
// @Success 200 {object} utils.SuccessResponse{data=dto.VehicleResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/vehicles [post]
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.vehicleUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// GetByID - fetch one vehicle
// @Summary Get a vehicle
// @Tags Vehicles
// @Produce json
// @Param id path string true "Vehicle UUID"
// @Success 200 {object} utils.SuccessResponse{data=dto.VehicleResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/vehicles/{id} [get]
func (h *VehicleHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEntityID)
	}

	result, err := h.vehicleUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// ListByProject - list project vehicles
// @Summary List vehicles of a project
// @Tags Vehicles
// @Produce json
// @Param project_id path string true "Project UUID"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.VehicleResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/projects/{project_id}/vehicles [get]
func (h *VehicleHandler) ListByProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEntityID)
	}

	result, err := h.vehicleUC.ListByProject(c.Context(), projectID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result)})
}

// Delete - remove a vehicle
// @Summary Delete a vehicle
// @Tags Vehicles
// @Param id path string true "Vehicle UUID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEntityID)
	}

	if err := h.vehicleUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
