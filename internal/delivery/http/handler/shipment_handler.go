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

// ShipmentHandler - pickup/delivery pair endpoints
type ShipmentHandler struct {
	shipmentUC *usecase.ShipmentUseCase
	logger     *zap.Logger
}

func NewShipmentHandler(shipmentUC *usecase.ShipmentUseCase, logger *zap.Logger) *ShipmentHandler {
	return &ShipmentHandler{
		shipmentUC: shipmentUC,
		logger:     logger,
	}
}

// Create - register a shipment
// @Summary Create a shipment
// @Description Registers a paired pickup and delivery that must ride on the same vehicle.
// @Tags Shipments
// @Accept json
// @Produce json
// @Param request body dto.CreateShipmentRequest true "Shipment definition"
// @Success 200 {object} utils.SuccessResponse{data=dto.ShipmentResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/shipments [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, warnings, err := h.shipmentUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccessWithWarnings(c, result, warnings, nil)
}

// GetByID - fetch one shipment
// @Summary Get a shipment
// @Tags Shipments
// @Produce json
// @Param id path string true "Shipment UUID"
// @Success 200 {object} utils.SuccessResponse{data=dto.ShipmentResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/shipments/{id} [get]
func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEntityID)
	}

	result, err := h.shipmentUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// ListByProject - list project shipments
// @Summary List shipments of a project
// @Tags Shipments
// @Produce json
// @Param project_id path string true "Project UUID"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.ShipmentResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/projects/{project_id}/shipments [get]
func (h *ShipmentHandler) ListByProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEntityID)
	}

	result, err := h.shipmentUC.ListByProject(c.Context(), projectID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result)})
}

// Delete - remove a shipment
// @Summary Delete a shipment
// @Tags Shipments
// @Param id path string true "Shipment UUID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/shipments/{id} [delete]
func (h *ShipmentHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEntityID)
	}

	if err := h.shipmentUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
