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

type ShipmentUseCase struct {
	shipmentRepo repository.ShipmentRepository
	logger       *zap.Logger
}

func NewShipmentUseCase(
	shipmentRepo repository.ShipmentRepository,
	logger *zap.Logger,
) *ShipmentUseCase {
	return &ShipmentUseCase{
		shipmentRepo: shipmentRepo,
		logger:       logger,
	}
}

func (uc *ShipmentUseCase) Create(ctx context.Context, req dto.CreateShipmentRequest) (*dto.ShipmentResponse, []errors.Warning, error) {
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return nil, nil, errors.ErrInvalidRequest
	}

	shipment, warnings, vErr := buildShipment(projectID, req)
	if vErr != nil {
		return nil, nil, vErr
	}

	maxID, err := uc.shipmentRepo.MaxOptimizerID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	shipment.OptimizerID = vrp.NextOptimizerID(maxID)

	if err := uc.shipmentRepo.Create(ctx, shipment); err != nil {
		uc.logger.Error("Failed to create shipment",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
		return nil, nil, err
	}

	uc.logger.Info("Shipment created",
		zap.String("id", shipment.ID.String()),
		zap.Int64("optimizer_id", shipment.OptimizerID))

	return dto.ToShipmentResponse(shipment), warnings, nil
}

func (uc *ShipmentUseCase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ShipmentResponse, error) {
	shipment, err := uc.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToShipmentResponse(shipment), nil
}

func (uc *ShipmentUseCase) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*dto.ShipmentResponse, error) {
	shipments, err := uc.shipmentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		result = append(result, dto.ToShipmentResponse(s))
	}
	return result, nil
}

func (uc *ShipmentUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.shipmentRepo.Delete(ctx, id)
}

func buildShipment(projectID uuid.UUID, req dto.CreateShipmentRequest) (*domain.Shipment, []errors.Warning, *errors.ValidationError) {
	shipment := &domain.Shipment{
		ID:              uuid.New(),
		ProjectID:       projectID,
		Name:            req.Name,
		Amount:          req.Amount,
		Skills:          req.Skills,
		Priority:        req.Priority,
		PickupSetup:     req.Pickup.Setup,
		PickupService:   req.Pickup.Service,
		DeliverySetup:   req.Delivery.Setup,
		DeliveryService: req.Delivery.Service,
	}

	if req.Pickup.Location != nil {
		shipment.PickupLocation = &domain.Coordinate{Lon: req.Pickup.Location.Lon, Lat: req.Pickup.Location.Lat}
	}
	if req.Delivery.Location != nil {
		shipment.DeliveryLocation = &domain.Coordinate{Lon: req.Delivery.Location.Lon, Lat: req.Delivery.Location.Lat}
	}

	if len(req.Amount) > 0 {
		if vErr := vrp.ValidateCapacity(req.Amount, "amount"); vErr != nil {
			return nil, nil, vErr
		}
	}
	if req.Priority != nil {
		if vErr := vrp.ValidatePriority(*req.Priority, "priority"); vErr != nil {
			return nil, nil, vErr
		}
	}

	var warnings []errors.Warning

	pickupWarnings, vErr := vrp.ValidateServiceTimes(req.Pickup.Setup, req.Pickup.Service, "pickup.service")
	warnings = append(warnings, pickupWarnings...)
	if vErr != nil {
		return nil, warnings, vErr
	}

	deliveryWarnings, vErr := vrp.ValidateServiceTimes(req.Delivery.Setup, req.Delivery.Service, "delivery.service")
	warnings = append(warnings, deliveryWarnings...)
	if vErr != nil {
		return nil, warnings, vErr
	}

	pickupWindows, vErr := vrp.ConvertTimeWindows(req.Pickup.TimeWindows, "pickup.time_windows")
	if vErr != nil {
		return nil, warnings, vErr
	}
	if vErr := vrp.ValidateTimeWindowSet(pickupWindows, "pickup.time_windows"); vErr != nil {
		return nil, warnings, vErr
	}
	shipment.PickupTimeWindows = pickupWindows

	deliveryWindows, vErr := vrp.ConvertTimeWindows(req.Delivery.TimeWindows, "delivery.time_windows")
	if vErr != nil {
		return nil, warnings, vErr
	}
	if vErr := vrp.ValidateTimeWindowSet(deliveryWindows, "delivery.time_windows"); vErr != nil {
		return nil, warnings, vErr
	}
	shipment.DeliveryTimeWindows = deliveryWindows

	return shipment, warnings, nil
}
