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

type VehicleUseCase struct {
	vehicleRepo repository.VehicleRepository
	logger      *zap.Logger
}

func NewVehicleUseCase(
	vehicleRepo repository.VehicleRepository,
	logger *zap.Logger,
) *VehicleUseCase {
	return &VehicleUseCase{
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

func (uc *VehicleUseCase) Create(ctx context.Context, req dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return nil, errors.ErrInvalidRequest
	}

	vehicle, vErr := uc.buildVehicle(projectID, req)
	if vErr != nil {
		return nil, vErr
	}

	maxID, err := uc.vehicleRepo.MaxOptimizerID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	vehicle.OptimizerID = vrp.NextOptimizerID(maxID)

	if err := uc.vehicleRepo.Create(ctx, vehicle); err != nil {
		uc.logger.Error("Failed to create vehicle",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Vehicle created",
		zap.String("id", vehicle.ID.String()),
		zap.Int64("optimizer_id", vehicle.OptimizerID))

	return dto.ToVehicleResponse(vehicle), nil
}

func (uc *VehicleUseCase) GetByID(ctx context.Context, id uuid.UUID) (*dto.VehicleResponse, error) {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToVehicleResponse(vehicle), nil
}

func (uc *VehicleUseCase) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*dto.VehicleResponse, error) {
	vehicles, err := uc.vehicleRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		result = append(result, dto.ToVehicleResponse(v))
	}
	return result, nil
}

func (uc *VehicleUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.vehicleRepo.Delete(ctx, id)
}

// buildVehicle validates the request and converts it to storage form:
// dollar costs to cents, window pairs to TimeWindow values.
func (uc *VehicleUseCase) buildVehicle(projectID uuid.UUID, req dto.CreateVehicleRequest) (*domain.Vehicle, error) {
	vehicle := &domain.Vehicle{
		ID:            uuid.New(),
		ProjectID:     projectID,
		Name:          req.Name,
		Capacity:      req.Capacity,
		Skills:        req.Skills,
		MaxDistance:   req.MaxDistance,
		MaxTravelTime: req.MaxTravelTime,
		Profile:       req.Profile,
	}

	if req.Start != nil {
		vehicle.Start = &domain.Coordinate{Lon: req.Start.Lon, Lat: req.Start.Lat}
	}
	if req.End != nil {
		vehicle.End = &domain.Coordinate{Lon: req.End.Lon, Lat: req.End.Lat}
	}

	if len(req.Capacity) > 0 {
		if vErr := vrp.ValidateCapacity(req.Capacity, "capacity"); vErr != nil {
			return nil, vErr
		}
	}

	if req.TimeWindow != nil {
		windows, vErr := vrp.ConvertTimeWindows([][]int64{req.TimeWindow}, "time_window")
		if vErr != nil {
			return nil, vErr
		}
		vehicle.TimeWindow = &windows[0]
	}

	var vErr *errors.ValidationError
	if vehicle.CostFixed, vErr = convertOptionalCost(req.CostFixed, "cost_fixed"); vErr != nil {
		return nil, vErr
	}
	if vehicle.CostPerHour, vErr = convertOptionalCost(req.CostPerHour, "cost_per_hour"); vErr != nil {
		return nil, vErr
	}
	if vehicle.CostPerKm, vErr = convertOptionalCost(req.CostPerKm, "cost_per_km"); vErr != nil {
		return nil, vErr
	}

	for _, b := range req.Breaks {
		windows, vErr := vrp.ConvertTimeWindows(b.TimeWindows, "breaks.time_windows")
		if vErr != nil {
			return nil, vErr
		}
		vehicle.Breaks = append(vehicle.Breaks, domain.VehicleBreak{
			ID:          b.ID,
			Service:     b.Service,
			TimeWindows: windows,
			Description: b.Description,
		})
	}

	if vErr := vrp.ValidateVehicleTimeConstraints(vehicle); vErr != nil {
		return nil, vErr
	}

	return vehicle, nil
}

func convertOptionalCost(dollars *float64, field string) (*int64, *errors.ValidationError) {
	if dollars == nil {
		return nil, nil
	}
	cents, vErr := vrp.ValidateAndConvertCost(*dollars, field)
	if vErr != nil {
		return nil, vErr
	}
	return &cents, nil
}
