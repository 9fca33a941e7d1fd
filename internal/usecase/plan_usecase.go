package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/vrp-microservice/internal/domain"
	"github.com/vrp-microservice/internal/domain/repository"
	"github.com/vrp-microservice/internal/geometry"
	"github.com/vrp-microservice/internal/pkg/errors"
	"github.com/vrp-microservice/internal/usecase/dto"
	"github.com/vrp-microservice/internal/vrp"
	"go.uber.org/zap"
)

const defaultCurrencyCode = "USD"

type PlanUseCase struct {
	vehicleRepo  repository.VehicleRepository
	jobRepo      repository.JobRepository
	shipmentRepo repository.ShipmentRepository
	planRepo     repository.PlanRepository
	solverRepo   repository.SolverRepository
	cacheRepo    repository.SolutionCacheRepository
	streamRepo   repository.StreamRepository
	engine       *geometry.Engine
	cacheTTL     time.Duration
	threads      int
	logger       *zap.Logger
}

func NewPlanUseCase(
	vehicleRepo repository.VehicleRepository,
	jobRepo repository.JobRepository,
	shipmentRepo repository.ShipmentRepository,
	planRepo repository.PlanRepository,
	solverRepo repository.SolverRepository,
	cacheRepo repository.SolutionCacheRepository,
	streamRepo repository.StreamRepository,
	engine *geometry.Engine,
	cacheTTL time.Duration,
	threads int,
	logger *zap.Logger,
) *PlanUseCase {
	return &PlanUseCase{
		vehicleRepo:  vehicleRepo,
		jobRepo:      jobRepo,
		shipmentRepo: shipmentRepo,
		planRepo:     planRepo,
		solverRepo:   solverRepo,
		cacheRepo:    cacheRepo,
		streamRepo:   streamRepo,
		engine:       engine,
		cacheTTL:     cacheTTL,
		threads:      threads,
		logger:       logger,
	}
}

// Run executes one synchronous optimization: load the project entities, map
// them to solver form, solve (or reuse a cached solution), normalize route
// geometry and persist the outcome.
func (uc *PlanUseCase) Run(ctx context.Context, req dto.CreatePlanRequest) (*dto.PlanResponse, []errors.Warning, error) {
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return nil, nil, errors.ErrInvalidRequest
	}

	threads := req.Threads
	if threads == 0 {
		threads = uc.threads
	}

	solverReq, warnings, counts, err := uc.buildSolverRequest(ctx, projectID, req.WithGeometry, threads)
	if err != nil {
		return nil, warnings, err
	}

	solverResp, err := uc.solve(ctx, solverReq)
	if solverResp == nil {
		if err != nil {
			uc.logger.Error("Solver call failed",
				zap.String("project_id", projectID.String()),
				zap.Error(err))
			return nil, warnings, errors.ErrSolverFailed
		}
		return nil, warnings, errors.ErrSolverFailed
	}

	run, routes, unassigned := uc.persistOutcome(ctx, projectID, solverResp, counts)

	resp := uc.buildPlanResponse(run, routes, unassigned)
	return resp, warnings, nil
}

// Queue publishes an asynchronous run request to the plan stream. The worker
// picks it up and executes ProcessQueued.
func (uc *PlanUseCase) Queue(ctx context.Context, req dto.QueuePlanRequest) (*dto.QueuePlanResponse, error) {
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return nil, errors.ErrInvalidRequest
	}

	event := domain.PlanQueuedEvent{
		RequestID:    uuid.New(),
		ProjectID:    projectID,
		Threads:      req.Threads,
		WithGeometry: req.WithGeometry,
	}

	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamPlanQueue, event); err != nil {
		uc.logger.Error("Failed to queue plan request",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Plan request queued",
		zap.String("request_id", event.RequestID.String()),
		zap.String("project_id", projectID.String()))

	return &dto.QueuePlanResponse{
		RequestID: event.RequestID.String(),
		Queued:    true,
	}, nil
}

// ProcessQueued runs an optimization for a queued event and publishes the
// outcome to the done stream. Called from the stream worker.
func (uc *PlanUseCase) ProcessQueued(ctx context.Context, event domain.PlanQueuedEvent) error {
	resp, _, err := uc.Run(ctx, dto.CreatePlanRequest{
		ProjectID:    event.ProjectID.String(),
		WithGeometry: event.WithGeometry,
		Threads:      event.Threads,
	})

	done := domain.PlanDoneEvent{
		RequestID: event.RequestID,
	}
	if err != nil {
		done.Status = domain.RunStatusError
		done.Error = err.Error()
	} else {
		done.Status = resp.Status
		if runID, parseErr := uuid.Parse(resp.RunID); parseErr == nil {
			done.PlanRunID = runID
		}
	}

	if pubErr := uc.streamRepo.PublishToStream(ctx, domain.StreamPlanDone, done); pubErr != nil {
		uc.logger.Error("Failed to publish plan done event",
			zap.String("request_id", event.RequestID.String()),
			zap.Error(pubErr))
	}

	return err
}

func (uc *PlanUseCase) GetRun(ctx context.Context, id uuid.UUID) (*dto.PlanResponse, error) {
	run, err := uc.planRepo.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}

	summaries, err := uc.planRepo.ListRouteSummaries(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.PlanResponse{
		RunID:            run.ID.String(),
		ProjectID:        run.ProjectID.String(),
		Status:           run.Status,
		TotalCost:        run.TotalCost,
		TotalDistance:    run.TotalDistance,
		TotalDuration:    run.TotalDuration,
		TotalRoutes:      run.TotalRoutes,
		TotalUnassigned:  run.TotalUnassigned,
		ComputingTimeMS:  run.ComputingTimeMS,
		ComputingTimeSec: run.ComputingTimeSec,
		CurrencyCode:     run.CurrencyCode,
		CreatedAt:        run.CreatedAt,
	}

	for _, s := range summaries {
		resp.Routes = append(resp.Routes, dto.RouteDTO{
			VehicleID:   s.VehicleID,
			Cost:        s.Cost,
			Distance:    s.Distance,
			Duration:    s.Duration,
			WaitingTime: s.WaitingTime,
			ServiceTime: s.ServiceTime,
			SetupTime:   s.SetupTime,
			Priority:    s.Priority,
			Deliveries:  s.Deliveries,
			Pickups:     s.Pickups,
			Geometry:    s.Geometry,
		})
	}

	return resp, nil
}

func (uc *PlanUseCase) ListRuns(ctx context.Context, projectID uuid.UUID, limit int) ([]dto.PlanRunSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	runs, err := uc.planRepo.ListRuns(ctx, projectID, limit)
	if err != nil {
		return nil, err
	}

	result := make([]dto.PlanRunSummary, 0, len(runs))
	for _, run := range runs {
		result = append(result, dto.ToPlanRunSummary(run))
	}
	return result, nil
}

func (uc *PlanUseCase) SolverHealth(ctx context.Context) *dto.SolverHealthResponse {
	if uc.solverRepo.Health(ctx) {
		return &dto.SolverHealthResponse{Healthy: true, Status: "ok"}
	}
	return &dto.SolverHealthResponse{Healthy: false, Status: "unreachable"}
}

type entityCounts struct {
	vehicles  int
	jobs      int
	shipments int
}

// buildSolverRequest loads the project fleet and tasks and maps them to
// solver wire form. A single invalid entity fails the whole request, the
// solver would reject it anyway.
func (uc *PlanUseCase) buildSolverRequest(
	ctx context.Context,
	projectID uuid.UUID,
	withGeometry bool,
	threads int,
) (*domain.SolverRequest, []errors.Warning, entityCounts, error) {
	var counts entityCounts

	vehicles, err := uc.vehicleRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, nil, counts, err
	}
	jobs, err := uc.jobRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, nil, counts, err
	}
	shipments, err := uc.shipmentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, nil, counts, err
	}

	counts = entityCounts{
		vehicles:  len(vehicles),
		jobs:      len(jobs),
		shipments: len(shipments),
	}

	req := &domain.SolverRequest{
		Options: &domain.SolverOptions{
			Geometry: withGeometry,
			Threads:  threads,
		},
	}

	var warnings []errors.Warning

	for _, v := range vehicles {
		sv, vErr := vrp.ToSolverVehicle(v)
		if vErr != nil {
			return nil, warnings, counts, vErr
		}
		req.Vehicles = append(req.Vehicles, *sv)
	}
	for _, j := range jobs {
		sj, jobWarnings, vErr := vrp.ToSolverJob(j)
		warnings = append(warnings, jobWarnings...)
		if vErr != nil {
			return nil, warnings, counts, vErr
		}
		req.Jobs = append(req.Jobs, *sj)
	}
	for _, s := range shipments {
		ss, shipWarnings, vErr := vrp.ToSolverShipment(s)
		warnings = append(warnings, shipWarnings...)
		if vErr != nil {
			return nil, warnings, counts, vErr
		}
		req.Shipments = append(req.Shipments, *ss)
	}

	return req, warnings, counts, nil
}

// solve checks the solution cache before calling the solver. A solver
// response with a non-zero code is still returned so the run can be
// persisted with the mapped status.
func (uc *PlanUseCase) solve(ctx context.Context, req *domain.SolverRequest) (*domain.SolverResponse, error) {
	key := requestHash(req)

	if cached, err := uc.cacheRepo.GetSolution(ctx, key); err == nil && cached != nil {
		uc.logger.Info("Using cached solution", zap.String("key", key))
		return cached, nil
	}

	resp, err := uc.solverRepo.Solve(ctx, req)
	if resp != nil && resp.Code == 0 {
		if cacheErr := uc.cacheRepo.SetSolution(ctx, key, resp, uc.cacheTTL); cacheErr != nil {
			uc.logger.Warn("Failed to cache solution", zap.Error(cacheErr))
		}
	}

	return resp, err
}

// persistOutcome stores the run, its route summaries, steps and unassigned
// tasks. Persistence failures are logged but do not fail the run, the caller
// still gets the solver outcome.
func (uc *PlanUseCase) persistOutcome(
	ctx context.Context,
	projectID uuid.UUID,
	solverResp *domain.SolverResponse,
	counts entityCounts,
) (*domain.PlanRun, []dto.RouteDTO, []dto.UnassignedDTO) {
	run := &domain.PlanRun{
		ID:               uuid.New(),
		ProjectID:        projectID,
		Status:           domain.RunStatusFromCode(solverResp.Code),
		SolverCode:       solverResp.Code,
		TotalCost:        solverResp.Summary.Cost,
		TotalRoutes:      len(solverResp.Routes),
		TotalUnassigned:  len(solverResp.Unassigned),
		TotalDistance:    solverResp.Summary.Distance,
		TotalDuration:    solverResp.Summary.Duration,
		TotalWaiting:     solverResp.Summary.WaitingTime,
		TotalService:     solverResp.Summary.Service,
		TotalSetup:       solverResp.Summary.Setup,
		VehicleCount:     counts.vehicles,
		JobCount:         counts.jobs,
		ShipmentCount:    counts.shipments,
		ComputingTimeMS:  solverResp.Summary.ComputingTimes.Total,
		ComputingTimeSec: vrp.MillisecondsToSeconds(solverResp.Summary.ComputingTimes.Total),
		CurrencyCode:     defaultCurrencyCode,
		CreatedAt:        time.Now().UTC(),
	}
	if solverResp.Error != "" {
		run.ErrorMessage = &solverResp.Error
	}

	if err := uc.planRepo.CreateRun(ctx, run); err != nil {
		uc.logger.Error("Failed to persist plan run",
			zap.String("id", run.ID.String()), zap.Error(err))
	}

	var routes []dto.RouteDTO
	for _, route := range solverResp.Routes {
		routes = append(routes, uc.persistRoute(ctx, run.ID, route))
	}

	var unassigned []dto.UnassignedDTO
	var unassignedRows []*domain.UnassignedTask
	for _, u := range solverResp.Unassigned {
		row := &domain.UnassignedTask{
			ID:          uuid.New(),
			PlanRunID:   run.ID,
			OptimizerID: u.ID,
			TaskType:    u.Type,
			Description: u.Description,
		}
		item := dto.UnassignedDTO{
			OptimizerID: u.ID,
			TaskType:    u.Type,
			Description: u.Description,
		}
		if c := vrp.ArrayToCoords(u.Location); c != nil {
			row.Lon, row.Lat = &c.Lon, &c.Lat
			item.Location = &dto.Point{Lon: c.Lon, Lat: c.Lat}
		}
		unassignedRows = append(unassignedRows, row)
		unassigned = append(unassigned, item)
	}

	if err := uc.planRepo.CreateUnassigned(ctx, unassignedRows); err != nil {
		uc.logger.Error("Failed to persist unassigned tasks",
			zap.String("plan_run_id", run.ID.String()), zap.Error(err))
	}

	return run, routes, unassigned
}

func (uc *PlanUseCase) persistRoute(ctx context.Context, runID uuid.UUID, route domain.SolverRoute) dto.RouteDTO {
	summary := &domain.RouteSummary{
		ID:          uuid.New(),
		PlanRunID:   runID,
		VehicleID:   route.Vehicle,
		Cost:        route.Cost,
		Distance:    route.Distance,
		Duration:    route.Duration,
		WaitingTime: route.WaitingTime,
		ServiceTime: route.Service,
		SetupTime:   route.Setup,
		Priority:    route.Priority,
		Deliveries:  route.Delivery,
		Pickups:     route.Pickup,
	}

	if route.Geometry != "" {
		optimized, err := uc.engine.Optimize(route.Geometry)
		if err != nil {
			// Geometry is decorative, keep the raw polyline on failure
			uc.logger.Warn("Geometry normalization failed, keeping original",
				zap.Int64("vehicle", route.Vehicle),
				zap.Error(err))
			optimized = route.Geometry
		}
		summary.Geometry = &optimized
	}

	if err := uc.planRepo.CreateRouteSummary(ctx, summary); err != nil {
		uc.logger.Error("Failed to persist route summary",
			zap.Int64("vehicle", route.Vehicle), zap.Error(err))
	}

	routeDTO := dto.RouteDTO{
		VehicleID:   route.Vehicle,
		Cost:        route.Cost,
		Distance:    route.Distance,
		Duration:    route.Duration,
		WaitingTime: route.WaitingTime,
		ServiceTime: route.Service,
		SetupTime:   route.Setup,
		Priority:    route.Priority,
		Deliveries:  route.Delivery,
		Pickups:     route.Pickup,
		Geometry:    summary.Geometry,
	}

	var steps []*domain.RouteStep
	for i, step := range route.Steps {
		row := &domain.RouteStep{
			ID:             uuid.New(),
			RouteSummaryID: summary.ID,
			VehicleID:      route.Vehicle,
			StepType:       step.Type,
			StepOrder:      i,
			JobID:          step.ID,
			ArrivalTime:    step.Arrival,
			SetupTime:      step.Setup,
			ServiceTime:    step.Service,
			WaitingTime:    step.WaitingTime,
			Distance:       step.Distance,
			Duration:       step.Duration,
			Load:           step.Load,
		}
		if step.Description != "" {
			row.Description = &step.Description
		}

		stepDTO := dto.RouteStepDTO{
			Type:        step.Type,
			JobID:       step.ID,
			Arrival:     step.Arrival,
			Setup:       step.Setup,
			Service:     step.Service,
			WaitingTime: step.WaitingTime,
			Distance:    step.Distance,
			Duration:    step.Duration,
			Load:        step.Load,
			Description: step.Description,
		}
		if c := vrp.ArrayToCoords(step.Location); c != nil {
			row.Lon, row.Lat = &c.Lon, &c.Lat
			stepDTO.Location = &dto.Point{Lon: c.Lon, Lat: c.Lat}
		}

		steps = append(steps, row)
		routeDTO.Steps = append(routeDTO.Steps, stepDTO)
	}

	if err := uc.planRepo.CreateRouteSteps(ctx, steps); err != nil {
		uc.logger.Error("Failed to persist route steps",
			zap.Int64("vehicle", route.Vehicle), zap.Error(err))
	}

	return routeDTO
}

func (uc *PlanUseCase) buildPlanResponse(
	run *domain.PlanRun,
	routes []dto.RouteDTO,
	unassigned []dto.UnassignedDTO,
) *dto.PlanResponse {
	return &dto.PlanResponse{
		RunID:            run.ID.String(),
		ProjectID:        run.ProjectID.String(),
		Status:           run.Status,
		TotalCost:        run.TotalCost,
		TotalDistance:    run.TotalDistance,
		TotalDuration:    run.TotalDuration,
		TotalRoutes:      run.TotalRoutes,
		TotalUnassigned:  run.TotalUnassigned,
		ComputingTimeMS:  run.ComputingTimeMS,
		ComputingTimeSec: run.ComputingTimeSec,
		CurrencyCode:     run.CurrencyCode,
		Routes:           routes,
		Unassigned:       unassigned,
		CreatedAt:        run.CreatedAt,
	}
}

// requestHash keys the solution cache. json.Marshal is deterministic for
// struct fields, so identical inputs produce identical keys.
func requestHash(req *domain.SolverRequest) string {
	data, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
