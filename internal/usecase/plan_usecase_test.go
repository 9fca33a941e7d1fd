package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vrp-microservice/internal/domain"
	"github.com/vrp-microservice/internal/geometry"
	"github.com/vrp-microservice/internal/usecase"
	"github.com/vrp-microservice/internal/usecase/dto"
)

// MockVehicleRepository is a mock of VehicleRepository
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Vehicle, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleRepository) MaxOptimizerID(ctx context.Context, projectID uuid.UUID) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}

// MockJobRepository is a mock of JobRepository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Create(ctx context.Context, job *domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) CreateBatch(ctx context.Context, jobs []*domain.Job) error {
	args := m.Called(ctx, jobs)
	return args.Error(0)
}

func (m *MockJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Job, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Job), args.Error(1)
}

func (m *MockJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJobRepository) MaxOptimizerID(ctx context.Context, projectID uuid.UUID) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}

// MockShipmentRepository is a mock of ShipmentRepository
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) Create(ctx context.Context, shipment *domain.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *MockShipmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Shipment, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShipmentRepository) MaxOptimizerID(ctx context.Context, projectID uuid.UUID) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPlanRepository is a mock of PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) CreateRun(ctx context.Context, run *domain.PlanRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockPlanRepository) GetRun(ctx context.Context, id uuid.UUID) (*domain.PlanRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlanRun), args.Error(1)
}

func (m *MockPlanRepository) ListRuns(ctx context.Context, projectID uuid.UUID, limit int) ([]*domain.PlanRun, error) {
	args := m.Called(ctx, projectID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PlanRun), args.Error(1)
}

func (m *MockPlanRepository) CreateRouteSummary(ctx context.Context, summary *domain.RouteSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockPlanRepository) CreateRouteSteps(ctx context.Context, steps []*domain.RouteStep) error {
	args := m.Called(ctx, steps)
	return args.Error(0)
}

func (m *MockPlanRepository) CreateUnassigned(ctx context.Context, tasks []*domain.UnassignedTask) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func (m *MockPlanRepository) ListRouteSummaries(ctx context.Context, planRunID uuid.UUID) ([]*domain.RouteSummary, error) {
	args := m.Called(ctx, planRunID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RouteSummary), args.Error(1)
}

// MockSolverRepository is a mock of SolverRepository
type MockSolverRepository struct {
	mock.Mock
}

func (m *MockSolverRepository) Solve(ctx context.Context, req *domain.SolverRequest) (*domain.SolverResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SolverResponse), args.Error(1)
}

func (m *MockSolverRepository) Health(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// MockSolutionCache is a mock of SolutionCacheRepository
type MockSolutionCache struct {
	mock.Mock
}

func (m *MockSolutionCache) GetSolution(ctx context.Context, key string) (*domain.SolverResponse, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SolverResponse), args.Error(1)
}

func (m *MockSolutionCache) SetSolution(ctx context.Context, key string, resp *domain.SolverResponse, ttl time.Duration) error {
	args := m.Called(ctx, key, resp, ttl)
	return args.Error(0)
}

func (m *MockSolutionCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

type planMocks struct {
	vehicles  *MockVehicleRepository
	jobs      *MockJobRepository
	shipments *MockShipmentRepository
	plans     *MockPlanRepository
	solver    *MockSolverRepository
	cache     *MockSolutionCache
	streams   *MockStreamRepository
}

func newPlanUseCase() (*usecase.PlanUseCase, *planMocks) {
	m := &planMocks{
		vehicles:  new(MockVehicleRepository),
		jobs:      new(MockJobRepository),
		shipments: new(MockShipmentRepository),
		plans:     new(MockPlanRepository),
		solver:    new(MockSolverRepository),
		cache:     new(MockSolutionCache),
		streams:   new(MockStreamRepository),
	}

	uc := usecase.NewPlanUseCase(
		m.vehicles, m.jobs, m.shipments, m.plans,
		m.solver, m.cache, m.streams,
		geometry.NewEngine(0, 0, zap.NewNop()),
		time.Hour, 4, zap.NewNop(),
	)
	return uc, m
}

func testVehicle(projectID uuid.UUID, optimizerID int64) *domain.Vehicle {
	return &domain.Vehicle{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Name:        "truck",
		OptimizerID: optimizerID,
		Start:       &domain.Coordinate{Lon: 28.0, Lat: -26.0},
		Capacity:    []int64{1000, 50, 10},
	}
}

func testJob(projectID uuid.UUID, optimizerID int64) *domain.Job {
	service := int64(300)
	return &domain.Job{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Name:        "drop",
		OptimizerID: optimizerID,
		Location:    &domain.Coordinate{Lon: 28.1, Lat: -26.1},
		ServiceTime: &service,
		Delivery:    []int64{100, 2, 1},
	}
}

func TestPlanUseCase_Run(t *testing.T) {
	projectID := uuid.New()
	ctx := context.Background()

	t.Run("successful run persists outcome", func(t *testing.T) {
		uc, m := newPlanUseCase()

		m.vehicles.On("ListByProject", ctx, projectID).
			Return([]*domain.Vehicle{testVehicle(projectID, 1)}, nil)
		m.jobs.On("ListByProject", ctx, projectID).
			Return([]*domain.Job{testJob(projectID, 1)}, nil)
		m.shipments.On("ListByProject", ctx, projectID).
			Return([]*domain.Shipment{}, nil)

		m.cache.On("GetSolution", ctx, mock.Anything).Return(nil, nil)

		solverResp := &domain.SolverResponse{
			Code: 0,
			Routes: []domain.SolverRoute{
				{
					Vehicle:  1,
					Cost:     4200,
					Distance: 15000,
					Duration: 1800,
					Geometry: "LINESTRING(28.1234567 -26.7654321, 28.2 -26.2)",
					Steps: []domain.SolverStep{
						{Type: "start", Location: []float64{28.0, -26.0}},
						{Type: "job", ID: int64Ptr(1), Location: []float64{28.1, -26.1}, Arrival: 900, Service: 300},
						{Type: "end", Location: []float64{28.0, -26.0}, Arrival: 1800},
					},
				},
			},
			Summary: domain.SolverSummary{
				Cost:     4200,
				Distance: 15000,
				Duration: 1800,
				ComputingTimes: domain.SolverComputingTimes{
					Total: 2500,
				},
			},
		}
		m.solver.On("Solve", ctx, mock.Anything).Return(solverResp, nil)
		m.cache.On("SetSolution", ctx, mock.Anything, solverResp, time.Hour).Return(nil)

		m.plans.On("CreateRun", ctx, mock.Anything).Return(nil)
		m.plans.On("CreateRouteSummary", ctx, mock.Anything).Return(nil)
		m.plans.On("CreateRouteSteps", ctx, mock.Anything).Return(nil)
		m.plans.On("CreateUnassigned", ctx, mock.Anything).Return(nil)

		resp, warnings, err := uc.Run(ctx, dto.CreatePlanRequest{
			ProjectID:    projectID.String(),
			WithGeometry: true,
		})

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Empty(t, warnings)
		assert.Equal(t, domain.RunStatusCompleted, resp.Status)
		assert.Equal(t, int64(4200), resp.TotalCost)
		assert.Equal(t, 1, resp.TotalRoutes)
		// milliseconds floor to seconds
		assert.Equal(t, int64(2500), resp.ComputingTimeMS)
		assert.Equal(t, int64(2), resp.ComputingTimeSec)

		require.Len(t, resp.Routes, 1)
		require.NotNil(t, resp.Routes[0].Geometry)
		// coordinates are rounded to 6 decimal places
		assert.Equal(t, "LINESTRING(28.123457 -26.765432, 28.2 -26.2)", *resp.Routes[0].Geometry)
		assert.Len(t, resp.Routes[0].Steps, 3)

		m.plans.AssertCalled(t, "CreateRun", ctx, mock.Anything)
		m.solver.AssertNumberOfCalls(t, "Solve", 1)
	})

	t.Run("cached solution skips solver", func(t *testing.T) {
		uc, m := newPlanUseCase()

		m.vehicles.On("ListByProject", ctx, projectID).
			Return([]*domain.Vehicle{testVehicle(projectID, 1)}, nil)
		m.jobs.On("ListByProject", ctx, projectID).
			Return([]*domain.Job{testJob(projectID, 1)}, nil)
		m.shipments.On("ListByProject", ctx, projectID).
			Return([]*domain.Shipment{}, nil)

		cached := &domain.SolverResponse{
			Code:    0,
			Summary: domain.SolverSummary{Cost: 100},
		}
		m.cache.On("GetSolution", ctx, mock.Anything).Return(cached, nil)

		m.plans.On("CreateRun", ctx, mock.Anything).Return(nil)
		m.plans.On("CreateUnassigned", ctx, mock.Anything).Return(nil)

		resp, _, err := uc.Run(ctx, dto.CreatePlanRequest{ProjectID: projectID.String()})

		require.NoError(t, err)
		assert.Equal(t, int64(100), resp.TotalCost)
		m.solver.AssertNotCalled(t, "Solve", mock.Anything, mock.Anything)
	})

	t.Run("infeasible run is persisted with mapped status", func(t *testing.T) {
		uc, m := newPlanUseCase()

		m.vehicles.On("ListByProject", ctx, projectID).
			Return([]*domain.Vehicle{testVehicle(projectID, 1)}, nil)
		m.jobs.On("ListByProject", ctx, projectID).
			Return([]*domain.Job{testJob(projectID, 1)}, nil)
		m.shipments.On("ListByProject", ctx, projectID).
			Return([]*domain.Shipment{}, nil)

		m.cache.On("GetSolution", ctx, mock.Anything).Return(nil, nil)

		infeasible := &domain.SolverResponse{Code: 4, Error: "no feasible solution"}
		m.solver.On("Solve", ctx, mock.Anything).Return(infeasible, assert.AnError)

		m.plans.On("CreateRun", ctx, mock.Anything).Return(nil)
		m.plans.On("CreateUnassigned", ctx, mock.Anything).Return(nil)

		resp, _, err := uc.Run(ctx, dto.CreatePlanRequest{ProjectID: projectID.String()})

		require.NoError(t, err)
		assert.Equal(t, domain.RunStatusInfeasible, resp.Status)
		// a failed run is never cached
		m.cache.AssertNotCalled(t, "SetSolution", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("solver unreachable fails the run", func(t *testing.T) {
		uc, m := newPlanUseCase()

		m.vehicles.On("ListByProject", ctx, projectID).
			Return([]*domain.Vehicle{testVehicle(projectID, 1)}, nil)
		m.jobs.On("ListByProject", ctx, projectID).
			Return([]*domain.Job{testJob(projectID, 1)}, nil)
		m.shipments.On("ListByProject", ctx, projectID).
			Return([]*domain.Shipment{}, nil)

		m.cache.On("GetSolution", ctx, mock.Anything).Return(nil, nil)
		m.solver.On("Solve", ctx, mock.Anything).Return(nil, assert.AnError)

		_, _, err := uc.Run(ctx, dto.CreatePlanRequest{ProjectID: projectID.String()})
		require.Error(t, err)
	})

	t.Run("invalid stored vehicle fails before solving", func(t *testing.T) {
		uc, m := newPlanUseCase()

		bad := testVehicle(projectID, 1)
		bad.Capacity = []int64{1000, 50} // wrong vector length

		m.vehicles.On("ListByProject", ctx, projectID).
			Return([]*domain.Vehicle{bad}, nil)
		m.jobs.On("ListByProject", ctx, projectID).
			Return([]*domain.Job{testJob(projectID, 1)}, nil)
		m.shipments.On("ListByProject", ctx, projectID).
			Return([]*domain.Shipment{}, nil)

		_, _, err := uc.Run(ctx, dto.CreatePlanRequest{ProjectID: projectID.String()})
		require.Error(t, err)
		m.solver.AssertNotCalled(t, "Solve", mock.Anything, mock.Anything)
	})

	t.Run("invalid project id", func(t *testing.T) {
		uc, _ := newPlanUseCase()
		_, _, err := uc.Run(ctx, dto.CreatePlanRequest{ProjectID: "not-a-uuid"})
		require.Error(t, err)
	})
}

func TestPlanUseCase_Queue(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()

	t.Run("publishes queue event", func(t *testing.T) {
		uc, m := newPlanUseCase()

		m.streams.On("PublishToStream", ctx, domain.StreamPlanQueue, mock.Anything).Return(nil)

		resp, err := uc.Queue(ctx, dto.QueuePlanRequest{
			ProjectID:    projectID.String(),
			WithGeometry: true,
		})

		require.NoError(t, err)
		assert.True(t, resp.Queued)
		assert.NotEmpty(t, resp.RequestID)
		m.streams.AssertCalled(t, "PublishToStream", ctx, domain.StreamPlanQueue, mock.Anything)
	})

	t.Run("publish failure surfaces", func(t *testing.T) {
		uc, m := newPlanUseCase()

		m.streams.On("PublishToStream", ctx, domain.StreamPlanQueue, mock.Anything).
			Return(assert.AnError)

		_, err := uc.Queue(ctx, dto.QueuePlanRequest{ProjectID: projectID.String()})
		require.Error(t, err)
	})
}

func TestPlanUseCase_SolverHealth(t *testing.T) {
	ctx := context.Background()

	uc, m := newPlanUseCase()
	m.solver.On("Health", ctx).Return(true)

	resp := uc.SolverHealth(ctx)
	assert.True(t, resp.Healthy)
	assert.Equal(t, "ok", resp.Status)
}

func int64Ptr(v int64) *int64 {
	return &v
}
