package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vrp-microservice/internal/config"
	"github.com/vrp-microservice/internal/geometry"
	"github.com/vrp-microservice/internal/infrastructure/vroom"
	"github.com/vrp-microservice/internal/pkg/logger"
	"github.com/vrp-microservice/internal/repository/cache"
	"github.com/vrp-microservice/internal/repository/postgres"
	redisRepo "github.com/vrp-microservice/internal/repository/redis"
	"github.com/vrp-microservice/internal/usecase"
	"github.com/vrp-microservice/internal/worker"
	"github.com/vrp-microservice/internal/worker/plan"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if !cfg.Worker.Enabled {
		log.Info("Workers are disabled, exiting")
		os.Exit(0)
	}

	log.Info("Starting VRP worker process",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	healthCtx, healthCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer healthCancel()

	if err := db.Health(healthCtx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(healthCtx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	vehicleRepo := postgres.NewVehicleRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	shipmentRepo := postgres.NewShipmentRepository(db)
	planRepo := postgres.NewPlanRepository(db)
	solutionCache := cache.NewSolutionCache(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	solverRepo := vroom.NewClient(&cfg.Solver, log)

	// 7. Initialize plan use case
	engine := geometry.NewEngine(cfg.Geometry.Tolerance, cfg.Geometry.SimplifyMinPoints, log)

	planUC := usecase.NewPlanUseCase(
		vehicleRepo,
		jobRepo,
		shipmentRepo,
		planRepo,
		solverRepo,
		solutionCache,
		streamRepo,
		engine,
		cfg.Cache.SolutionCacheTTL,
		cfg.Solver.Threads,
		log,
	)

	// 8. Initialize and register workers
	manager := worker.NewManager(log)
	manager.Register(plan.NewWorker(
		streamRepo,
		planUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	))

	// 9. Start workers with a cancellable context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	log.Info("Workers started successfully")

	// 10. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down workers gracefully...")
	cancel()

	if err := manager.Stop(); err != nil {
		log.Error("Worker shutdown error", zap.Error(err))
	}

	log.Info("Workers stopped successfully")
}
