package main

// @title VRP Microservice API
// @version 1.0.0
// @description Vehicle routing microservice. Manages fleets, tasks and shipments, runs optimizations against a VROOM solver and stores the resulting plans with normalized route geometry.
// @description
// @description Main features:
// @description - Vehicle, job and shipment management with solver-id allocation
// @description - Synchronous and queued optimization runs
// @description - Solution caching by request hash
// @description - Route geometry precision rounding and polyline simplification

// @contact.name API Support
// @contact.email support@vrp-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/vrp-microservice/docs/swagger"
	"github.com/vrp-microservice/internal/config"
	httpDelivery "github.com/vrp-microservice/internal/delivery/http"
	"github.com/vrp-microservice/internal/delivery/http/handler"
	"github.com/vrp-microservice/internal/geometry"
	"github.com/vrp-microservice/internal/infrastructure/vroom"
	"github.com/vrp-microservice/internal/pkg/logger"
	"github.com/vrp-microservice/internal/repository/cache"
	"github.com/vrp-microservice/internal/repository/postgres"
	redisRepo "github.com/vrp-microservice/internal/repository/redis"
	"github.com/vrp-microservice/internal/usecase"
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

	log.Info("Starting VRP Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("solver_url", cfg.Solver.URL),
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
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
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

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	engine := geometry.NewEngine(cfg.Geometry.Tolerance, cfg.Geometry.SimplifyMinPoints, log)

	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo, log)
	jobUC := usecase.NewJobUseCase(jobRepo, log)
	shipmentUC := usecase.NewShipmentUseCase(shipmentRepo, log)
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

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	vehicleHandler := handler.NewVehicleHandler(vehicleUC, log)
	jobHandler := handler.NewJobHandler(jobUC, log)
	shipmentHandler := handler.NewShipmentHandler(shipmentUC, log)
	planHandler := handler.NewPlanHandler(planUC, log)

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		vehicleHandler,
		jobHandler,
		shipmentHandler,
		planHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
