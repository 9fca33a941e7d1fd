package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"github.com/vrp-microservice/internal/config"
	"github.com/vrp-microservice/internal/delivery/http/handler"
	"github.com/vrp-microservice/internal/delivery/http/middleware"
	"go.uber.org/zap"
)

// Server - Fiber HTTP server
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	vehicleHandler  *handler.VehicleHandler
	jobHandler      *handler.JobHandler
	shipmentHandler *handler.ShipmentHandler
	planHandler     *handler.PlanHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	vehicleHandler *handler.VehicleHandler,
	jobHandler *handler.JobHandler,
	shipmentHandler *handler.ShipmentHandler,
	planHandler *handler.PlanHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "VRP Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		vehicleHandler:  vehicleHandler,
		jobHandler:      jobHandler,
		shipmentHandler: shipmentHandler,
		planHandler:     planHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Vehicle routes
	api.Post("/vehicles", s.vehicleHandler.Create)
	api.Get("/vehicles/:id", s.vehicleHandler.GetByID)
	api.Delete("/vehicles/:id", s.vehicleHandler.Delete)
	api.Get("/projects/:project_id/vehicles", s.vehicleHandler.ListByProject)

	// Job routes
	api.Post("/jobs", s.jobHandler.Create)
	api.Post("/jobs/bulk", s.jobHandler.BulkImport)
	api.Get("/jobs/:id", s.jobHandler.GetByID)
	api.Delete("/jobs/:id", s.jobHandler.Delete)
	api.Get("/projects/:project_id/jobs", s.jobHandler.ListByProject)

	// Shipment routes
	api.Post("/shipments", s.shipmentHandler.Create)
	api.Get("/shipments/:id", s.shipmentHandler.GetByID)
	api.Delete("/shipments/:id", s.shipmentHandler.Delete)
	api.Get("/projects/:project_id/shipments", s.shipmentHandler.ListByProject)

	// Plan routes
	api.Post("/plans/run", s.planHandler.Run)
	api.Post("/plans/queue", s.planHandler.Queue)
	api.Get("/plans/solver/health", s.planHandler.SolverHealth)
	api.Get("/plans/:id", s.planHandler.GetRun)
	api.Get("/projects/:project_id/plans", s.planHandler.ListRuns)
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
