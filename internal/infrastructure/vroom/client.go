package vroom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vrp-microservice/internal/config"
	"github.com/vrp-microservice/internal/domain"
	"github.com/vrp-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a new client for the VROOM solver API
func NewClient(cfg *config.SolverConfig, logger *zap.Logger) repository.SolverRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: strings.TrimRight(cfg.URL, "/"),
		logger:  logger,
	}
}

// Solve posts an optimization request and decodes the solver response
func (c *client) Solve(ctx context.Context, req *domain.SolverRequest) (*domain.SolverResponse, error) {
	if len(req.Vehicles) == 0 {
		return nil, fmt.Errorf("solver request must contain at least one vehicle")
	}
	if len(req.Jobs) == 0 && len(req.Shipments) == 0 {
		return nil, fmt.Errorf("solver request must contain jobs or shipments")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode solver request: %w", err)
	}

	c.logger.Info("Sending solver request",
		zap.String("url", c.baseURL),
		zap.Int("vehicles", len(req.Vehicles)),
		zap.Int("jobs", len(req.Jobs)),
		zap.Int("shipments", len(req.Shipments)))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Failed to execute solver request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute solver request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Solver returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("solver error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var solverResp domain.SolverResponse
	if err := json.NewDecoder(resp.Body).Decode(&solverResp); err != nil {
		c.logger.Error("Failed to decode solver response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode solver response: %w", err)
	}

	if solverResp.Code != 0 {
		c.logger.Error("Solver returned non-zero code",
			zap.Int("code", solverResp.Code),
			zap.String("error", solverResp.Error))
		return &solverResp, fmt.Errorf("solver returned code %d: %s", solverResp.Code, solverResp.Error)
	}

	c.logger.Info("Solver optimization completed",
		zap.Int("routes", len(solverResp.Routes)),
		zap.Int("unassigned", len(solverResp.Unassigned)),
		zap.Int64("cost", solverResp.Summary.Cost))

	return &solverResp, nil
}

// Health checks solver availability. VROOM answers GET / with "Cannot GET /",
// which still means the process is up and responding.
func (c *client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Solver health check failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	healthy := resp.StatusCode == http.StatusNotFound ||
		(resp.StatusCode == http.StatusOK && strings.Contains(string(body), "Cannot GET"))

	c.logger.Debug("Solver health check",
		zap.Int("status_code", resp.StatusCode),
		zap.Bool("healthy", healthy))

	return healthy
}
