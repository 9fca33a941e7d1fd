package vroom

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrp-microservice/internal/config"
	"github.com/vrp-microservice/internal/domain"
	"go.uber.org/zap"
)

func testRequest() *domain.SolverRequest {
	return &domain.SolverRequest{
		Vehicles: []domain.SolverVehicle{
			{ID: 1, Start: []float64{28.0, -26.0}, Capacity: []int64{1000, 50, 10}},
		},
		Jobs: []domain.SolverJob{
			{ID: 1, Location: []float64{28.1, -26.1}, Service: 300, Delivery: []int64{100, 2, 1}},
		},
		Options: &domain.SolverOptions{Geometry: true, Threads: 4},
	}
}

func TestClient_Solve(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("successful request", func(t *testing.T) {
		mockResp := domain.SolverResponse{
			Code: 0,
			Routes: []domain.SolverRoute{
				{Vehicle: 1, Cost: 4200, Distance: 15000, Duration: 1800, Geometry: "LINESTRING(28 -26, 28.1 -26.1)"},
			},
			Summary: domain.SolverSummary{Cost: 4200, Distance: 15000, Duration: 1800},
		}

		var received domain.SolverRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(mockResp)
		}))
		defer server.Close()

		c := NewClient(&config.SolverConfig{URL: server.URL, RequestTimeout: 30}, logger)

		result, err := c.Solve(context.Background(), testRequest())
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 0, result.Code)
		require.Len(t, result.Routes, 1)
		assert.Equal(t, int64(4200), result.Routes[0].Cost)

		require.Len(t, received.Vehicles, 1)
		assert.Equal(t, int64(1), received.Vehicles[0].ID)
		assert.Equal(t, []float64{28.0, -26.0}, received.Vehicles[0].Start)
	})

	t.Run("non-zero solver code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(domain.SolverResponse{Code: 4, Error: "infeasible"})
		}))
		defer server.Close()

		c := NewClient(&config.SolverConfig{URL: server.URL, RequestTimeout: 30}, logger)

		result, err := c.Solve(context.Background(), testRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "infeasible")
		// The decoded response is still returned for status mapping.
		require.NotNil(t, result)
		assert.Equal(t, 4, result.Code)
	})

	t.Run("http error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "input error", http.StatusBadRequest)
		}))
		defer server.Close()

		c := NewClient(&config.SolverConfig{URL: server.URL, RequestTimeout: 30}, logger)

		result, err := c.Solve(context.Background(), testRequest())
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "status 400")
	})

	t.Run("empty vehicles rejected before any call", func(t *testing.T) {
		c := NewClient(&config.SolverConfig{URL: "http://localhost:1", RequestTimeout: 1}, logger)

		_, err := c.Solve(context.Background(), &domain.SolverRequest{
			Jobs: []domain.SolverJob{{ID: 1, Location: []float64{1, 2}}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one vehicle")
	})

	t.Run("no tasks rejected before any call", func(t *testing.T) {
		c := NewClient(&config.SolverConfig{URL: "http://localhost:1", RequestTimeout: 1}, logger)

		_, err := c.Solve(context.Background(), &domain.SolverRequest{
			Vehicles: []domain.SolverVehicle{{ID: 1}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jobs or shipments")
	})
}

func TestClient_Health(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("vroom-style 200 with Cannot GET", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Cannot GET /"))
		}))
		defer server.Close()

		c := NewClient(&config.SolverConfig{URL: server.URL, RequestTimeout: 5}, logger)
		assert.True(t, c.Health(context.Background()))
	})

	t.Run("404 counts as healthy", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		c := NewClient(&config.SolverConfig{URL: server.URL, RequestTimeout: 5}, logger)
		assert.True(t, c.Health(context.Background()))
	})

	t.Run("plain 200 from something else is not healthy", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome to nginx"))
		}))
		defer server.Close()

		c := NewClient(&config.SolverConfig{URL: server.URL, RequestTimeout: 5}, logger)
		assert.False(t, c.Health(context.Background()))
	})

	t.Run("unreachable solver", func(t *testing.T) {
		c := NewClient(&config.SolverConfig{URL: "http://127.0.0.1:1", RequestTimeout: 1}, logger)
		assert.False(t, c.Health(context.Background()))
	})
}
