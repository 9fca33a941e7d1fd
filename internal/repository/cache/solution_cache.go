package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vrp-microservice/internal/domain"
	"github.com/vrp-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type solutionCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewSolutionCache stores solver responses under their request hash so a
// repeated plan request inside the TTL skips the solver entirely.
func NewSolutionCache(r *Redis) repository.SolutionCacheRepository {
	return &solutionCache{
		client: r.Client(),
		logger: r.logger,
	}
}

func solutionKey(hash string) string {
	return "solution:" + hash
}

func (c *solutionCache) GetSolution(ctx context.Context, key string) (*domain.SolverResponse, error) {
	data, err := c.client.Get(ctx, solutionKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		c.logger.Error("Failed to get solution from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	var resp domain.SolverResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		c.logger.Error("Failed to unmarshal cached solution", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("unmarshal solution: %w", err)
	}

	c.logger.Debug("Solution cache hit", zap.String("key", key))
	return &resp, nil
}

func (c *solutionCache) SetSolution(ctx context.Context, key string, resp *domain.SolverResponse, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Error("Failed to marshal solution", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("marshal solution: %w", err)
	}

	if err := c.client.Set(ctx, solutionKey(key), data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set solution cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	c.logger.Debug("Solution cached", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (c *solutionCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, solutionKey(key)).Err(); err != nil {
		c.logger.Error("Failed to delete cached solution", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	return nil
}
