package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vrp-microservice/internal/domain"
	redisRepo "github.com/vrp-microservice/internal/repository/redis"
)

// getTestRedisClient creates a Redis client for testing
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     "localhost:6379",
		Password: "",
		DB:       1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := client.Ping(ctx).Err()
	if err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	client.Del(ctx, "test:stream:plan:queue", "test:stream:plan:done")

	return client
}

func TestStreamRepository_CreateConsumerGroup(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	repo := redisRepo.NewStreamRepository(client, zap.NewNop())
	ctx := context.Background()

	streamName := "test:stream:plan:queue"
	groupName := "test-group"

	defer func() {
		client.Del(ctx, streamName)
	}()

	err := repo.CreateConsumerGroup(ctx, streamName, groupName)
	require.NoError(t, err)

	// Creating the same group again is not an error
	err = repo.CreateConsumerGroup(ctx, streamName, groupName)
	assert.NoError(t, err)
}

func TestStreamRepository_PublishAndConsume(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	repo := redisRepo.NewStreamRepository(client, zap.NewNop())
	ctx := context.Background()

	streamName := "test:stream:plan:queue"
	groupName := "test-group"
	consumerName := "test-consumer"

	defer func() {
		client.Del(ctx, streamName)
	}()

	require.NoError(t, repo.CreateConsumerGroup(ctx, streamName, groupName))

	event := domain.PlanQueuedEvent{
		RequestID:    uuid.New(),
		ProjectID:    uuid.New(),
		Threads:      4,
		WithGeometry: true,
	}
	require.NoError(t, repo.PublishToStream(ctx, streamName, event))

	messages, err := repo.ConsumeBatch(ctx, streamName, groupName, consumerName, 10)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	var got domain.PlanQueuedEvent
	require.NoError(t, json.Unmarshal([]byte(messages[0].Data), &got))
	assert.Equal(t, event.RequestID, got.RequestID)
	assert.Equal(t, event.ProjectID, got.ProjectID)
	assert.True(t, got.WithGeometry)

	// Ack and verify the message is not redelivered
	require.NoError(t, repo.AckMessage(ctx, streamName, groupName, messages[0].ID))

	messages, err = repo.ConsumeBatch(ctx, streamName, groupName, consumerName, 10)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestStreamRepository_ConsumeBatch_EmptyStream(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	repo := redisRepo.NewStreamRepository(client, zap.NewNop())
	ctx := context.Background()

	streamName := "test:stream:plan:done"
	groupName := "test-group"

	defer func() {
		client.Del(ctx, streamName)
	}()

	require.NoError(t, repo.CreateConsumerGroup(ctx, streamName, groupName))

	messages, err := repo.ConsumeBatch(ctx, streamName, groupName, "test-consumer", 10)
	require.NoError(t, err)
	assert.Empty(t, messages)
}
