package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/vrp-microservice/internal/domain"
	"github.com/vrp-microservice/internal/domain/repository"
	"github.com/vrp-microservice/internal/usecase"
	"github.com/vrp-microservice/internal/worker"
	"go.uber.org/zap"
)

const (
	maxBatchSize    = 5                      // optimization runs are heavy, keep batches small
	emptyQueueSleep = 100 * time.Millisecond // pause when the queue is empty
)

// Worker consumes queued plan requests from the plan stream and runs them.
type Worker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	planUC       *usecase.PlanUseCase
	consumerName string
	maxRetries   int
}

func NewWorker(
	streamRepo repository.StreamRepository,
	planUC *usecase.PlanUseCase,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *Worker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &Worker{
		BaseWorker:   worker.NewBaseWorker("plan-runner", consumerGroup, logger),
		streamRepo:   streamRepo,
		planUC:       planUC,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting plan worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamPlanQueue, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch reads and executes up to maxBatchSize queued runs. Returns the
// number of messages taken off the stream.
func (w *Worker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamPlanQueue,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	logger.Info("Processing plan batch", zap.Int("message_count", len(messages)))

	for _, msg := range messages {
		event, err := w.parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ack the broken message so it does not block the group
			_ = w.streamRepo.AckMessage(ctx, domain.StreamPlanQueue, w.ConsumerGroup(), msg.ID)
			continue
		}

		if err := w.planUC.ProcessQueued(ctx, *event); err != nil {
			logger.Error("Plan run failed",
				zap.String("request_id", event.RequestID.String()),
				zap.String("project_id", event.ProjectID.String()),
				zap.Error(err))
			// The failure outcome was already published to the done stream.
		} else {
			logger.Info("Plan run completed",
				zap.String("request_id", event.RequestID.String()))
		}

		if err := w.streamRepo.AckMessage(ctx, domain.StreamPlanQueue, w.ConsumerGroup(), msg.ID); err != nil {
			logger.Error("Failed to ack message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}
	}

	return len(messages), nil
}

func (w *Worker) parseMessage(msg domain.StreamMessage) (*domain.PlanQueuedEvent, error) {
	var event domain.PlanQueuedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}
