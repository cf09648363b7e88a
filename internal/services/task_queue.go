package services

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/Senthuron/Gym-Backend/internal/config"
	"github.com/Senthuron/Gym-Backend/pkg/logger"
)

const TaskTypeEmail = "email:send"

// TaskQueue decouples outbound mail from the request path. With Redis
// available it is backed by asynq; otherwise a sync fallback delivers in a
// goroutine.
type TaskQueue interface {
	Enqueue(msg *EmailMessage) error
	IsAsync() bool
	Close() error
}

// NewTaskQueue picks the queue implementation for the current config.
// Redis being unreachable degrades to the sync queue rather than failing
// startup.
func NewTaskQueue(cfg *config.Config, deliver func(context.Context, *EmailMessage) error) TaskQueue {
	if cfg.Redis.Enabled {
		queue, err := NewAsyncQueue(&cfg.Redis)
		if err == nil {
			logger.Info().Str("addr", cfg.Redis.Addr).Msg("async mail queue initialized")
			return queue
		}
		logger.Warn().Err(err).Msg("redis unavailable, falling back to sync mail delivery")
	}
	return NewSyncQueue(deliver)
}

// AsyncQueue is the Redis-backed queue.
type AsyncQueue struct {
	client *asynq.Client
}

func NewAsyncQueue(cfg *config.RedisConfig) (*AsyncQueue, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	client := asynq.NewClient(redisOpt)

	// Verify the connection up front so a dead Redis degrades at startup,
	// not on the first send.
	inspector := asynq.NewInspector(redisOpt)
	defer inspector.Close()
	if _, err := inspector.Queues(); err != nil {
		client.Close()
		return nil, err
	}

	return &AsyncQueue{client: client}, nil
}

func (q *AsyncQueue) Enqueue(msg *EmailMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	t := asynq.NewTask(TaskTypeEmail, payload)
	info, err := q.client.Enqueue(t,
		asynq.Queue("default"),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return err
	}
	logger.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("mail task enqueued")
	return nil
}

func (q *AsyncQueue) IsAsync() bool { return true }

func (q *AsyncQueue) Close() error { return q.client.Close() }

// SyncQueue delivers in a goroutine so callers never block on SMTP.
type SyncQueue struct {
	deliver func(context.Context, *EmailMessage) error
}

func NewSyncQueue(deliver func(context.Context, *EmailMessage) error) *SyncQueue {
	return &SyncQueue{deliver: deliver}
}

func (q *SyncQueue) Enqueue(msg *EmailMessage) error {
	if q.deliver == nil {
		logger.Warn().Msg("sync mail queue has no deliverer, dropping message")
		return nil
	}
	go func() {
		if err := q.deliver(context.Background(), msg); err != nil {
			logger.Error().Err(err).Msg("sync mail delivery failed")
		}
	}()
	return nil
}

func (q *SyncQueue) IsAsync() bool { return false }

func (q *SyncQueue) Close() error { return nil }
