package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hibiken/asynq"

	"github.com/Senthuron/Gym-Backend/internal/config"
	"github.com/Senthuron/Gym-Backend/pkg/logger"
)

// Worker consumes queued mail tasks. Nil when Redis is disabled.
type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	deliver func(context.Context, *EmailMessage) error
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex
}

func NewWorker(cfg *config.RedisConfig, deliver func(context.Context, *EmailMessage) error) *Worker {
	if !cfg.Enabled {
		return nil
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error().Err(err).Str("type", task.Type()).Msg("task processing error")
			}),
		},
	)

	return &Worker{
		server:  server,
		mux:     asynq.NewServeMux(),
		deliver: deliver,
	}
}

func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	w.mux.HandleFunc(TaskTypeEmail, w.handleEmailTask)

	w.running = true
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		logger.Info().Msg("mail worker started")
		if err := w.server.Run(w.mux); err != nil {
			logger.Error().Err(err).Msg("mail worker stopped")
		}
	}()
	return nil
}

func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.server.Shutdown()
	w.running = false
	w.wg.Wait()
	logger.Info().Msg("mail worker shut down")
}

func (w *Worker) handleEmailTask(ctx context.Context, t *asynq.Task) error {
	var msg EmailMessage
	if err := json.Unmarshal(t.Payload(), &msg); err != nil {
		return err
	}
	if w.deliver == nil {
		logger.Warn().Msg("mail worker has no deliverer")
		return nil
	}
	return w.deliver(ctx, &msg)
}
