// Package job provides background job processing using Asynq.
//
// Tasks are enqueued through JobService.Client and executed by the Asynq
// server started in JobService.Start, both backed by Redis.
package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/deppfellow/storefront/internal/lib/email"
)

// ProductNotifier sends the new product email.
type ProductNotifier interface {
	SendProductCreatedEmail(to string, productID int64, name, price string) error
}

// JobService holds the Asynq client (enqueue) and server (workers).
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger

	notifier    ProductNotifier
	notifyEmail string
}

// NewJobService creates a JobService using the Redis address from cfg.
//
// Workers are weighted across queues so critical tasks get most of the
// ten worker slots.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// InitHandlers wires the dependencies task handlers need. Notifications are
// left disabled unless Resend and a recipient are configured.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Integration.NotificationsEnabled() {
		logger.Info().Msg("product notification emails disabled")
		return
	}

	j.notifier = email.NewClient(cfg, logger)
	j.notifyEmail = cfg.Integration.NotifyEmail
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskProductCreated, j.handleProductCreatedTask)
	return mux
}

// Start runs the worker server in the background.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(j.Mux()); err != nil {
		return fmt.Errorf("failed to start job server: %w", err)
	}

	return nil
}

// EnqueueProductCreated schedules the new product notification.
func (j *JobService) EnqueueProductCreated(ctx context.Context, productID int64, name, price string) error {
	task, err := NewProductCreatedTask(productID, name, price)
	if err != nil {
		return fmt.Errorf("failed to build product created task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue product created task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int64("product_id", productID).
		Msg("enqueued product created task")

	return nil
}

// Stop shuts the worker server down and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
