package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleProductCreatedTask emails the catalog owner about a new product.
// Returning an error makes Asynq retry the task.
func (j *JobService) handleProductCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p ProductCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal product created payload: %w", asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskProductCreated).
		Int64("product_id", p.ProductID).
		Logger()

	if j.notifier == nil || j.notifyEmail == "" {
		logger.Debug().Msg("product notifications disabled, skipping task")
		return nil
	}

	logger.Info().Msg("processing product created task")

	if err := j.notifier.SendProductCreatedEmail(j.notifyEmail, p.ProductID, p.Name, p.Price); err != nil {
		logger.Error().Err(err).Msg("failed to send product created email")
		return err
	}

	logger.Info().Msg("sent product created email")
	return nil
}
