package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskProductCreated is the Asynq type for new product notifications.
	TaskProductCreated = "product:created"
)

// ProductCreatedPayload is the JSON payload of a TaskProductCreated task.
type ProductCreatedPayload struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
}

// NewProductCreatedTask builds the notification task: three retries on the
// default queue, 30 seconds per attempt.
func NewProductCreatedTask(productID int64, name, price string) (*asynq.Task, error) {
	payload, err := json.Marshal(ProductCreatedPayload{
		ProductID: productID,
		Name:      name,
		Price:     price,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskProductCreated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
