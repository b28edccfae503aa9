package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type fakeNotifier struct {
	to    []string
	names []string
	err   error
}

func (f *fakeNotifier) SendProductCreatedEmail(to string, productID int64, name, price string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.names = append(f.names, name)
	return nil
}

func newTestService(notifier ProductNotifier, to string) *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger, notifier: notifier, notifyEmail: to}
}

func TestNewProductCreatedTask(t *testing.T) {
	task, err := NewProductCreatedTask(3, "Veggie Pizza", "15.49")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Type() != TaskProductCreated {
		t.Errorf("expected type %s, got %s", TaskProductCreated, task.Type())
	}

	var payload ProductCreatedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if payload.ProductID != 3 || payload.Name != "Veggie Pizza" || payload.Price != "15.49" {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestHandleProductCreatedTask_SendsEmail(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestService(notifier, "owner@example.com")

	task, _ := NewProductCreatedTask(1, "Caesar Salad", "8.99")
	if err := svc.handleProductCreatedTask(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(notifier.to) != 1 || notifier.to[0] != "owner@example.com" || notifier.names[0] != "Caesar Salad" {
		t.Errorf("unexpected notification: %+v", notifier)
	}
}

func TestHandleProductCreatedTask_Disabled(t *testing.T) {
	svc := newTestService(nil, "")

	task, _ := NewProductCreatedTask(1, "Caesar Salad", "8.99")
	if err := svc.handleProductCreatedTask(context.Background(), task); err != nil {
		t.Fatalf("expected disabled notifications to succeed, got %v", err)
	}
}

func TestHandleProductCreatedTask_Errors(t *testing.T) {
	svc := newTestService(&fakeNotifier{err: errors.New("provider down")}, "owner@example.com")

	task, _ := NewProductCreatedTask(1, "Caesar Salad", "8.99")
	if err := svc.handleProductCreatedTask(context.Background(), task); err == nil {
		t.Error("expected send failure to be returned for retry")
	}

	bad := asynq.NewTask(TaskProductCreated, []byte("{not json"))
	err := svc.handleProductCreatedTask(context.Background(), bad)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("expected malformed payload to skip retries, got %v", err)
	}
}
