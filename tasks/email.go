package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/shihabsss1/portfolio/helpers"
)

const TaskEmailDelivery string = "email:delivery"

var errInvalidEmail = errors.New("Missing information to send email.")

// EmailDeliveryPayload carries the message options and the template data.
type EmailDeliveryPayload struct {
	Source helpers.EmailOpts      `json:"source"`
	Data   map[string]interface{} `json:"data"`
}

func NewEmailDeliveryTask(s helpers.EmailOpts, d map[string]interface{}) (*asynq.Task, error) {
	if !s.IsValid() {
		return nil, errInvalidEmail
	}

	payload, err := json.Marshal(EmailDeliveryPayload{Source: s, Data: d})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskEmailDelivery, payload), nil
}

// HandleEmailDeliveryTask sends the message. SMTP failures are retried; a
// malformed payload is dropped.
func (h *Handlers) HandleEmailDeliveryTask(ctx context.Context, t *asynq.Task) error {
	p := EmailDeliveryPayload{}
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("Could not decode payload: %w: %w", err, asynq.SkipRetry)
	}

	if !p.Source.IsValid() {
		return fmt.Errorf("%w: %w", errInvalidEmail, asynq.SkipRetry)
	}

	if h.Mailer == nil {
		return errors.New("The email client is not configured.")
	}

	if err := h.Mailer.Send(ctx, p.Source, p.Data); err != nil {
		sentry.CaptureException(err)
		return fmt.Errorf("Could not deliver email to %v: %w", p.Source.ToList, err)
	}

	return nil
}

// NewEmail queues a message for delivery by the worker.
func NewEmail(ctx context.Context, q Enqueuer, s helpers.EmailOpts, d map[string]interface{}) error {
	task, err := NewEmailDeliveryTask(s, d)
	if err != nil {
		slog.Error(fmt.Sprintf("Could not create email task: %v", err))
		return err
	}

	info, err := q.EnqueueContext(ctx, task, asynq.MaxRetry(5), asynq.Timeout(30*time.Second), asynq.Retention(24*time.Hour))
	if err != nil {
		sentry.CaptureException(err)
		slog.Error(fmt.Sprintf("Could not enqueue email task: %v", err))
		return err
	}

	slog.Info(fmt.Sprintf("Enqueued email task [%s] on %s", info.ID, info.Queue))

	return nil
}
