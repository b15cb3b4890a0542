package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/cleanedge/cleanedge/internal/mailer"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for marketing email sends.
	TaskTypeSendEmail = "mail:send"
)

// SendEmailPayload describes one queued marketing send.
type SendEmailPayload struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data,omitempty"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// SendEmailJob processes TaskTypeSendEmail tasks through the mail
// dispatcher's marketing mode.
type SendEmailJob struct {
	dispatcher *mailer.Dispatcher
	logger     *slog.Logger
}

func NewSendEmailJob(dispatcher *mailer.Dispatcher, logger *slog.Logger) *SendEmailJob {
	return &SendEmailJob{dispatcher: dispatcher, logger: logger}
}

// Handle sends one marketing email. Transport failures return an
// error so Asynq retries with backoff; a bad payload or a missing
// template will not improve on retry and skips the retry policy.
func (j *SendEmailJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.To == "" || payload.Template == "" {
		return asynq.SkipRetry
	}

	result, err := j.dispatcher.SendMarketing(ctx, payload.To, payload.Subject, payload.Template, payload.Data)
	if err != nil {
		j.logger.Error("marketing template failure",
			slog.String("template", payload.Template),
			slog.Any("error", err),
		)
		return asynq.SkipRetry
	}
	if !result.Success {
		return result.Err
	}
	return nil
}
