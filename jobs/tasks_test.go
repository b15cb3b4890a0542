package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanedge/cleanedge/internal/mailer"
)

type fakeTransport struct {
	sent []*mailer.Message
	err  error
}

func (f *fakeTransport) Send(ctx context.Context, msg *mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDispatcher(t *testing.T, transport mailer.Transport) *mailer.Dispatcher {
	t.Helper()
	dir := t.TempDir()
	tmpl := `<p>{{.UnsubscribeLink}}</p>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "promo.tmpl"), []byte(tmpl), 0o644))
	return mailer.NewDispatcher(testLogger(), transport, mailer.NewUnsubscribeSigner("test-secret"), nil, mailer.DispatcherConfig{
		From:          "no-reply@cleanedgeremoval.com",
		TemplateDir:   dir,
		PublicBaseURL: "http://localhost:8080",
	})
}

func TestNewSendEmailTask(t *testing.T) {
	task, err := NewSendEmailTask(SendEmailPayload{
		To:       "customer@example.com",
		Subject:  "Deals",
		Template: "promo",
	})
	require.NoError(t, err)
	assert.Equal(t, TaskTypeSendEmail, task.Type())

	var payload SendEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "customer@example.com", payload.To)
	assert.Equal(t, "promo", payload.Template)
}

func TestSendEmailJobDelivers(t *testing.T) {
	transport := &fakeTransport{}
	job := NewSendEmailJob(newTestDispatcher(t, transport), testLogger())

	task, err := NewSendEmailTask(SendEmailPayload{To: "customer@example.com", Subject: "Deals", Template: "promo"})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))

	require.Len(t, transport.sent, 1)
	assert.Equal(t, "customer@example.com", transport.sent[0].To)
	assert.Equal(t, "Marketing", transport.sent[0].Headers["X-Email-Type"])
}

func TestSendEmailJobSkipsBadPayload(t *testing.T) {
	job := NewSendEmailJob(newTestDispatcher(t, &fakeTransport{}), testLogger())

	err := job.Handle(context.Background(), asynq.NewTask(TaskTypeSendEmail, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	task, err := NewSendEmailTask(SendEmailPayload{Subject: "no recipient", Template: "promo"})
	require.NoError(t, err)
	assert.ErrorIs(t, job.Handle(context.Background(), task), asynq.SkipRetry)
}

func TestSendEmailJobSkipsMissingTemplate(t *testing.T) {
	job := NewSendEmailJob(newTestDispatcher(t, &fakeTransport{}), testLogger())

	task, err := NewSendEmailTask(SendEmailPayload{To: "customer@example.com", Template: "absent"})
	require.NoError(t, err)
	assert.ErrorIs(t, job.Handle(context.Background(), task), asynq.SkipRetry)
}

func TestSendEmailJobRetriesTransportFailure(t *testing.T) {
	transportErr := errors.New("dial tcp: connection refused")
	job := NewSendEmailJob(newTestDispatcher(t, &fakeTransport{err: transportErr}), testLogger())

	task, err := NewSendEmailTask(SendEmailPayload{To: "customer@example.com", Template: "promo"})
	require.NoError(t, err)

	err = job.Handle(context.Background(), task)
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestClientEnqueueSendEmail(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(asynq.RedisClientOpt{Addr: mr.Addr()})
	require.NoError(t, err)
	defer func() {
		require.NoError(t, client.Close())
	}()

	info, err := client.EnqueueSendEmail(context.Background(), SendEmailPayload{
		To:       "customer@example.com",
		Subject:  "Deals",
		Template: "promo",
	})
	require.NoError(t, err)
	assert.Equal(t, QueueDefault, info.Queue)
	assert.Equal(t, TaskTypeSendEmail, info.Type)
	assert.Equal(t, 3, info.MaxRetry)
	assert.Equal(t, asynq.TaskStatePending, info.State)
}
