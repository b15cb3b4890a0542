package mailer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cleanedge/cleanedge/internal/observability"
)

// Service header values stamped on every outgoing message.
const (
	headerService   = "Clean Edge Removal"
	modeTransaction = "Transactional"
	modeMarketing   = "Marketing"
)

// Result reports the outcome of one send attempt. A transport failure
// yields Success=false with Err set; it is not an error return because
// callers treat delivery as best-effort.
type Result struct {
	MessageID string
	Success   bool
	Err       error
}

// DispatcherConfig carries the fixed send-time settings.
type DispatcherConfig struct {
	From          string
	TemplateDir   string
	PublicBaseURL string
}

// Dispatcher renders named templates and hands messages to the
// transport. Template loading failures are returned as errors because
// they indicate a broken deployment; transport failures are folded
// into the Result.
type Dispatcher struct {
	logger    *slog.Logger
	transport Transport
	templates *templateCache
	signer    *UnsubscribeSigner
	metrics   *observability.Metrics
	cfg       DispatcherConfig
}

// NewDispatcher constructs a Dispatcher. metrics may be nil.
func NewDispatcher(logger *slog.Logger, transport Transport, signer *UnsubscribeSigner, metrics *observability.Metrics, cfg DispatcherConfig) *Dispatcher {
	return &Dispatcher{
		logger:    logger,
		transport: transport,
		templates: newTemplateCache(cfg.TemplateDir),
		signer:    signer,
		metrics:   metrics,
		cfg:       cfg,
	}
}

// Send renders templateName with data and sends a transactional
// message to a single recipient.
func (d *Dispatcher) Send(ctx context.Context, to, subject, templateName string, data map[string]any) (Result, error) {
	headers := map[string]string{
		"X-Service":    headerService,
		"X-Email-Type": modeTransaction,
	}
	return d.deliver(ctx, to, subject, templateName, data, headers, "transactional")
}

// SendMarketing renders templateName with data plus an injected
// UnsubscribeLink and sends a marketing message. The List-Unsubscribe
// header carries the same link for mailbox-provider one-click opt-out.
func (d *Dispatcher) SendMarketing(ctx context.Context, to, subject, templateName string, data map[string]any) (Result, error) {
	link := d.signer.Link(d.cfg.PublicBaseURL, to)
	if data == nil {
		data = make(map[string]any)
	}
	data["UnsubscribeLink"] = link

	headers := map[string]string{
		"X-Service":        headerService,
		"X-Email-Type":     modeMarketing,
		"List-Unsubscribe": fmt.Sprintf("<%s>", link),
	}
	return d.deliver(ctx, to, subject, templateName, data, headers, "marketing")
}

func (d *Dispatcher) deliver(ctx context.Context, to, subject, templateName string, data map[string]any, headers map[string]string, mode string) (Result, error) {
	tmpl, err := d.templates.Get(templateName)
	if err != nil {
		return Result{}, err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return Result{}, fmt.Errorf("mailer: render template %q: %w", templateName, err)
	}

	msg := &Message{
		From:      d.cfg.From,
		To:        to,
		Subject:   subject,
		MessageID: NewMessageID(),
		Headers:   headers,
		HTMLBody:  body.String(),
	}

	if err := d.transport.Send(ctx, msg); err != nil {
		d.logger.Error("email send failed",
			slog.String("to", to),
			slog.String("template", templateName),
			slog.Any("error", err),
		)
		d.metrics.CountEmail(mode, "failed")
		return Result{MessageID: msg.MessageID, Success: false, Err: err}, nil
	}

	d.logger.Info("email sent",
		slog.String("to", to),
		slog.String("template", templateName),
		slog.String("messageId", msg.MessageID),
	)
	d.metrics.CountEmail(mode, "sent")
	return Result{MessageID: msg.MessageID, Success: true}, nil
}

// FeedbackEvent is a bounce or complaint notification from the
// transport provider.
type FeedbackEvent struct {
	Type      string    `json:"type"`
	Recipient string    `json:"recipient"`
	MessageID string    `json:"messageId,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// ProcessFeedback records a provider feedback event. No suppression
// list is maintained; the event is logged and counted only.
func (d *Dispatcher) ProcessFeedback(event FeedbackEvent) {
	d.logger.Warn("email feedback received",
		slog.String("type", event.Type),
		slog.String("recipient", event.Recipient),
		slog.String("messageId", event.MessageID),
		slog.String("detail", event.Detail),
	)
	d.metrics.CountFeedback(event.Type)
}
