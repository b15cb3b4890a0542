package marketing

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"

	"github.com/cleanedge/cleanedge/internal/customers"
	"github.com/cleanedge/cleanedge/internal/platform/httpx"
	"github.com/cleanedge/cleanedge/jobs"
)

// audienceLimit caps how many consented customers one campaign can
// address in a single request.
const audienceLimit = 1000

// Enqueuer is the queue client slice the campaign endpoint needs.
type Enqueuer interface {
	EnqueueSendEmail(ctx context.Context, payload jobs.SendEmailPayload) (*asynq.TaskInfo, error)
}

// SendCampaignRequest queues one marketing template for a set of
// recipients, given explicitly or resolved from consented customers.
type SendCampaignRequest struct {
	Subject    string   `json:"subject" validate:"required,max=200"`
	Template   string   `json:"template" validate:"required,max=100"`
	Recipients []string `json:"recipients,omitempty" validate:"omitempty,dive,email"`
	Audience   string   `json:"audience,omitempty" validate:"omitempty,oneof=consented"`
}

// Handler exposes the campaign-send endpoint.
type Handler struct {
	logger    *slog.Logger
	customers *customers.Service
	queue     Enqueuer
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, customerService *customers.Service, queue Enqueuer) *Handler {
	return &Handler{
		logger:    logger,
		customers: customerService,
		queue:     queue,
		validator: validator.New(),
	}
}

// Send handles POST /api/marketing/send.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendCampaignRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "request body must be valid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if len(req.Recipients) == 0 && req.Audience == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "recipients or audience is required")
		return
	}

	recipients := req.Recipients
	if len(recipients) == 0 {
		resolved, err := h.customers.ConsentedEmails(r.Context(), audienceLimit)
		if err != nil {
			h.logger.Error("resolve campaign audience", slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		recipients = resolved
	}

	queued := 0
	for _, to := range recipients {
		_, err := h.queue.EnqueueSendEmail(r.Context(), jobs.SendEmailPayload{
			To:       to,
			Subject:  req.Subject,
			Template: req.Template,
		})
		if err != nil {
			h.logger.Error("enqueue marketing send", slog.String("to", to), slog.Any("error", err))
			continue
		}
		queued++
	}

	httpx.JSON(w, http.StatusAccepted, map[string]any{
		"queued": queued,
	})
}
