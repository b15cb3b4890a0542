package quotes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cleanedge/cleanedge/internal/customers"
	"github.com/cleanedge/cleanedge/internal/observability"
	"github.com/cleanedge/cleanedge/internal/platform/httpx"
)

// Handler exposes the public quote endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *Validator
	metrics   *observability.Metrics
}

func NewHandler(logger *slog.Logger, service *Service, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: NewValidator(),
		metrics:   metrics,
	}
}

// Submit handles POST /api/quotes/request.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.metrics.CountQuote("invalid")
		httpx.ValidationFailed(w, []httpx.FieldError{{Msg: "request body must be valid JSON"}})
		return
	}

	req.Normalize()
	if violations := h.validator.Validate(req); len(violations) > 0 {
		h.metrics.CountQuote("invalid")
		httpx.ValidationFailed(w, violations)
		return
	}

	customer, err := h.service.Submit(r.Context(), req)
	if err != nil {
		h.metrics.CountQuote("failed")
		if errors.Is(err, customers.ErrDuplicateEmail) {
			h.logger.Warn("duplicate quote submission", slog.String("email", req.Email))
			httpx.RespondError(w, httpx.ErrDuplicate)
			return
		}
		h.logger.Error("quote submission failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	h.metrics.CountQuote("accepted")
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message":    "Quote request received. We will contact you shortly.",
		"customerId": customer.ID,
	})
}

// ListServices handles GET /api/quotes/services.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"services": ServiceCatalog,
	})
}
