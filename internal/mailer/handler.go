package mailer

import (
	"log/slog"
	"net/http"

	"github.com/cleanedge/cleanedge/internal/platform/httpx"
)

// Handler exposes the provider feedback webhook and the unsubscribe
// landing endpoint.
type Handler struct {
	logger     *slog.Logger
	dispatcher *Dispatcher
	signer     *UnsubscribeSigner
}

func NewHandler(logger *slog.Logger, dispatcher *Dispatcher, signer *UnsubscribeSigner) *Handler {
	return &Handler{
		logger:     logger,
		dispatcher: dispatcher,
		signer:     signer,
	}
}

func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	var event FeedbackEvent
	if err := httpx.DecodeJSON(r, &event); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed feedback event")
		return
	}
	switch event.Type {
	case "bounce", "complaint":
	default:
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "unknown feedback type")
		return
	}

	h.dispatcher.ProcessFeedback(event)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	token := r.URL.Query().Get("token")
	if email == "" || token == "" {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "email and token are required")
		return
	}
	if !h.signer.Verify(email, token) {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid unsubscribe token")
		return
	}

	// Opt-out is recorded in the log stream only; customer records are
	// not updated from this endpoint.
	h.logger.Info("unsubscribe requested", slog.String("email", email))
	httpx.JSON(w, http.StatusOK, map[string]string{
		"message": "You have been unsubscribed from marketing email.",
	})
}
