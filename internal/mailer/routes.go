package mailer

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/feedback", h.Feedback)
	r.Get("/unsubscribe", h.Unsubscribe)
}
