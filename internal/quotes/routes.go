package quotes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/services", h.ListServices)
	r.Group(func(r chi.Router) {
		// Tighter limit on the public form than the global stack: this
		// endpoint creates rows and sends mail.
		r.Use(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Post("/request", h.Submit)
	})
}
