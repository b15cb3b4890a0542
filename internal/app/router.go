package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/cleanedge/cleanedge/internal/customers"
	"github.com/cleanedge/cleanedge/internal/mailer"
	"github.com/cleanedge/cleanedge/internal/marketing"
	"github.com/cleanedge/cleanedge/internal/observability"
	"github.com/cleanedge/cleanedge/internal/quotes"
	"github.com/cleanedge/cleanedge/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Metrics          *observability.Metrics
	QuoteHandler     *quotes.Handler
	CustomerHandler  *customers.Handler
	EmailHandler     *mailer.Handler
	MarketingHandler *marketing.Handler
	JobHandler       *jobs.Handler
}

// NewRouter constructs the chi.Router with Clean Edge defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/quotes", params.QuoteHandler.MountRoutes)
	if params.CustomerHandler != nil {
		r.Route("/api/customers", params.CustomerHandler.MountRoutes)
	}
	if params.EmailHandler != nil {
		r.Route("/api/email", params.EmailHandler.MountRoutes)
	}
	if params.MarketingHandler != nil {
		r.Route("/api/marketing", params.MarketingHandler.MountRoutes)
	}
	if params.JobHandler != nil {
		r.Route("/api/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
