package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/skudeck/skudeck/internal/notify"
	"github.com/skudeck/skudeck/internal/observability"
	"github.com/skudeck/skudeck/internal/orders"
	"github.com/skudeck/skudeck/internal/skus"
	"github.com/skudeck/skudeck/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger        *slog.Logger
	Config        *Config
	OrdersHandler *orders.Handler
	SKUsHandler   *skus.Handler
	Notifier      *notify.Notifier
	JobHandler    *jobs.Handler
	Metrics       *observability.Metrics
}

// NewRouter constructs the chi.Router with skudeck defaults.
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

	r.Route("/orders", params.OrdersHandler.MountRoutes)
	r.Route("/skus", params.SKUsHandler.MountRoutes)

	if params.Notifier != nil {
		handler := notify.NewHandler(params.Notifier)
		r.Route("/notifications", handler.MountRoutes)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
