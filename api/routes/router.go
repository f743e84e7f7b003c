package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Leo-Marbehan/arrivage-data-visualization/api/controllers"
	chartcontrollers "github.com/Leo-Marbehan/arrivage-data-visualization/api/controllers/analytics"
	"github.com/Leo-Marbehan/arrivage-data-visualization/api/middleware"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/orders"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/organizations"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/config"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/logger"
)

// NewRouter wires the read-only dashboard API over the two in-memory
// stores. Every data endpoint answers STATE_CONFLICT until the stores have
// loaded; the health endpoints always answer.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	orgRepo *organizations.Repository,
	orderRepo *orders.Repository,
	cache controllers.CachePinger,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, orgRepo, orderRepo, cache))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/organizations", controllers.ListOrganizations(orgRepo, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(orderRepo, logg))
			r.Post("/reset", controllers.ResetOrders(orderRepo, logg))
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/top-counterparties", chartcontrollers.TopCounterparties(orgRepo, orderRepo, logg))
			r.Get("/rankings", chartcontrollers.CountsByEntity(orgRepo, orderRepo, logg))
			r.Get("/network", chartcontrollers.Network(orgRepo, orderRepo, logg))
			r.Get("/chord", chartcontrollers.Chord(orgRepo, orderRepo, logg))
			r.Get("/buyer-categories", chartcontrollers.BuyerCategories(orgRepo, orderRepo, logg))
			r.Get("/category-spend", chartcontrollers.CategorySpend(orgRepo, orderRepo, logg))
			r.Get("/orders-by-month", chartcontrollers.OrdersByMonth(orgRepo, orderRepo, logg))
			r.Get("/organizations-by-month", chartcontrollers.OrganizationsByMonth(orgRepo, logg))
		})
	})

	return r
}
