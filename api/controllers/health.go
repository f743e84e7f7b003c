package controllers

import (
	"context"
	"net/http"

	"github.com/Leo-Marbehan/arrivage-data-visualization/api/responses"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/store"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/config"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/logger"
)

const envHeader = "X-Arrivage-Env"

// StateReporter exposes the lifecycle state of an in-memory store.
type StateReporter interface {
	State() store.State
}

// CachePinger verifies the optional cache backend connection.
type CachePinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports each store's state and the cache connection. The
// endpoint answers 200 regardless; readiness is in the payload so load
// balancers and dashboards can distinguish a warming store from a dead one.
func HealthReady(cfg *config.Config, logg *logger.Logger, orgs, ords StateReporter, cache CachePinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		cacheStatus := "disabled"
		if cache != nil {
			cacheStatus = "ok"
			if err := cache.Ping(r.Context()); err != nil {
				cacheStatus = "unreachable"
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "cache ping failed")
				}
			}
		}

		responses.WriteSuccess(w, map[string]string{
			"organizations": orgs.State().String(),
			"orders":        ords.State().String(),
			"cache":         cacheStatus,
		})
	}
}
