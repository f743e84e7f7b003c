package controllers

import (
	"context"
	"net/http"

	"github.com/Leo-Marbehan/arrivage-data-visualization/api/responses"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/orders"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/logger"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/pagination"
)

// OrdersStore is the read surface the order endpoints need.
type OrdersStore interface {
	StateReporter
	Orders() []orders.Order
}

// OrdersResetter clears the cached merged list and reloads from source.
type OrdersResetter interface {
	Reset(ctx context.Context) error
}

func ListOrders(ords OrdersStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := RequireReady("order", ords); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list := ords.Orders()
		start, end, page := pagination.Slice(len(list), params)
		responses.WriteSuccess(w, listEnvelope{Items: list[start:end], Page: page})
	}
}

// ResetOrders drops the cached order list and rebuilds the store from the
// CSV exports. The rebuild blocks the request; callers poll /health/ready
// while a long reload runs elsewhere.
func ResetOrders(ords OrdersResetter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if logg != nil {
			logg.Info(ctx, "order store reset requested")
		}
		if err := ords.Reset(ctx); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "reloaded"})
	}
}
