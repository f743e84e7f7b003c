package analytics

import (
	"net/http"
	"strings"

	"github.com/Leo-Marbehan/arrivage-data-visualization/api/responses"
	"github.com/Leo-Marbehan/arrivage-data-visualization/api/validators"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/analytics"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/enums"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/logger"
)

type counterpartiesParams struct {
	Kind  string `json:"kind" validate:"required,oneof=vendor buyer"`
	ID    string `json:"id" validate:"required"`
	Limit int    `json:"limit" validate:"min=0,max=100"`
}

// TopCounterparties ranks the organizations on the opposite side of the
// selected entity's orders by order count.
func TopCounterparties(orgs Organizations, ords Orders, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := requireStores(orgs, ords); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", analytics.DefaultTopN, 0, 100)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		params := counterpartiesParams{
			Kind:  strings.TrimSpace(r.URL.Query().Get("kind")),
			ID:    strings.TrimSpace(r.URL.Query().Get("id")),
			Limit: limit,
		}
		if err := validators.ValidateStruct(&params); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		ranked := analytics.TopCounterparties(ords.Orders(), enums.OrganizationKind(params.Kind), params.ID, params.Limit)
		responses.WriteSuccess(w, ranked)
	}
}

// CountsByEntity ranks one side of the marketplace by an order metric.
func CountsByEntity(orgs Organizations, ords Orders, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := requireStores(orgs, ords); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		kind, err := validators.ParseQueryEnum(r, "kind", "vendor", "vendor", "buyer")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		metric, err := parseMetricParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", analytics.DefaultTopN, 0, 100)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		ranked := analytics.CountsByEntity(ords.Orders(), enums.OrganizationKind(kind), metric, limit)
		responses.WriteSuccess(w, ranked)
	}
}
