package analytics

import (
	"net/http"

	"github.com/Leo-Marbehan/arrivage-data-visualization/api/responses"
	"github.com/Leo-Marbehan/arrivage-data-visualization/api/validators"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/analytics"
	pkgerrors "github.com/Leo-Marbehan/arrivage-data-visualization/pkg/errors"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/logger"
)

// OrdersByMonth serves the monthly order series, split by vendor product
// category with an optional displayed-category filter and month range.
func OrdersByMonth(orgs Organizations, ords Orders, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := requireStores(orgs, ords); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		from, err := parseMonthParam(r, "from")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		to, err := parseMonthParam(r, "to")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if !from.IsZero() && !to.IsZero() && to.Before(from) {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "to must not precede from").
				WithDetails(map[string]any{"field": "to"}))
			return
		}
		displayed, err := parseCategoriesParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		series := analytics.MonthlyOrderSeries(ords.Orders(), vendorCategoriesLookup(orgs), analytics.OrderSeriesOptions{
			From:      from,
			To:        to,
			Displayed: displayed,
		})
		responses.WriteSuccess(w, series)
	}
}

// OrganizationsByMonth serves organization creations bucketed by month,
// absolute or cumulative, filtered to one kind or both.
func OrganizationsByMonth(orgs Organizations, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := requireOrganizations(orgs); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		filter, err := validators.ParseQueryEnum(r, "filter", string(analytics.OrganizationFilterAll),
			string(analytics.OrganizationFilterAll), string(analytics.OrganizationFilterVendors), string(analytics.OrganizationFilterBuyers))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		mode, err := validators.ParseQueryEnum(r, "mode", string(analytics.CountModeAbsolute),
			string(analytics.CountModeAbsolute), string(analytics.CountModeCumulative))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		months := analytics.MonthlyOrganizationSeries(orgs.All(), analytics.OrganizationFilter(filter), analytics.CountMode(mode))
		responses.WriteSuccess(w, months)
	}
}
