package analytics

import (
	"net/http"

	"github.com/Leo-Marbehan/arrivage-data-visualization/api/responses"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/analytics"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/logger"
)

// BuyerCategories serves the confirmed-spend breakdown by buyer category,
// top five plus an Other bucket.
func BuyerCategories(orgs Organizations, ords Orders, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := requireStores(orgs, ords); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		stats := analytics.BuyerCategoryRollup(ords.Orders(), buyerCategoryLookup(orgs))
		responses.WriteSuccess(w, stats)
	}
}

// CategorySpend serves confirmed spend crossed by vendor product category
// and buyer category.
func CategorySpend(orgs Organizations, ords Orders, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := requireStores(orgs, ords); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows := analytics.CategorySpendMatrix(ords.Orders(), vendorCategoriesLookup(orgs), buyerCategoryLookup(orgs))
		responses.WriteSuccess(w, rows)
	}
}
