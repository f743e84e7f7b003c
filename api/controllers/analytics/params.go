package analytics

import (
	"net/http"
	"strings"
	"time"

	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/analytics"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/orders"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/organizations"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/store"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/enums"
	pkgerrors "github.com/Leo-Marbehan/arrivage-data-visualization/pkg/errors"
)

// Organizations is the organization read surface the chart endpoints need.
type Organizations interface {
	State() store.State
	Vendors() []organizations.VendorOrganization
	Buyers() []organizations.BuyerOrganization
	All() []organizations.Organization
}

// Orders is the order read surface the chart endpoints need.
type Orders interface {
	State() store.State
	Orders() []orders.Order
}

// requireStores gates every chart endpoint: both snapshots must be loaded
// before any aggregation answers.
func requireStores(orgs Organizations, ords Orders) error {
	if err := requireOrganizations(orgs); err != nil {
		return err
	}
	if state := ords.State(); state != store.StateReady {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order store is not ready").
			WithDetails(map[string]any{"state": state.String()})
	}
	return nil
}

func requireOrganizations(orgs Organizations) error {
	if state := orgs.State(); state != store.StateReady {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "organization store is not ready").
			WithDetails(map[string]any{"state": state.String()})
	}
	return nil
}

func parseMetricParam(r *http.Request) (analytics.Metric, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("metric"))
	if raw == "" {
		return analytics.MetricOrderCount, nil
	}
	metric, err := analytics.ParseMetric(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid metric").
			WithDetails(map[string]any{"field": "metric"})
	}
	return metric, nil
}

// parseMonthParam accepts YYYY-MM and returns the first day of the month.
func parseMonthParam(r *http.Request, key string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return time.Time{}, nil
	}
	month, err := time.Parse("2006-01", raw)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "month must be formatted YYYY-MM").
			WithDetails(map[string]any{"field": key})
	}
	return month, nil
}

func parseCategoriesParam(r *http.Request) ([]enums.VendorProductCategory, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("categories"))
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	categories := make([]enums.VendorProductCategory, 0, len(parts))
	for _, part := range parts {
		category := enums.VendorProductCategory(strings.TrimSpace(part))
		if !category.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category").
				WithDetails(map[string]any{"field": "categories", "value": string(category)})
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// The lookups below index the organization snapshot once per request. The
// snapshots are immutable slices, so the maps stay valid for the request's
// lifetime.

func vendorCategoriesLookup(orgs Organizations) analytics.VendorCategoriesLookup {
	index := make(map[string][]enums.VendorProductCategory)
	for _, vendor := range orgs.Vendors() {
		index[vendor.ID] = vendor.ProductCategories
	}
	return func(id string) ([]enums.VendorProductCategory, bool) {
		categories, ok := index[id]
		return categories, ok
	}
}

func buyerCategoryLookup(orgs Organizations) analytics.BuyerLookup {
	index := make(map[string]enums.BuyerOrganizationCategory)
	for _, buyer := range orgs.Buyers() {
		index[buyer.ID] = buyer.Category
	}
	return func(id string) (enums.BuyerOrganizationCategory, bool) {
		category, ok := index[id]
		return category, ok
	}
}

func vendorLocator(orgs Organizations) analytics.Locator {
	index := make(map[string]analytics.Location)
	for _, vendor := range orgs.Vendors() {
		index[vendor.ID] = analytics.Location{Region: vendor.Region, SubRegion: vendor.SubRegion}
	}
	return func(id string) (analytics.Location, bool) {
		loc, ok := index[id]
		return loc, ok
	}
}

func buyerLocator(orgs Organizations) analytics.Locator {
	index := make(map[string]analytics.Location)
	for _, buyer := range orgs.Buyers() {
		index[buyer.ID] = analytics.Location{Region: buyer.Region, SubRegion: buyer.SubRegion}
	}
	return func(id string) (analytics.Location, bool) {
		loc, ok := index[id]
		return loc, ok
	}
}
