package analytics

import (
	"testing"
	"time"

	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/orders"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/organizations"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/enums"
)

func seriesOrder(vendorID string, distributed time.Time) orders.Order {
	return orders.Order{
		ID:                   vendorID + distributed.Format("2006-01-02"),
		VendorOrganizationID: vendorID,
		DistributionDate:     distributed,
	}
}

func seriesVendorLookup(categories map[string][]enums.VendorProductCategory) VendorCategoriesLookup {
	return func(id string) ([]enums.VendorProductCategory, bool) {
		cats, ok := categories[id]
		return cats, ok
	}
}

func monthCount(months []MonthCount, month time.Time) int {
	for _, m := range months {
		if m.Month.Equal(month) {
			return m.Count
		}
	}
	return 0
}

func TestMonthlyOrderSeries(t *testing.T) {
	lookup := seriesVendorLookup(map[string][]enums.VendorProductCategory{
		"V-meat":  {enums.VendorProductCategoryMeat},
		"V-multi": {enums.VendorProductCategoryMeat, enums.VendorProductCategoryDairy},
	})

	june := time.Date(2022, time.June, 10, 0, 0, 0, 0, time.UTC)
	july := time.Date(2022, time.July, 3, 0, 0, 0, 0, time.UTC)
	orderList := []orders.Order{
		seriesOrder("V-meat", june),
		seriesOrder("V-multi", june),
		seriesOrder("V-meat", july),
	}

	series := MonthlyOrderSeries(orderList, lookup, OrderSeriesOptions{})

	juneMonth := time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)
	julyMonth := time.Date(2022, time.July, 1, 0, 0, 0, 0, time.UTC)

	// The multi-category order counts once per category but once in total.
	if got := monthCount(series.Total, juneMonth); got != 2 {
		t.Errorf("june total: got %d, want 2", got)
	}
	if got := monthCount(series.Total, julyMonth); got != 1 {
		t.Errorf("july total: got %d, want 1", got)
	}

	if len(series.Categories) != 2 {
		t.Fatalf("expected 2 category series, got %d", len(series.Categories))
	}
	byCategory := make(map[enums.VendorProductCategory][]MonthCount)
	for _, cs := range series.Categories {
		byCategory[cs.Category] = cs.Months
	}
	if got := monthCount(byCategory[enums.VendorProductCategoryMeat], juneMonth); got != 2 {
		t.Errorf("meat june: got %d, want 2", got)
	}
	if got := monthCount(byCategory[enums.VendorProductCategoryDairy], juneMonth); got != 1 {
		t.Errorf("dairy june: got %d, want 1", got)
	}
}

func TestMonthlyOrderSeriesCrop(t *testing.T) {
	lookup := seriesVendorLookup(map[string][]enums.VendorProductCategory{
		"V1": {enums.VendorProductCategoryBread},
	})
	orderList := []orders.Order{
		seriesOrder("V1", time.Date(2021, time.March, 31, 0, 0, 0, 0, time.UTC)),
		seriesOrder("V1", time.Date(2021, time.April, 1, 0, 0, 0, 0, time.UTC)),
		seriesOrder("V1", time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)),
		seriesOrder("V1", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)),
	}

	series := MonthlyOrderSeries(orderList, lookup, OrderSeriesOptions{})
	total := 0
	for _, m := range series.Total {
		total += m.Count
	}
	if total != 2 {
		t.Errorf("expected 2 orders inside the default crop, got %d", total)
	}
}

func TestMonthlyOrderSeriesDisplayedFilter(t *testing.T) {
	lookup := seriesVendorLookup(map[string][]enums.VendorProductCategory{
		"V-multi": {enums.VendorProductCategoryMeat, enums.VendorProductCategoryDairy},
	})
	june := time.Date(2022, time.June, 10, 0, 0, 0, 0, time.UTC)
	orderList := []orders.Order{seriesOrder("V-multi", june)}

	series := MonthlyOrderSeries(orderList, lookup, OrderSeriesOptions{
		Displayed: []enums.VendorProductCategory{enums.VendorProductCategoryBread},
	})
	if len(series.Categories) != 0 {
		t.Errorf("expected no category series, got %d", len(series.Categories))
	}
	if len(series.Total) != 0 {
		t.Errorf("order with no displayed category must not count in total, got %v", series.Total)
	}
}

func TestMonthlyOrderSeriesDropsUnknownVendor(t *testing.T) {
	lookup := seriesVendorLookup(nil)
	june := time.Date(2022, time.June, 10, 0, 0, 0, 0, time.UTC)

	series := MonthlyOrderSeries([]orders.Order{seriesOrder("V-ghost", june)}, lookup, OrderSeriesOptions{})
	if len(series.Total) != 0 || len(series.Categories) != 0 {
		t.Errorf("expected empty series, got %+v", series)
	}
}

func seriesOrg(id string, kind enums.OrganizationKind, created time.Time) organizations.Organization {
	return organizations.Organization{ID: id, Kind: kind, CreationTimestamp: created}
}

func TestMonthlyOrganizationSeries(t *testing.T) {
	jan := time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC)
	march := time.Date(2023, time.March, 20, 0, 0, 0, 0, time.UTC)
	orgs := []organizations.Organization{
		seriesOrg("V1", enums.OrganizationKindVendor, jan),
		seriesOrg("B1", enums.OrganizationKindBuyer, jan),
		seriesOrg("B2", enums.OrganizationKindBuyer, march),
	}

	all := MonthlyOrganizationSeries(orgs, OrganizationFilterAll, CountModeAbsolute)
	if len(all) != 2 {
		t.Fatalf("expected 2 months, got %d", len(all))
	}
	// February has no creations and must be absent.
	if all[0].Count != 2 || all[1].Count != 1 {
		t.Errorf("unexpected counts: %+v", all)
	}

	vendors := MonthlyOrganizationSeries(orgs, OrganizationFilterVendors, CountModeAbsolute)
	if len(vendors) != 1 || vendors[0].Count != 1 {
		t.Errorf("unexpected vendor series: %+v", vendors)
	}

	buyers := MonthlyOrganizationSeries(orgs, OrganizationFilterBuyers, CountModeAbsolute)
	if len(buyers) != 2 || buyers[0].Count != 1 || buyers[1].Count != 1 {
		t.Errorf("unexpected buyer series: %+v", buyers)
	}
}

func TestMonthlyOrganizationSeriesCumulative(t *testing.T) {
	orgs := []organizations.Organization{
		seriesOrg("O1", enums.OrganizationKindVendor, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)),
		seriesOrg("O2", enums.OrganizationKindVendor, time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC)),
		seriesOrg("O3", enums.OrganizationKindVendor, time.Date(2023, time.April, 2, 0, 0, 0, 0, time.UTC)),
	}

	absolute := MonthlyOrganizationSeries(orgs, OrganizationFilterAll, CountModeAbsolute)
	cumulative := MonthlyOrganizationSeries(orgs, OrganizationFilterAll, CountModeCumulative)
	if len(absolute) != len(cumulative) {
		t.Fatalf("mode must not change month coverage")
	}
	running := 0
	for i := range absolute {
		running += absolute[i].Count
		if cumulative[i].Count != running {
			t.Errorf("month %s: cumulative %d, want %d", cumulative[i].Month.Format("2006-01"), cumulative[i].Count, running)
		}
	}
	if cumulative[len(cumulative)-1].Count != 3 {
		t.Errorf("final cumulative count must equal total organizations")
	}
}
