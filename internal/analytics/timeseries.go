package analytics

import (
	"sort"
	"time"

	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/orders"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/organizations"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/enums"
)

// Default crop bounds of the monthly order chart. The dataset's first
// months are too sparse and its tail too fresh to plot meaningfully.
var (
	DefaultSeriesFrom = time.Date(2021, time.April, 1, 0, 0, 0, 0, time.UTC)
	DefaultSeriesTo   = time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
)

// MonthCount is one calendar-month bucket.
type MonthCount struct {
	Month time.Time `json:"month"`
	Count int       `json:"count"`
}

// CategorySeries is the monthly buckets of one vendor product category.
type CategorySeries struct {
	Category enums.VendorProductCategory `json:"category"`
	Label    string                      `json:"label"`
	Months   []MonthCount                `json:"months"`
}

// OrderSeries is the monthly order chart feed: one series per displayed
// category plus a total series counting each order once.
type OrderSeries struct {
	Total      []MonthCount     `json:"total"`
	Categories []CategorySeries `json:"categories"`
}

// OrderSeriesOptions filters the monthly order series. Zero From/To fall
// back to the default crop. Nil Displayed means every category.
type OrderSeriesOptions struct {
	From      time.Time
	To        time.Time
	Displayed []enums.VendorProductCategory
}

// MonthlyOrderSeries buckets orders by the calendar month of their
// distribution date, split by the vendor's product categories. An order
// counts once per category its vendor carries, but only once in the total.
// Orders whose vendor cannot be resolved are dropped.
func MonthlyOrderSeries(orderList []orders.Order, vendorLookup VendorCategoriesLookup, opts OrderSeriesOptions) OrderSeries {
	from, to := opts.From, opts.To
	if from.IsZero() {
		from = DefaultSeriesFrom
	}
	if to.IsZero() {
		to = DefaultSeriesTo
	}
	displayed := opts.Displayed
	if displayed == nil {
		displayed = enums.VendorProductCategories
	}
	shown := make(map[enums.VendorProductCategory]struct{}, len(displayed))
	for _, category := range displayed {
		shown[category] = struct{}{}
	}

	perCategory := make(map[enums.VendorProductCategory]map[time.Time]int)
	totals := make(map[time.Time]int)

	for _, order := range orderList {
		// The crop compares truncated months, so both bound months are
		// included in full.
		month := monthOf(order.DistributionDate)
		if month.Before(from) || month.After(to) {
			continue
		}
		categories, ok := vendorLookup(order.VendorOrganizationID)
		if !ok {
			continue
		}

		countedInTotal := false
		for _, category := range categories {
			if _, ok := shown[category]; !ok {
				continue
			}
			buckets, ok := perCategory[category]
			if !ok {
				buckets = make(map[time.Time]int)
				perCategory[category] = buckets
			}
			buckets[month]++
			countedInTotal = true
		}
		if countedInTotal {
			totals[month]++
		}
	}

	series := OrderSeries{Total: sortedMonths(totals)}
	for _, category := range enums.VendorProductCategories {
		buckets, ok := perCategory[category]
		if !ok {
			continue
		}
		series.Categories = append(series.Categories, CategorySeries{
			Category: category,
			Label:    enums.TranslateVendorProductCategory(category),
			Months:   sortedMonths(buckets),
		})
	}
	return series
}

// OrganizationFilter restricts the organization series to one kind.
type OrganizationFilter string

const (
	OrganizationFilterAll     OrganizationFilter = "all"
	OrganizationFilterVendors OrganizationFilter = "vendors"
	OrganizationFilterBuyers  OrganizationFilter = "buyers"
)

// IsValid reports whether the filter is a known value.
func (f OrganizationFilter) IsValid() bool {
	return f == OrganizationFilterAll || f == OrganizationFilterVendors || f == OrganizationFilterBuyers
}

// CountMode selects per-month counts or a running total.
type CountMode string

const (
	CountModeAbsolute   CountMode = "absolute"
	CountModeCumulative CountMode = "cumulative"
)

// IsValid reports whether the mode is a known value.
func (m CountMode) IsValid() bool {
	return m == CountModeAbsolute || m == CountModeCumulative
}

// MonthlyOrganizationSeries buckets organizations by the calendar month of
// their creation timestamp. Months with no creations are absent from the
// result; in cumulative mode each present month carries the running total.
func MonthlyOrganizationSeries(orgs []organizations.Organization, filter OrganizationFilter, mode CountMode) []MonthCount {
	buckets := make(map[time.Time]int)
	for _, org := range orgs {
		switch filter {
		case OrganizationFilterVendors:
			if org.Kind != enums.OrganizationKindVendor {
				continue
			}
		case OrganizationFilterBuyers:
			if org.Kind != enums.OrganizationKindBuyer {
				continue
			}
		}
		buckets[monthOf(org.CreationTimestamp)]++
	}

	months := sortedMonths(buckets)
	if mode == CountModeCumulative {
		running := 0
		for i := range months {
			running += months[i].Count
			months[i].Count = running
		}
	}
	return months
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func sortedMonths(buckets map[time.Time]int) []MonthCount {
	months := make([]MonthCount, 0, len(buckets))
	for month, count := range buckets {
		months = append(months, MonthCount{Month: month, Count: count})
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month.Before(months[j].Month)
	})
	return months
}
