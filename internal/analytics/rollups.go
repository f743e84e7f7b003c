package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/orders"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/enums"
)

// TopBuyerCategories is how many explicit categories the rollup keeps
// before folding the remainder into "Other".
const TopBuyerCategories = 5

// OtherBucketLabel is the display label of the folded remainder.
const OtherBucketLabel = "Autre"

// BuyerLookup resolves a buyer organization id to its category.
type BuyerLookup func(id string) (enums.BuyerOrganizationCategory, bool)

// BuyerCategoryStat is one bar pair of the category comparison chart.
type BuyerCategoryStat struct {
	Category     enums.BuyerOrganizationCategory `json:"category,omitempty"`
	Label        string                          `json:"label"`
	OrderCount   int                             `json:"order_count"`
	OrderPercent float64                         `json:"order_percent"`
	TotalSpend   decimal.Decimal                 `json:"total_spend"`
	SpendPercent float64                         `json:"spend_percent"`
	IsOther      bool                            `json:"is_other"`
}

// BuyerCategoryRollup groups confirmed orders by buyer category, ranks
// categories by spend, and keeps the top five with the rest folded into a
// synthetic "Other" bucket. Percentages are relative to the totals over all
// qualifying orders, so the kept categories plus Other always account for
// every qualifying order exactly once.
func BuyerCategoryRollup(orderList []orders.Order, lookup BuyerLookup) []BuyerCategoryStat {
	type bucket struct {
		count int
		spend decimal.Decimal
	}
	buckets := make(map[enums.BuyerOrganizationCategory]*bucket)

	totalOrders := 0
	totalSpend := decimal.Zero
	for _, order := range orderList {
		if !order.HasStatus(enums.OrderStatusConfirmed) {
			continue
		}
		if order.BuyerOrganizationID == "" || order.TotalAmountWithTaxes.IsZero() {
			continue
		}
		category, ok := lookup(order.BuyerOrganizationID)
		if !ok {
			continue
		}

		b, exists := buckets[category]
		if !exists {
			b = &bucket{}
			buckets[category] = b
		}
		b.count++
		b.spend = b.spend.Add(order.TotalAmountWithTaxes)
		totalOrders++
		totalSpend = totalSpend.Add(order.TotalAmountWithTaxes)
	}
	if totalOrders == 0 {
		return nil
	}

	ranked := make([]BuyerCategoryStat, 0, len(buckets))
	for category, b := range buckets {
		ranked = append(ranked, BuyerCategoryStat{
			Category:   category,
			Label:      enums.TranslateBuyerOrganizationCategory(category),
			OrderCount: b.count,
			TotalSpend: b.spend,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].TotalSpend.Equal(ranked[j].TotalSpend) {
			return ranked[i].TotalSpend.GreaterThan(ranked[j].TotalSpend)
		}
		return ranked[i].Category < ranked[j].Category
	})

	result := ranked
	if len(ranked) > TopBuyerCategories {
		result = ranked[:TopBuyerCategories]
		other := BuyerCategoryStat{Label: OtherBucketLabel, IsOther: true, TotalSpend: decimal.Zero}
		for _, folded := range ranked[TopBuyerCategories:] {
			other.OrderCount += folded.OrderCount
			other.TotalSpend = other.TotalSpend.Add(folded.TotalSpend)
		}
		if other.OrderCount > 0 {
			result = append(result, other)
		}
	}

	for i := range result {
		result[i].OrderPercent = float64(result[i].OrderCount) / float64(totalOrders) * 100
		if !totalSpend.IsZero() {
			percent, _ := result[i].TotalSpend.Div(totalSpend).Mul(decimal.NewFromInt(100)).Float64()
			result[i].SpendPercent = percent
		}
	}
	return result
}

// VendorCategoriesLookup resolves a vendor id to its product categories.
type VendorCategoriesLookup func(id string) ([]enums.VendorProductCategory, bool)

// CategorySpendCell is spend and order count for one buyer category within
// a product row.
type CategorySpendCell struct {
	BuyerCategory enums.BuyerOrganizationCategory `json:"buyer_category"`
	Label         string                          `json:"label"`
	Spend         decimal.Decimal                 `json:"spend"`
	OrderCount    int                             `json:"order_count"`
}

// CategorySpendRow is one stacked bar: a vendor product category with its
// spend split across buyer categories.
type CategorySpendRow struct {
	Category enums.VendorProductCategory `json:"category"`
	Label    string                      `json:"label"`
	Total    decimal.Decimal             `json:"total"`
	Cells    []CategorySpendCell         `json:"cells"`
}

// CategorySpendMatrix crosses vendor product categories with buyer
// categories over confirmed orders, accumulating taxed spend. A vendor with
// several product categories credits the full order amount to each of them,
// so a multi-category vendor's orders appear in every one of its rows. Rows
// are ranked by total spend descending.
func CategorySpendMatrix(orderList []orders.Order, vendorLookup VendorCategoriesLookup, buyerLookup BuyerLookup) []CategorySpendRow {
	type cell struct {
		spend decimal.Decimal
		count int
	}
	matrix := make(map[enums.VendorProductCategory]map[enums.BuyerOrganizationCategory]*cell)

	for _, order := range orderList {
		if !order.HasStatus(enums.OrderStatusConfirmed) {
			continue
		}
		productCategories, vendorOK := vendorLookup(order.VendorOrganizationID)
		buyerCategory, buyerOK := buyerLookup(order.BuyerOrganizationID)
		if !vendorOK || !buyerOK {
			continue
		}

		for _, product := range productCategories {
			row, ok := matrix[product]
			if !ok {
				row = make(map[enums.BuyerOrganizationCategory]*cell)
				matrix[product] = row
			}
			c, ok := row[buyerCategory]
			if !ok {
				c = &cell{}
				row[buyerCategory] = c
			}
			c.spend = c.spend.Add(order.TotalAmountWithTaxes)
			c.count++
		}
	}

	rows := make([]CategorySpendRow, 0, len(matrix))
	for _, product := range enums.VendorProductCategories {
		byBuyer, ok := matrix[product]
		if !ok {
			continue
		}
		row := CategorySpendRow{
			Category: product,
			Label:    enums.TranslateVendorProductCategory(product),
			Total:    decimal.Zero,
		}
		for _, buyerCategory := range enums.BuyerOrganizationCategories {
			c, ok := byBuyer[buyerCategory]
			if !ok {
				continue
			}
			row.Cells = append(row.Cells, CategorySpendCell{
				BuyerCategory: buyerCategory,
				Label:         enums.TranslateBuyerOrganizationCategory(buyerCategory),
				Spend:         c.spend,
				OrderCount:    c.count,
			})
			row.Total = row.Total.Add(c.spend)
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.GreaterThan(rows[j].Total)
	})
	return rows
}
