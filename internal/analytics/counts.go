package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/orders"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/enums"
)

// DefaultTopN caps ranked aggregations for chart readability.
const DefaultTopN = 15

// EntityValue is one ranked bar: an organization id and its accumulated
// metric.
type EntityValue struct {
	ID    string          `json:"id"`
	Value decimal.Decimal `json:"value"`
}

// TopCounterparties ranks the counterparties of one selected entity by
// order count. For a vendor the counterparties are the buyers that ordered
// from it, and vice versa. Results are descending, capped at topN (ties
// broken by id for stable output).
func TopCounterparties(orderList []orders.Order, kind enums.OrganizationKind, entityID string, topN int) []EntityValue {
	if entityID == "" {
		return nil
	}

	counts := make(map[string]int64)
	for _, order := range orderList {
		switch kind {
		case enums.OrganizationKindVendor:
			if order.VendorOrganizationID == entityID {
				counts[order.BuyerOrganizationID]++
			}
		case enums.OrganizationKindBuyer:
			if order.BuyerOrganizationID == entityID {
				counts[order.VendorOrganizationID]++
			}
		}
	}
	return rankCounts(counts, topN)
}

// CountsByEntity groups orders by vendor or buyer id and accumulates the
// chosen metric per entity, descending, capped at topN.
func CountsByEntity(orderList []orders.Order, kind enums.OrganizationKind, metric Metric, topN int) []EntityValue {
	sums := make(map[string]decimal.Decimal)
	for _, order := range orderList {
		var id string
		switch kind {
		case enums.OrganizationKindVendor:
			id = order.VendorOrganizationID
		case enums.OrganizationKindBuyer:
			id = order.BuyerOrganizationID
		}
		if id == "" {
			continue
		}
		sums[id] = sums[id].Add(metricValue(order, metric))
	}

	ranked := make([]EntityValue, 0, len(sums))
	for id, value := range sums {
		ranked = append(ranked, EntityValue{ID: id, Value: value})
	}
	return rankAndCap(ranked, topN)
}

func metricValue(order orders.Order, metric Metric) decimal.Decimal {
	switch metric {
	case MetricUntaxedAmount:
		return order.TotalAmountWithoutTaxes
	case MetricTaxedAmount:
		return order.TotalAmountWithTaxes
	case MetricDistance:
		return order.DistanceToPickup
	default:
		return decimal.NewFromInt(1)
	}
}

func rankCounts(counts map[string]int64, topN int) []EntityValue {
	ranked := make([]EntityValue, 0, len(counts))
	for id, count := range counts {
		ranked = append(ranked, EntityValue{ID: id, Value: decimal.NewFromInt(count)})
	}
	return rankAndCap(ranked, topN)
}

func rankAndCap(ranked []EntityValue, topN int) []EntityValue {
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Value.Equal(ranked[j].Value) {
			return ranked[i].Value.GreaterThan(ranked[j].Value)
		}
		return ranked[i].ID < ranked[j].ID
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
