// Package orders loads the six status-partitioned order exports, merges
// them into one status-annotated order list and serves it from an in-memory
// read-only store with an optional Redis cache in front of the parse.
package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/enums"
)

// Order is one reconciled marketplace transaction. AllStatuses accumulates
// every status the order held across the source files it appeared in.
// DateAddedToSpreadsheet is the authoritative version timestamp used for
// merge conflict resolution.
type Order struct {
	ID                      string                 `json:"id"`
	Number                  string                 `json:"number"`
	DateAddedToSpreadsheet  time.Time              `json:"date_added_to_spreadsheet"`
	DueDate                 time.Time              `json:"due_date"`
	DistributionDate        time.Time              `json:"distribution_date"`
	UniqueItemsOrdered      int                    `json:"unique_items_ordered"`
	TotalAmountWithoutTaxes decimal.Decimal        `json:"total_amount_without_taxes"`
	TotalAmountWithTaxes    decimal.Decimal        `json:"total_amount_with_taxes"`
	DeliveryFees            decimal.Decimal        `json:"delivery_fees"`
	DistanceToPickup        decimal.Decimal        `json:"distance_to_pickup"`
	AllStatuses             []enums.OrderStatus    `json:"all_statuses"`
	DistributionMode        enums.DistributionMode `json:"distribution_mode"`
	VendorOrganizationID    string                 `json:"vendor_organization_id"`
	BuyerOrganizationID     string                 `json:"buyer_organization_id"`
	CreatorOrganizationID   string                 `json:"creator_organization_id"`
	IsCreatorLoggedIn       bool                   `json:"is_creator_logged_in"`
}

// HasStatus reports whether the order held the given status in any source
// file.
func (o Order) HasStatus(status enums.OrderStatus) bool {
	for _, s := range o.AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}
