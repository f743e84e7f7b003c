// Package organizations reconciles the vendor and buyer CSV exports into an
// in-memory read-only store.
package organizations

import (
	"time"

	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/enums"
)

// Organization holds the fields shared by vendors and buyers. Kind is the
// explicit discriminant; consumers never probe for variant-specific fields.
type Organization struct {
	ID                string                 `json:"id"`
	Kind              enums.OrganizationKind `json:"kind"`
	Language          enums.Language         `json:"language"`
	Country           string                 `json:"country"`
	Province          string                 `json:"province"`
	Region            string                 `json:"region"`
	SubRegion         string                 `json:"sub_region"`
	City              string                 `json:"city"`
	CreationTimestamp time.Time              `json:"creation_timestamp"`
}

// VendorOrganization is an Organization that sells on the marketplace.
type VendorOrganization struct {
	Organization
	ProductCategories []enums.VendorProductCategory `json:"product_categories"`
}

// BuyerOrganization is an Organization that purchases on the marketplace.
// IsPro comes from which source file the row was read from, not from any
// column.
type BuyerOrganization struct {
	Organization
	Category enums.BuyerOrganizationCategory `json:"category"`
	IsPro    bool                            `json:"is_pro"`
}

// BuyerSource identifies which buyer export a row came from.
type BuyerSource string

const (
	BuyerSourcePro    BuyerSource = "Buyer pro"
	BuyerSourceNotPro BuyerSource = "Buyer not pro"
)
