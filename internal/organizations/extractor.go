package organizations

import (
	"context"

	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/csvsource"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/enums"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/logger"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/metrics"
)

// Extractor turns raw CSV records into typed organizations. Invalid rows are
// skipped with a logged diagnostic, never fatal.
type Extractor struct {
	log     *logger.Logger
	metrics *metrics.IngestMetrics
}

func NewExtractor(log *logger.Logger, ingest *metrics.IngestMetrics) *Extractor {
	return &Extractor{log: log, metrics: ingest}
}

// ExtractVendor validates one vendor row. On top of the shared organization
// fields it scans the raw product-category columns; any present, non-empty
// column that cannot be canonicalized invalidates the whole row.
func (e *Extractor) ExtractVendor(ctx context.Context, rec csvsource.Record, index int) *VendorOrganization {
	const source = "Vendor"

	base := e.extractBase(ctx, rec, source, index)
	if base == nil {
		return nil
	}
	base.Kind = enums.OrganizationKindVendor

	var categories []enums.VendorProductCategory
	for _, raw := range enums.RawVendorProductCategories {
		value, present := rec[raw]
		if !present || value == "" {
			continue
		}
		category, ok, err := enums.ParseRawVendorProductCategory(raw)
		if err != nil {
			e.skip(ctx, source, index, "invalid_product_category", "product category "+raw+" is invalid")
			return nil
		}
		if ok {
			categories = append(categories, category)
		}
	}

	e.metrics.IncExtracted(source)
	return &VendorOrganization{Organization: *base, ProductCategories: categories}
}

// ExtractBuyer validates one buyer row. IsPro is decided by the source file
// alone.
func (e *Extractor) ExtractBuyer(ctx context.Context, rec csvsource.Record, buyerSource BuyerSource, index int) *BuyerOrganization {
	source := string(buyerSource)

	base := e.extractBase(ctx, rec, source, index)
	if base == nil {
		return nil
	}
	base.Kind = enums.OrganizationKindBuyer

	rawCategory, present := rec["org_cat"]
	if !present || rawCategory == "" {
		e.skip(ctx, source, index, "missing_category", "category is missing")
		return nil
	}
	category, err := enums.ParseRawBuyerOrganizationCategory(rawCategory)
	if err != nil {
		e.skip(ctx, source, index, "invalid_category", "category is invalid")
		return nil
	}

	e.metrics.IncExtracted(source)
	return &BuyerOrganization{
		Organization: *base,
		Category:     category,
		IsPro:        buyerSource == BuyerSourcePro,
	}
}

func (e *Extractor) extractBase(ctx context.Context, rec csvsource.Record, source string, index int) *Organization {
	id, present := rec["unique_id"]
	if !present || id == "" {
		e.skip(ctx, source, index, "missing_id", "id is missing")
		return nil
	}

	rawLanguage, present := rec["lang"]
	if !present || rawLanguage == "" {
		e.skip(ctx, source, index, "missing_language", "language is missing")
		return nil
	}
	language, err := enums.ParseLanguage(rawLanguage)
	if err != nil {
		e.skip(ctx, source, index, "invalid_language", "language is invalid")
		return nil
	}

	country, present := rec["country"]
	if !present || country == "" {
		e.skip(ctx, source, index, "missing_country", "country is missing")
		return nil
	}

	province, present := rec["province"]
	if !present || province == "" {
		e.skip(ctx, source, index, "missing_province", "province is missing")
		return nil
	}

	region, present := rec["region"]
	if !present || region == "" {
		e.skip(ctx, source, index, "missing_region", "region is missing")
		return nil
	}

	subRegion, present := rec["sous-region"]
	if !present || subRegion == "" {
		e.skip(ctx, source, index, "missing_sub_region", "sub region is missing")
		return nil
	}

	city, present := rec["city"]
	if !present || city == "" {
		e.skip(ctx, source, index, "missing_city", "city is missing")
		return nil
	}

	rawTimestamp, present := rec["timestamp_creation"]
	if !present || rawTimestamp == "" {
		e.skip(ctx, source, index, "missing_creation_timestamp", "creation timestamp is missing")
		return nil
	}
	creationTimestamp, err := csvsource.ParseDate(rawTimestamp)
	if err != nil {
		e.skip(ctx, source, index, "invalid_creation_timestamp", "creation timestamp is invalid")
		return nil
	}

	return &Organization{
		ID:                id,
		Language:          language,
		Country:           country,
		Province:          province,
		Region:            region,
		SubRegion:         subRegion,
		City:              city,
		CreationTimestamp: creationTimestamp,
	}
}

func (e *Extractor) skip(ctx context.Context, source string, index int, reason, msg string) {
	e.metrics.IncSkipped(source, reason)
	ctx = e.log.WithFields(ctx, map[string]any{
		"source": source,
		"index":  index,
	})
	e.log.Debug(ctx, msg)
}

// DedupeVendors keeps the first occurrence of each id in source order.
func (e *Extractor) DedupeVendors(ctx context.Context, vendors []VendorOrganization) []VendorOrganization {
	deduped := make([]VendorOrganization, 0, len(vendors))
	seen := make(map[string]struct{}, len(vendors))
	for _, vendor := range vendors {
		if _, ok := seen[vendor.ID]; ok {
			e.metrics.IncDuplicate("Vendor")
			e.log.Warn(e.log.WithField(ctx, "id", vendor.ID), "duplicate vendor organization id")
			continue
		}
		seen[vendor.ID] = struct{}{}
		deduped = append(deduped, vendor)
	}
	return deduped
}

// DedupeBuyers keeps the first occurrence of each id in source order.
func (e *Extractor) DedupeBuyers(ctx context.Context, buyers []BuyerOrganization, buyerSource BuyerSource) []BuyerOrganization {
	deduped := make([]BuyerOrganization, 0, len(buyers))
	seen := make(map[string]struct{}, len(buyers))
	for _, buyer := range buyers {
		if _, ok := seen[buyer.ID]; ok {
			e.metrics.IncDuplicate(string(buyerSource))
			e.log.Warn(e.log.WithField(ctx, "id", buyer.ID), "duplicate buyer organization id")
			continue
		}
		seen[buyer.ID] = struct{}{}
		deduped = append(deduped, buyer)
	}
	return deduped
}
