package orders

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/csvsource"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/enums"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/logger"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/metrics"
)

// Extractor turns raw order rows into typed Orders. Invalid rows are
// skipped with a logged diagnostic.
type Extractor struct {
	log     *logger.Logger
	metrics *metrics.IngestMetrics
}

func NewExtractor(log *logger.Logger, ingest *metrics.IngestMetrics) *Extractor {
	return &Extractor{log: log, metrics: ingest}
}

// parseAmount parses a locale-mixed currency cell: the first comma becomes
// the decimal separator and all whitespace (thousands separators,
// non-breaking spaces included) is stripped.
func parseAmount(raw string) (decimal.Decimal, error) {
	normalized := strings.Replace(raw, ",", ".", 1)
	normalized = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, normalized)
	return decimal.NewFromString(normalized)
}

// Extract validates one raw order row. AllStatuses starts empty; the caller
// tags the status implied by the source file after extraction succeeds.
func (e *Extractor) Extract(ctx context.Context, rec csvsource.Record, source string, index int) *Order {
	id, present := rec["Id"]
	if !present || id == "" {
		return e.skip(ctx, source, index, "missing_id", "id is missing")
	}

	number, present := rec["Number"]
	if !present {
		return e.skip(ctx, source, index, "missing_number", "number is missing")
	}

	rawTimestamp, present := rec["Timestamp"]
	if !present || rawTimestamp == "" {
		return e.skip(ctx, source, index, "missing_timestamp", "timestamp is missing")
	}
	dateAddedToSpreadsheet, err := csvsource.ParseDate(rawTimestamp)
	if err != nil {
		return e.skip(ctx, source, index, "invalid_timestamp", "timestamp is not a valid date")
	}

	rawDueDate, present := rec["Due date"]
	if !present || rawDueDate == "" {
		return e.skip(ctx, source, index, "missing_due_date", "due date is missing")
	}
	dueDate, err := csvsource.ParseDate(rawDueDate)
	if err != nil {
		return e.skip(ctx, source, index, "invalid_due_date", "due date is not a valid date")
	}

	rawUniqueItems, present := rec["Uniq items ordered"]
	if !present || rawUniqueItems == "" {
		return e.skip(ctx, source, index, "missing_unique_items", "unique items ordered is missing")
	}
	uniqueItemsOrdered, err := strconv.Atoi(strings.TrimSpace(rawUniqueItems))
	if err != nil {
		return e.skip(ctx, source, index, "invalid_unique_items", "unique items ordered is not a valid number")
	}

	rawWithoutTaxes, present := rec["Amount excluding taxes (CAD)"]
	if !present || rawWithoutTaxes == "" {
		return e.skip(ctx, source, index, "missing_amount_without_taxes", "amount without taxes is missing")
	}
	totalAmountWithoutTaxes, err := parseAmount(rawWithoutTaxes)
	if err != nil {
		return e.skip(ctx, source, index, "invalid_amount_without_taxes", "amount without taxes is not a valid number")
	}

	rawWithTaxes, present := rec["Amount including taxes (CAD)"]
	if !present || rawWithTaxes == "" {
		return e.skip(ctx, source, index, "missing_amount_with_taxes", "amount with taxes is missing")
	}
	totalAmountWithTaxes, err := parseAmount(rawWithTaxes)
	if err != nil {
		return e.skip(ctx, source, index, "invalid_amount_with_taxes", "amount with taxes is not a valid number")
	}

	rawMode, present := rec["Distribution mode"]
	if !present || rawMode == "" {
		return e.skip(ctx, source, index, "missing_distribution_mode", "distribution mode is missing")
	}
	distributionMode, err := enums.ParseDistributionMode(rawMode)
	if err != nil {
		return e.skip(ctx, source, index, "invalid_distribution_mode", "distribution mode is not valid")
	}

	rawDistributionDate, present := rec["Delivery date"]
	if !present || rawDistributionDate == "" {
		return e.skip(ctx, source, index, "missing_delivery_date", "delivery date is missing")
	}
	distributionDate, err := csvsource.ParseDate(rawDistributionDate)
	if err != nil {
		return e.skip(ctx, source, index, "invalid_delivery_date", "delivery date is not a valid date")
	}

	rawDeliveryFees, present := rec["Delivery fees (CAD)"]
	if !present {
		return e.skip(ctx, source, index, "missing_delivery_fees", "delivery fees are missing")
	}
	deliveryFees, err := parseAmount(rawDeliveryFees)
	if err != nil {
		// Unparsable fees default to zero, silently.
		deliveryFees = decimal.Zero
	}

	if _, present := rec["Distance to pickup (km)"]; !present {
		return e.skip(ctx, source, index, "missing_distance_to_pickup", "distance to pickup is missing")
	}
	// The per-order distance is discarded pending a real computation from
	// the city pair; every order carries zero.
	distanceToPickup := decimal.Zero

	vendorOrganizationID, present := rec["Vendor organization id"]
	if !present || vendorOrganizationID == "" {
		return e.skip(ctx, source, index, "missing_vendor_id", "vendor organization id is missing")
	}

	rawCreatorLoggedIn, present := rec["Creator logged in"]
	if !present || rawCreatorLoggedIn == "" {
		return e.skip(ctx, source, index, "missing_creator_logged_in", "creator logged in is missing")
	}
	isCreatorLoggedIn := rawCreatorLoggedIn == "TRUE"

	creatorOrganizationID, present := rec["Creator organization id"]
	if !present || (isCreatorLoggedIn && creatorOrganizationID == "") {
		return e.skip(ctx, source, index, "missing_creator_id", "creator organization id is missing")
	}

	buyerOrganizationID, present := rec["Buyer organization id"]
	if !present || (isCreatorLoggedIn && buyerOrganizationID == "" && creatorOrganizationID == "") {
		return e.skip(ctx, source, index, "missing_buyer_id", "buyer organization id is missing")
	}
	// Self-service orders: the logged-in creator is also the buyer.
	if isCreatorLoggedIn && buyerOrganizationID == "" {
		buyerOrganizationID = creatorOrganizationID
	}

	e.metrics.IncExtracted(source)
	return &Order{
		ID:                      id,
		Number:                  number,
		DateAddedToSpreadsheet:  dateAddedToSpreadsheet,
		DueDate:                 dueDate,
		DistributionDate:        distributionDate,
		UniqueItemsOrdered:      uniqueItemsOrdered,
		TotalAmountWithoutTaxes: totalAmountWithoutTaxes,
		TotalAmountWithTaxes:    totalAmountWithTaxes,
		DeliveryFees:            deliveryFees,
		DistanceToPickup:        distanceToPickup,
		AllStatuses:             []enums.OrderStatus{},
		DistributionMode:        distributionMode,
		VendorOrganizationID:    vendorOrganizationID,
		BuyerOrganizationID:     buyerOrganizationID,
		CreatorOrganizationID:   creatorOrganizationID,
		IsCreatorLoggedIn:       isCreatorLoggedIn,
	}
}

func (e *Extractor) skip(ctx context.Context, source string, index int, reason, msg string) *Order {
	e.metrics.IncSkipped(source, reason)
	ctx = e.log.WithFields(ctx, map[string]any{
		"source": source,
		"index":  index,
	})
	e.log.Debug(ctx, msg)
	return nil
}

// dedupeByID drops duplicate ids within one file's batch. For an id with
// several rows, exactly the first row in source order among those sharing
// the maximum DateAddedToSpreadsheet survives, so timestamp ties still keep
// one row.
func (e *Extractor) dedupeByID(ctx context.Context, source string, batch []Order) []Order {
	counts := make(map[string]int, len(batch))
	for _, order := range batch {
		counts[order.ID]++
	}

	newest := make(map[string]Order, len(counts))
	for _, order := range batch {
		best, seen := newest[order.ID]
		if !seen || order.DateAddedToSpreadsheet.After(best.DateAddedToSpreadsheet) {
			newest[order.ID] = order
		}
	}

	deduped := make([]Order, 0, len(counts))
	emitted := make(map[string]struct{}, len(counts))
	for _, order := range batch {
		if counts[order.ID] > 1 {
			e.metrics.IncDuplicate(source)
			e.log.Warn(e.log.WithField(ctx, "id", order.ID), "duplicate order id found")
		}
		if _, done := emitted[order.ID]; done {
			continue
		}
		if !order.DateAddedToSpreadsheet.Equal(newest[order.ID].DateAddedToSpreadsheet) {
			continue
		}
		emitted[order.ID] = struct{}{}
		deduped = append(deduped, order)
	}
	return deduped
}
