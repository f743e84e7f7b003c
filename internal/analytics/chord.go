package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/orders"
)

// Location is the geographic placement of an organization.
type Location struct {
	Region    string
	SubRegion string
}

// Locator resolves an organization id to its location. The second return
// is false when the id does not exist in the collection.
type Locator func(id string) (Location, bool)

type chordKey struct {
	source string
	target string
}

type chordCell struct {
	orders   int64
	untaxed  decimal.Decimal
	taxed    decimal.Decimal
	distance decimal.Decimal
}

// ChordBuilder accumulates vendor-to-buyer relations at four granularities
// per order: region to region, sub-region to region, region to sub-region,
// and, only when vendor and buyer share a region, sub-region to sub-region.
// Which granularity surfaces in a matrix depends solely on which names the
// matrix is built over.
type ChordBuilder struct {
	relations          map[chordKey]*chordCell
	regions            []string
	subRegionsByRegion map[string][]string
	lostOrders         int
}

// NewChordBuilder folds the order list once. Orders whose vendor or buyer
// cannot be resolved are counted as lost and contribute nothing.
func NewChordBuilder(orderList []orders.Order, vendorLocation, buyerLocation Locator) *ChordBuilder {
	b := &ChordBuilder{
		relations:          make(map[chordKey]*chordCell),
		subRegionsByRegion: make(map[string][]string),
	}
	seenRegions := make(map[string]struct{})
	seenSubRegions := make(map[string]map[string]struct{})

	addRegion := func(loc Location) {
		if _, ok := seenRegions[loc.Region]; !ok {
			seenRegions[loc.Region] = struct{}{}
			b.regions = append(b.regions, loc.Region)
		}
		subs, ok := seenSubRegions[loc.Region]
		if !ok {
			subs = make(map[string]struct{})
			seenSubRegions[loc.Region] = subs
		}
		if _, ok := subs[loc.SubRegion]; !ok {
			subs[loc.SubRegion] = struct{}{}
			b.subRegionsByRegion[loc.Region] = append(b.subRegionsByRegion[loc.Region], loc.SubRegion)
		}
	}

	for _, order := range orderList {
		vendor, vendorOK := vendorLocation(order.VendorOrganizationID)
		buyer, buyerOK := buyerLocation(order.BuyerOrganizationID)
		if !vendorOK || !buyerOK {
			b.lostOrders++
			continue
		}

		addRegion(vendor)
		addRegion(buyer)

		b.accumulate(vendor.Region, buyer.Region, order)
		b.accumulate(vendor.SubRegion, buyer.Region, order)
		b.accumulate(vendor.Region, buyer.SubRegion, order)
		if vendor.Region == buyer.Region {
			b.accumulate(vendor.SubRegion, buyer.SubRegion, order)
		}
	}
	return b
}

func (b *ChordBuilder) accumulate(source, target string, order orders.Order) {
	key := chordKey{source, target}
	cell, ok := b.relations[key]
	if !ok {
		cell = &chordCell{}
		b.relations[key] = cell
	}
	cell.orders++
	cell.untaxed = cell.untaxed.Add(order.TotalAmountWithoutTaxes)
	cell.taxed = cell.taxed.Add(order.TotalAmountWithTaxes)
	cell.distance = cell.distance.Add(order.DistanceToPickup)
}

// Regions lists the regions in order of first appearance across qualifying
// orders.
func (b *ChordBuilder) Regions() []string {
	return b.regions
}

// SubRegions lists a region's sub-regions in order of first appearance.
func (b *ChordBuilder) SubRegions(region string) []string {
	return b.subRegionsByRegion[region]
}

// LostOrders counts orders dropped because a side could not be resolved.
func (b *ChordBuilder) LostOrders() int {
	return b.lostOrders
}

// ChordMatrix is a square matrix over Names. Groups maps each name to the
// index of its owning region in the builder's region list, so an expanded
// region's sub-regions share the region's color slot.
type ChordMatrix struct {
	Names  []string    `json:"names"`
	Groups []int       `json:"groups"`
	Cells  [][]float64 `json:"cells"`
}

// Matrix builds the chord matrix for one metric and expansion state. The
// name list is derived from scratch every call: the region list with
// expandedRegion (when set and known) replaced in place by its sub-regions.
func (b *ChordBuilder) Matrix(metric Metric, expandedRegion string) ChordMatrix {
	names := make([]string, 0, len(b.regions))
	groups := make([]int, 0, len(b.regions))
	for i, region := range b.regions {
		if region == expandedRegion {
			for _, sub := range b.subRegionsByRegion[region] {
				names = append(names, sub)
				groups = append(groups, i)
			}
			continue
		}
		names = append(names, region)
		groups = append(groups, i)
	}

	indexes := make(map[string]int, len(names))
	for i, name := range names {
		indexes[name] = i
	}

	cells := make([][]float64, len(names))
	for i := range cells {
		cells[i] = make([]float64, len(names))
	}
	for key, cell := range b.relations {
		source, ok := indexes[key.source]
		if !ok {
			continue
		}
		target, ok := indexes[key.target]
		if !ok {
			continue
		}
		cells[source][target] += cellValue(cell, metric)
	}

	return ChordMatrix{Names: names, Groups: groups, Cells: cells}
}

func cellValue(cell *chordCell, metric Metric) float64 {
	switch metric {
	case MetricOrderCount:
		return float64(cell.orders)
	case MetricTaxedAmount:
		return cell.taxed.InexactFloat64()
	case MetricDistance:
		return cell.distance.InexactFloat64()
	default:
		return cell.untaxed.InexactFloat64()
	}
}
