package orders

import "github.com/Leo-Marbehan/arrivage-data-visualization/pkg/enums"

// Merge combines two deduplicated, status-tagged batches. An id present on
// one side only passes through unchanged. An id present on both sides keeps
// every non-status field from the side with the strictly greater
// DateAddedToSpreadsheet and takes the union of both sides' statuses.
// Output preserves first-batch order, with second-only orders appended in
// their batch order.
func Merge(first, second []Order) []Order {
	indexByID := make(map[string]int, len(first))
	merged := make([]Order, len(first))
	copy(merged, first)
	for i, order := range merged {
		indexByID[order.ID] = i
	}

	for _, order := range second {
		i, exists := indexByID[order.ID]
		if !exists {
			indexByID[order.ID] = len(merged)
			merged = append(merged, order)
			continue
		}

		existing := merged[i]
		statuses := unionStatuses(existing.AllStatuses, order.AllStatuses)
		if order.DateAddedToSpreadsheet.After(existing.DateAddedToSpreadsheet) {
			existing = order
		}
		existing.AllStatuses = statuses
		merged[i] = existing
	}
	return merged
}

// MergeAll folds the per-status batches pairwise in their given order.
func MergeAll(batches ...[]Order) []Order {
	if len(batches) == 0 {
		return nil
	}
	merged := batches[0]
	for _, batch := range batches[1:] {
		merged = Merge(merged, batch)
	}
	return merged
}

func unionStatuses(first, second []enums.OrderStatus) []enums.OrderStatus {
	union := make([]enums.OrderStatus, 0, len(first)+len(second))
	seen := make(map[enums.OrderStatus]struct{}, len(first)+len(second))
	for _, status := range first {
		if _, ok := seen[status]; !ok {
			seen[status] = struct{}{}
			union = append(union, status)
		}
	}
	for _, status := range second {
		if _, ok := seen[status]; !ok {
			seen[status] = struct{}{}
			union = append(union, status)
		}
	}
	return union
}
