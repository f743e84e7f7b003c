package enums

import "fmt"

// OrderStatus is a lifecycle stage an order held in at least one export
// file. An order accumulates every status it appeared under.
type OrderStatus string

const (
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusSubmitted OrderStatus = "submitted"
)

// OrderStatuses lists the statuses in the order their export files are
// merged.
var OrderStatuses = []OrderStatus{
	OrderStatusCancelled,
	OrderStatusCompleted,
	OrderStatusConfirmed,
	OrderStatusDelivered,
	OrderStatusPaid,
	OrderStatusSubmitted,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is recognized.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range OrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts a raw string into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range OrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

// TranslateOrderStatus returns the French display label.
func TranslateOrderStatus(s OrderStatus) string {
	switch s {
	case OrderStatusCancelled:
		return "Annulée"
	case OrderStatusCompleted:
		return "Complétée"
	case OrderStatusConfirmed:
		return "Confirmée"
	case OrderStatusDelivered:
		return "Livrée"
	case OrderStatusPaid:
		return "Payée"
	case OrderStatusSubmitted:
		return "Soumise"
	default:
		return string(s)
	}
}
