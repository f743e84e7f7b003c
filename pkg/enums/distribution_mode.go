package enums

import "fmt"

// DistributionMode is how an order reaches its buyer.
type DistributionMode string

const (
	DistributionModeDelivery DistributionMode = "delivery"
	DistributionModePickup   DistributionMode = "pickup"
)

var validDistributionModes = []DistributionMode{
	DistributionModeDelivery,
	DistributionModePickup,
}

// String implements fmt.Stringer.
func (m DistributionMode) String() string {
	return string(m)
}

// IsValid reports whether the mode is recognized.
func (m DistributionMode) IsValid() bool {
	for _, candidate := range validDistributionModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseDistributionMode converts a raw string into a DistributionMode.
func ParseDistributionMode(value string) (DistributionMode, error) {
	for _, candidate := range validDistributionModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid distribution mode %q", value)
}

// TranslateDistributionMode returns the French display label.
func TranslateDistributionMode(m DistributionMode) string {
	switch m {
	case DistributionModeDelivery:
		return "Livraison"
	case DistributionModePickup:
		return "Ramassage"
	default:
		return string(m)
	}
}
