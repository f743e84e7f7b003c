// Package analytics derives the chart feeds from snapshots of the order and
// organization stores. Every function is pure: it takes explicit inputs and
// filter arguments and returns derived data, and empty inputs yield empty
// outputs rather than errors.
package analytics

import "fmt"

// Metric selects which order quantity an aggregation accumulates.
type Metric string

const (
	MetricOrderCount    Metric = "orders"
	MetricUntaxedAmount Metric = "amounts"
	MetricTaxedAmount   Metric = "taxed_amounts"
	MetricDistance      Metric = "distances"
)

var validMetrics = []Metric{
	MetricOrderCount,
	MetricUntaxedAmount,
	MetricTaxedAmount,
	MetricDistance,
}

// String implements fmt.Stringer.
func (m Metric) String() string {
	return string(m)
}

// IsValid reports whether the metric is a known value.
func (m Metric) IsValid() bool {
	for _, candidate := range validMetrics {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMetric converts a raw string into a Metric.
func ParseMetric(value string) (Metric, error) {
	metric := Metric(value)
	if !metric.IsValid() {
		return "", fmt.Errorf("invalid metric %q", value)
	}
	return metric, nil
}
