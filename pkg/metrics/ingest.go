package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// IngestMetrics records extraction outcomes per CSV source.
type IngestMetrics struct {
	extracted  *prometheus.CounterVec
	skipped    *prometheus.CounterVec
	duplicates *prometheus.CounterVec
}

// NewIngestMetrics registers the ingestion metrics on the provided registerer.
func NewIngestMetrics(reg prometheus.Registerer) *IngestMetrics {
	if reg == nil {
		return &IngestMetrics{}
	}
	extracted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_rows_extracted_total",
		Help: "Rows successfully extracted per CSV source.",
	}, []string{"source"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_rows_skipped_total",
		Help: "Rows dropped by validation per CSV source.",
	}, []string{"source", "reason"})
	duplicates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_duplicate_ids_total",
		Help: "Duplicate ids resolved per CSV source.",
	}, []string{"source"})
	reg.MustRegister(extracted, skipped, duplicates)
	return &IngestMetrics{
		extracted:  extracted,
		skipped:    skipped,
		duplicates: duplicates,
	}
}

// IncExtracted increments the extracted counter for the named source.
func (m *IngestMetrics) IncExtracted(source string) {
	if m == nil || m.extracted == nil {
		return
	}
	m.extracted.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncSkipped increments the skipped counter for the named source and reason.
func (m *IngestMetrics) IncSkipped(source, reason string) {
	if m == nil || m.skipped == nil {
		return
	}
	m.skipped.WithLabelValues(normalizeLabel(source), normalizeLabel(reason)).Inc()
}

// IncDuplicate increments the duplicate counter for the named source.
func (m *IngestMetrics) IncDuplicate(source string) {
	if m == nil || m.duplicates == nil {
		return
	}
	m.duplicates.WithLabelValues(normalizeLabel(source)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
