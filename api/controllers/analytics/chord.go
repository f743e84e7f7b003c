package analytics

import (
	"net/http"
	"strings"

	"github.com/Leo-Marbehan/arrivage-data-visualization/api/responses"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/analytics"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/logger"
)

type chordResponse struct {
	Matrix     analytics.ChordMatrix `json:"matrix"`
	Regions    []string              `json:"regions"`
	LostOrders int                   `json:"lost_orders"`
}

// Chord serves the region flow matrix. An expanded_region replaces that
// region's slot with its sub-regions; the matrix is rebuilt from scratch on
// every call, so expansion state lives entirely in the client.
func Chord(orgs Organizations, ords Orders, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := requireStores(orgs, ords); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		metric, err := parseMetricParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		expanded := strings.TrimSpace(r.URL.Query().Get("expanded_region"))

		builder := analytics.NewChordBuilder(ords.Orders(), vendorLocator(orgs), buyerLocator(orgs))
		responses.WriteSuccess(w, chordResponse{
			Matrix:     builder.Matrix(metric, expanded),
			Regions:    builder.Regions(),
			LostOrders: builder.LostOrders(),
		})
	}
}
