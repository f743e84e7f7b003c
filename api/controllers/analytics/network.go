package analytics

import (
	"net/http"
	"strings"

	"github.com/Leo-Marbehan/arrivage-data-visualization/api/responses"
	"github.com/Leo-Marbehan/arrivage-data-visualization/api/validators"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/analytics"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/enums"
	pkgerrors "github.com/Leo-Marbehan/arrivage-data-visualization/pkg/errors"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/logger"
)

// Network serves the vendor-buyer relation graph for the force layout.
func Network(orgs Organizations, ords Orders, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := requireStores(orgs, ords); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		mode, err := validators.ParseQueryEnum(r, "mode", string(analytics.NetworkModeGlobal),
			string(analytics.NetworkModeGlobal), string(analytics.NetworkModeFocused))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		nodeCap, err := validators.ParseQueryInt(r, "cap", analytics.DefaultTopN, 1, 200)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		focusID := strings.TrimSpace(r.URL.Query().Get("focus_id"))
		focusKind := enums.OrganizationKind(strings.TrimSpace(r.URL.Query().Get("focus_kind")))
		if focusID != "" && !focusKind.IsValid() {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "focus_kind must be vendor or buyer").
				WithDetails(map[string]any{"field": "focus_kind"}))
			return
		}
		if mode == string(analytics.NetworkModeFocused) && focusID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "focused mode requires focus_id").
				WithDetails(map[string]any{"field": "focus_id"}))
			return
		}

		network := analytics.BuildNetwork(ords.Orders(), analytics.NetworkOptions{
			Mode:      analytics.NetworkMode(mode),
			FocusID:   focusID,
			FocusKind: focusKind,
			Cap:       nodeCap,
		})
		responses.WriteSuccess(w, network)
	}
}
