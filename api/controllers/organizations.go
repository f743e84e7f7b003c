package controllers

import (
	"fmt"
	"net/http"

	"github.com/Leo-Marbehan/arrivage-data-visualization/api/responses"
	"github.com/Leo-Marbehan/arrivage-data-visualization/api/validators"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/organizations"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/store"
	pkgerrors "github.com/Leo-Marbehan/arrivage-data-visualization/pkg/errors"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/logger"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/pagination"
)

// OrganizationsStore is the read surface the organization endpoints need.
type OrganizationsStore interface {
	StateReporter
	Vendors() []organizations.VendorOrganization
	Buyers() []organizations.BuyerOrganization
	All() []organizations.Organization
}

// RequireReady converts a store that is not yet (or no longer) usable into
// a state-conflict error.
func RequireReady(name string, s StateReporter) error {
	if state := s.State(); state != store.StateReady {
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("%s store is not ready", name)).
			WithDetails(map[string]any{"state": state.String()})
	}
	return nil
}

type listEnvelope struct {
	Items any             `json:"items"`
	Page  pagination.Page `json:"page"`
}

func ListOrganizations(orgs OrganizationsStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := RequireReady("organization", orgs); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		kind, err := validators.ParseQueryEnum(r, "kind", "", "vendor", "buyer")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		switch kind {
		case "vendor":
			vendors := orgs.Vendors()
			start, end, page := pagination.Slice(len(vendors), params)
			responses.WriteSuccess(w, listEnvelope{Items: vendors[start:end], Page: page})
		case "buyer":
			buyers := orgs.Buyers()
			start, end, page := pagination.Slice(len(buyers), params)
			responses.WriteSuccess(w, listEnvelope{Items: buyers[start:end], Page: page})
		default:
			all := orgs.All()
			start, end, page := pagination.Slice(len(all), params)
			responses.WriteSuccess(w, listEnvelope{Items: all[start:end], Page: page})
		}
	}
}

func paginationParams(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Limit: limit, Offset: offset}, nil
}
