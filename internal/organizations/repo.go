package organizations

import (
	"context"
	"sync"

	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/csvsource"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/store"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/config"
	pkgerrors "github.com/Leo-Marbehan/arrivage-data-visualization/pkg/errors"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/logger"
)

// Repository holds the reconciled organization collections. Collections are
// written once by Initialize and read-only afterwards.
type Repository struct {
	loader    csvsource.Loader
	extractor *Extractor
	cfg       config.DataConfig
	log       *logger.Logger

	mu      sync.RWMutex
	state   store.State
	vendors []VendorOrganization
	buyers  []BuyerOrganization
}

func NewRepository(loader csvsource.Loader, extractor *Extractor, cfg config.DataConfig, log *logger.Logger) *Repository {
	return &Repository{
		loader:    loader,
		extractor: extractor,
		cfg:       cfg,
		log:       log,
		state:     store.StateUninitialized,
	}
}

// State reports the repository's lifecycle state.
func (r *Repository) State() store.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Initialize loads the three organization exports in sequence. A fetch
// failure of any file marks the repository Failed; row-level failures are
// skipped inside the extractor and never fail the load.
func (r *Repository) Initialize(ctx context.Context) error {
	r.mu.Lock()
	r.state = store.StateLoading
	r.mu.Unlock()

	vendors, err := r.loadVendors(ctx)
	if err != nil {
		return r.fail(ctx, err)
	}
	proBuyers, err := r.loadBuyers(ctx, r.cfg.BuyersProFile, BuyerSourcePro)
	if err != nil {
		return r.fail(ctx, err)
	}
	notProBuyers, err := r.loadBuyers(ctx, r.cfg.BuyersNotProFile, BuyerSourceNotPro)
	if err != nil {
		return r.fail(ctx, err)
	}

	r.mu.Lock()
	r.vendors = vendors
	r.buyers = append(append([]BuyerOrganization{}, proBuyers...), notProBuyers...)
	r.state = store.StateReady
	r.mu.Unlock()

	ctx = r.log.WithFields(ctx, map[string]any{
		"vendors": len(vendors),
		"buyers":  len(proBuyers) + len(notProBuyers),
	})
	r.log.Info(ctx, "organization store initialized")
	return nil
}

func (r *Repository) fail(ctx context.Context, err error) error {
	r.mu.Lock()
	r.state = store.StateFailed
	r.mu.Unlock()
	r.log.Error(ctx, "organization store failed to initialize", err)
	return err
}

func (r *Repository) loadVendors(ctx context.Context) ([]VendorOrganization, error) {
	records, err := r.loader.Load(ctx, r.cfg.VendorsFile)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading vendor organizations")
	}

	vendors := make([]VendorOrganization, 0, len(records))
	for index, rec := range records {
		if vendor := r.extractor.ExtractVendor(ctx, rec, index); vendor != nil {
			vendors = append(vendors, *vendor)
		}
	}
	return r.extractor.DedupeVendors(ctx, vendors), nil
}

func (r *Repository) loadBuyers(ctx context.Context, file string, source BuyerSource) ([]BuyerOrganization, error) {
	records, err := r.loader.Load(ctx, file)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading buyer organizations")
	}

	buyers := make([]BuyerOrganization, 0, len(records))
	for index, rec := range records {
		if buyer := r.extractor.ExtractBuyer(ctx, rec, source, index); buyer != nil {
			buyers = append(buyers, *buyer)
		}
	}
	return r.extractor.DedupeBuyers(ctx, buyers, source), nil
}

// Vendors returns the vendor collection.
func (r *Repository) Vendors() []VendorOrganization {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.vendors
}

// Buyers returns the full buyer collection, pro buyers first.
func (r *Repository) Buyers() []BuyerOrganization {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.buyers
}

// ProBuyers returns the buyers sourced from the pro export.
func (r *Repository) ProBuyers() []BuyerOrganization {
	return r.filterBuyers(true)
}

// NotProBuyers returns the buyers sourced from the not-pro export.
func (r *Repository) NotProBuyers() []BuyerOrganization {
	return r.filterBuyers(false)
}

func (r *Repository) filterBuyers(pro bool) []BuyerOrganization {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var filtered []BuyerOrganization
	for _, buyer := range r.buyers {
		if buyer.IsPro == pro {
			filtered = append(filtered, buyer)
		}
	}
	return filtered
}

// All returns vendors and buyers flattened to the shared base, vendors
// first.
func (r *Repository) All() []Organization {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]Organization, 0, len(r.vendors)+len(r.buyers))
	for _, vendor := range r.vendors {
		all = append(all, vendor.Organization)
	}
	for _, buyer := range r.buyers {
		all = append(all, buyer.Organization)
	}
	return all
}

// VendorByID looks up a vendor. Ids are only unique within the vendor
// collection.
func (r *Repository) VendorByID(id string) (VendorOrganization, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, vendor := range r.vendors {
		if vendor.ID == id {
			return vendor, true
		}
	}
	return VendorOrganization{}, false
}

// BuyerByID looks up a buyer. Ids are only unique within the buyer
// collection.
func (r *Repository) BuyerByID(id string) (BuyerOrganization, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, buyer := range r.buyers {
		if buyer.ID == id {
			return buyer, true
		}
	}
	return BuyerOrganization{}, false
}
