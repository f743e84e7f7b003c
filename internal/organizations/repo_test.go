package organizations

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/csvsource"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/store"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/config"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/logger"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/metrics"
)

type fakeLoader struct {
	files map[string][]csvsource.Record
	err   error
}

func (f *fakeLoader) Load(_ context.Context, name string) ([]csvsource.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.files[name], nil
}

func testDataConfig() config.DataConfig {
	return config.DataConfig{
		VendorsFile:      "vendors.csv",
		BuyersProFile:    "buyers_pro.csv",
		BuyersNotProFile: "buyers_nopro.csv",
	}
}

func newTestRepository(loader csvsource.Loader) *Repository {
	log := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewRepository(loader, NewExtractor(log, metrics.NewIngestMetrics(nil)), testDataConfig(), log)
}

func orgRecord(id, region string, extra map[string]string) csvsource.Record {
	rec := csvsource.Record{
		"unique_id":          id,
		"lang":               "fr",
		"country":            "Canada",
		"province":           "Quebec",
		"region":             region,
		"sous-region":        region + "-sud",
		"city":               "Ville",
		"timestamp_creation": "2021-05-01",
	}
	for k, v := range extra {
		rec[k] = v
	}
	return rec
}

func TestRepositoryInitialize(t *testing.T) {
	loader := &fakeLoader{files: map[string][]csvsource.Record{
		"vendors.csv": {
			orgRecord("V1", "Estrie", map[string]string{"meat": "x"}),
			orgRecord("V1", "Estrie", map[string]string{"meat": "x"}),
			orgRecord("V2", "Monteregie", map[string]string{"dairy": "x"}),
			orgRecord("", "Monteregie", nil),
		},
		"buyers_pro.csv": {
			orgRecord("B1", "Estrie", map[string]string{"org_cat": "restaurant"}),
		},
		"buyers_nopro.csv": {
			orgRecord("B2", "Estrie", map[string]string{"org_cat": "consumer"}),
		},
	}}

	repo := newTestRepository(loader)
	if repo.State() != store.StateUninitialized {
		t.Fatalf("expected uninitialized state, got %s", repo.State())
	}

	if err := repo.Initialize(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.State() != store.StateReady {
		t.Fatalf("expected ready state, got %s", repo.State())
	}

	if len(repo.Vendors()) != 2 {
		t.Errorf("expected 2 vendors after dedup and skip, got %d", len(repo.Vendors()))
	}
	if len(repo.Buyers()) != 2 {
		t.Errorf("expected 2 buyers, got %d", len(repo.Buyers()))
	}
	if pro := repo.ProBuyers(); len(pro) != 1 || pro[0].ID != "B1" {
		t.Errorf("unexpected pro buyers: %v", pro)
	}
	if notPro := repo.NotProBuyers(); len(notPro) != 1 || notPro[0].ID != "B2" {
		t.Errorf("unexpected not-pro buyers: %v", notPro)
	}
	if all := repo.All(); len(all) != 4 {
		t.Errorf("expected 4 organizations, got %d", len(all))
	}

	vendor, ok := repo.VendorByID("V2")
	if !ok || vendor.Region != "Monteregie" {
		t.Errorf("unexpected vendor lookup: %v %v", vendor, ok)
	}
	if _, ok := repo.VendorByID("B1"); ok {
		t.Error("buyer id resolved in vendor collection")
	}
	buyer, ok := repo.BuyerByID("B2")
	if !ok || buyer.IsPro {
		t.Errorf("unexpected buyer lookup: %v %v", buyer, ok)
	}
}

func TestRepositoryInitializeFetchFailure(t *testing.T) {
	loader := &fakeLoader{err: errors.New("boom")}

	repo := newTestRepository(loader)
	if err := repo.Initialize(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if repo.State() != store.StateFailed {
		t.Fatalf("expected failed state, got %s", repo.State())
	}
	if len(repo.Vendors()) != 0 || len(repo.Buyers()) != 0 {
		t.Error("expected empty collections after failed load")
	}
}
