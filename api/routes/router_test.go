package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/csvsource"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/orders"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/organizations"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/config"
	pkgerrors "github.com/Leo-Marbehan/arrivage-data-visualization/pkg/errors"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/logger"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/metrics"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/types"
)

type fakeLoader struct {
	files map[string][]csvsource.Record
	loads int
}

func (f *fakeLoader) Load(_ context.Context, name string) ([]csvsource.Record, error) {
	f.loads++
	return f.files[name], nil
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

func orderRecord(id, vendorID, buyerID string) csvsource.Record {
	return csvsource.Record{
		"Id":                           id,
		"Number":                       "1",
		"Timestamp":                    "2023-03-15 10:00:00",
		"Due date":                     "2023-03-20",
		"Uniq items ordered":           "3",
		"Amount excluding taxes (CAD)": "100",
		"Amount including taxes (CAD)": "115",
		"Distribution mode":            "delivery",
		"Delivery date":                "2023-03-22",
		"Delivery fees (CAD)":          "5",
		"Distance to pickup (km)":      "0",
		"Vendor organization id":       vendorID,
		"Creator logged in":            "TRUE",
		"Creator organization id":      buyerID,
		"Buyer organization id":        buyerID,
	}
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "dev", Port: "0"},
		Data: config.DataConfig{
			VendorsFile:         "vendors.csv",
			BuyersProFile:       "buyers_pro.csv",
			BuyersNotProFile:    "buyers_nopro.csv",
			CancelledOrdersFile: "cancelled.csv",
			CompletedOrdersFile: "completed.csv",
			ConfirmedOrdersFile: "confirmed.csv",
			DeliveredOrdersFile: "delivered.csv",
			PaidOrdersFile:      "paid.csv",
			SubmittedOrdersFile: "submitted.csv",
		},
	}
}

func newTestRouter(t *testing.T) (http.Handler, *organizations.Repository, *orders.Repository, *fakeLoader) {
	t.Helper()

	loader := &fakeLoader{files: map[string][]csvsource.Record{
		"vendors.csv": {
			orgRecord("V1", "Estrie", map[string]string{"meat": "x"}),
			orgRecord("V2", "Monteregie", map[string]string{"dairy": "x"}),
		},
		"buyers_pro.csv": {
			orgRecord("B1", "Estrie", map[string]string{"org_cat": "restaurant"}),
		},
		"buyers_nopro.csv": {
			orgRecord("B2", "Monteregie", map[string]string{"org_cat": "consumer"}),
		},
		"confirmed.csv": {
			orderRecord("O1", "V1", "B1"),
			orderRecord("O2", "V2", "B2"),
		},
		"paid.csv": {
			orderRecord("O1", "V1", "B1"),
		},
	}}

	cfg := testConfig()
	log := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	ingest := metrics.NewIngestMetrics(nil)

	orgRepo := organizations.NewRepository(loader, organizations.NewExtractor(log, ingest), cfg.Data, log)
	orderRepo := orders.NewRepository(loader, orders.NewExtractor(log, ingest), cfg.Data, log, nil, "")

	handler := NewRouter(cfg, log, orgRepo, orderRepo, nil, nil)
	return handler, orgRepo, orderRepo, loader
}

func doRequest(handler http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestRouterStateConflictBeforeLoad(t *testing.T) {
	handler, _, _, _ := newTestRouter(t)

	for _, target := range []string{
		"/api/v1/organizations",
		"/api/v1/orders",
		"/api/v1/analytics/buyer-categories",
		"/api/v1/analytics/chord",
	} {
		w := doRequest(handler, http.MethodGet, target)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, target)

		var body types.ErrorEnvelope
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body), target)
		assert.Equal(t, string(pkgerrors.CodeStateConflict), body.Error.Code, target)
	}
}

func TestRouterHealthAlwaysAnswers(t *testing.T) {
	handler, orgRepo, orderRepo, _ := newTestRouter(t)

	w := doRequest(handler, http.MethodGet, "/health/live")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(handler, http.MethodGet, "/health/ready")
	require.Equal(t, http.StatusOK, w.Code)

	var body types.SuccessEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	payload := body.Data.(map[string]any)
	assert.Equal(t, "uninitialized", payload["organizations"])
	assert.Equal(t, "uninitialized", payload["orders"])
	assert.Equal(t, "disabled", payload["cache"])

	require.NoError(t, orgRepo.Initialize(context.Background()))
	require.NoError(t, orderRepo.Initialize(context.Background()))

	w = doRequest(handler, http.MethodGet, "/health/ready")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	payload = body.Data.(map[string]any)
	assert.Equal(t, "ready", payload["organizations"])
	assert.Equal(t, "ready", payload["orders"])
}

func TestRouterListings(t *testing.T) {
	handler, orgRepo, orderRepo, _ := newTestRouter(t)
	require.NoError(t, orgRepo.Initialize(context.Background()))
	require.NoError(t, orderRepo.Initialize(context.Background()))

	w := doRequest(handler, http.MethodGet, "/api/v1/organizations?kind=vendor")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Items []map[string]any `json:"items"`
			Page  map[string]any   `json:"page"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Len(t, body.Data.Items, 2)
	assert.EqualValues(t, 2, body.Data.Page["total"])

	w = doRequest(handler, http.MethodGet, "/api/v1/orders?limit=1")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Len(t, body.Data.Items, 1)
	assert.EqualValues(t, 2, body.Data.Page["total"])

	w = doRequest(handler, http.MethodGet, "/api/v1/organizations?kind=teleport")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouterAnalyticsEndpoints(t *testing.T) {
	handler, orgRepo, orderRepo, _ := newTestRouter(t)
	require.NoError(t, orgRepo.Initialize(context.Background()))
	require.NoError(t, orderRepo.Initialize(context.Background()))

	for _, target := range []string{
		"/api/v1/analytics/top-counterparties?kind=vendor&id=V1",
		"/api/v1/analytics/rankings?kind=buyer&metric=taxed_amounts",
		"/api/v1/analytics/network?mode=global",
		"/api/v1/analytics/chord?metric=orders",
		"/api/v1/analytics/buyer-categories",
		"/api/v1/analytics/category-spend",
		"/api/v1/analytics/orders-by-month?from=2023-01&to=2023-12",
		"/api/v1/analytics/organizations-by-month?filter=vendors&mode=cumulative",
	} {
		w := doRequest(handler, http.MethodGet, target)
		assert.Equal(t, http.StatusOK, w.Code, target)
	}

	w := doRequest(handler, http.MethodGet, "/api/v1/analytics/network?mode=focused")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(handler, http.MethodGet, "/api/v1/analytics/top-counterparties?kind=vendor")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(handler, http.MethodGet, "/api/v1/analytics/chord?metric=bogus")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouterOrdersReset(t *testing.T) {
	handler, orgRepo, orderRepo, loader := newTestRouter(t)
	require.NoError(t, orgRepo.Initialize(context.Background()))
	require.NoError(t, orderRepo.Initialize(context.Background()))

	loadsBefore := loader.loads
	w := doRequest(handler, http.MethodPost, "/api/v1/orders/reset")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Greater(t, loader.loads, loadsBefore)
	assert.Len(t, orderRepo.Orders(), 2)
}
