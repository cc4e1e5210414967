package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/liquiverde/liquiverde-backend/internal/catalog"
	"github.com/liquiverde/liquiverde-backend/internal/engine/optimize"
	"github.com/liquiverde/liquiverde-backend/internal/engine/score"
	"github.com/liquiverde/liquiverde-backend/internal/engine/substitute"
	"github.com/liquiverde/liquiverde-backend/pkg/config"
	pkgerrors "github.com/liquiverde/liquiverde-backend/pkg/errors"
	"github.com/liquiverde/liquiverde-backend/pkg/logger"
	"github.com/liquiverde/liquiverde-backend/pkg/metrics"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

type stubCatalogService struct {
	snapshot catalog.Catalog
}

func (s stubCatalogService) Snapshot(context.Context) (catalog.Catalog, error) {
	return s.snapshot, nil
}

func (s stubCatalogService) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	for _, products := range s.snapshot {
		for _, p := range products {
			if p.ID == id {
				product := p
				return &product, nil
			}
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s stubCatalogService) GetProductByBarcode(ctx context.Context, barcode string) (*catalog.Product, error) {
	for _, products := range s.snapshot {
		for _, p := range products {
			if p.Barcode == barcode {
				product := p
				return &product, nil
			}
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s stubCatalogService) ListProducts(context.Context, catalog.ListParams) ([]catalog.Product, string, error) {
	var all []catalog.Product
	for _, products := range s.snapshot {
		all = append(all, products...)
	}
	return all, "", nil
}

func (s stubCatalogService) InvalidateSnapshot(context.Context) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		Optimizer: config.OptimizerConfig{
			Strategy:      "greedy",
			MaxCandidates: 20,
		},
	}
}

func testSnapshot() catalog.Catalog {
	carbon := 1.4
	water := 628.0
	return catalog.Catalog{
		"dairy": {
			{
				ID: "11111111-1111-1111-1111-111111111111", Barcode: "7802900000011",
				Name: "Whole Milk", Brand: "Colun", Category: "dairy",
				Price: 1200, Unit: "l", QuantityPerUnit: 1, Store: "Jumbo",
				Sustainability: &catalog.SustainabilityProfile{
					CarbonFootprintKG: &carbon, WaterUsageLiters: &water,
					PackagingRecyclable: true, LocalProduct: true,
				},
				Labels: []string{"local"}, InStock: true,
			},
			{
				ID: "22222222-2222-2222-2222-222222222222",
				Name: "Whole Milk", Brand: "Soprole", Category: "dairy",
				Price: 950, Unit: "l", QuantityPerUnit: 1, Store: "Lider",
				InStock: true,
			},
		},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, svc catalog.Service) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})

	scorer := score.NewScorer(score.DefaultWeights, score.References{Price: 5000, Carbon: 5, Water: 100})
	subEngine, err := substitute.NewEngine(scorer)
	if err != nil {
		t.Fatalf("substitute engine: %v", err)
	}
	optimizer, err := optimize.NewOptimizer(scorer, cfg.Optimizer, optimize.WithCandidateFinder(optimize.NameFallback{}))
	if err != nil {
		t.Fatalf("optimizer: %v", err)
	}
	registry := prometheus.NewRegistry()

	return NewRouter(Deps{
		Config:     cfg,
		Logger:     logg,
		DB:         stubPinger{},
		Catalog:    svc,
		Scorer:     scorer,
		Substitute: subEngine,
		Optimizer:  optimizer,
		Metrics:    metrics.NewOptimizerMetrics(registry),
		Registry:   registry,
	})
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t, testConfig(), stubCatalogService{})
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("X-LiquiVerde-Env"); got != "test" {
		t.Fatalf("expected env header test got %q", got)
	}
}

func TestHealthReadyReportsDependencyFailure(t *testing.T) {
	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	router := NewRouter(Deps{
		Config:  cfg,
		Logger:  logg,
		DB:      stubPinger{err: context.DeadlineExceeded},
		Catalog: stubCatalogService{},
	})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for failing dependency got %d", resp.Code)
	}
}

func TestHealthReadyOK(t *testing.T) {
	router := newTestRouter(t, testConfig(), stubCatalogService{})
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(t, testConfig(), stubCatalogService{})
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics endpoint got %d", resp.Code)
	}
}

func TestProductListRoute(t *testing.T) {
	router := newTestRouter(t, testConfig(), stubCatalogService{snapshot: testSnapshot()})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data []catalog.Product `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding list response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected 2 products got %d", len(envelope.Data))
	}
}

func TestProductDetailNotFound(t *testing.T) {
	router := newTestRouter(t, testConfig(), stubCatalogService{snapshot: testSnapshot()})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/99999999-9999-9999-9999-999999999999", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestProductScoreRoute(t *testing.T) {
	router := newTestRouter(t, testConfig(), stubCatalogService{snapshot: testSnapshot()})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/11111111-1111-1111-1111-111111111111/score", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "overall") {
		t.Fatalf("expected score payload, got %s", resp.Body.String())
	}
}

func TestProductSubstitutionsRoute(t *testing.T) {
	router := newTestRouter(t, testConfig(), stubCatalogService{snapshot: testSnapshot()})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/11111111-1111-1111-1111-111111111111/substitutions?focus=price", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestProductByBarcodeRoute(t *testing.T) {
	router := newTestRouter(t, testConfig(), stubCatalogService{snapshot: testSnapshot()})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/barcode/7802900000011", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestOptimizeRoute(t *testing.T) {
	router := newTestRouter(t, testConfig(), stubCatalogService{snapshot: testSnapshot()})
	body := `{"items":[{"product_name":"whole milk"}],"focus":"price"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shopping-list/optimize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data optimize.Result `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding optimize response: %v", err)
	}
	if len(envelope.Data.Selections) != 1 {
		t.Fatalf("expected 1 selection got %d", len(envelope.Data.Selections))
	}
	if envelope.Data.TotalCost != 950 {
		t.Fatalf("expected cheapest milk at 950 got %d", envelope.Data.TotalCost)
	}
	if envelope.Data.Algorithm != "greedy" {
		t.Fatalf("expected greedy algorithm got %q", envelope.Data.Algorithm)
	}
}

func TestOptimizeRejectsBadJSON(t *testing.T) {
	router := newTestRouter(t, testConfig(), stubCatalogService{snapshot: testSnapshot()})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shopping-list/optimize", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func TestOptimizeRejectsUnknownFocus(t *testing.T) {
	router := newTestRouter(t, testConfig(), stubCatalogService{snapshot: testSnapshot()})
	body := `{"items":[{"product_name":"whole milk"}],"focus":"speed"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shopping-list/optimize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown focus got %d", resp.Code)
	}
}

func TestOptimizeRejectsEmptyItems(t *testing.T) {
	router := newTestRouter(t, testConfig(), stubCatalogService{snapshot: testSnapshot()})
	body := `{"items":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shopping-list/optimize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty items got %d", resp.Code)
	}
}
