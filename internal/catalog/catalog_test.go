package catalog

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/liquiverde/liquiverde-backend/pkg/config"
	"github.com/liquiverde/liquiverde-backend/pkg/db/models"
	pkgerrors "github.com/liquiverde/liquiverde-backend/pkg/errors"
	"github.com/liquiverde/liquiverde-backend/pkg/logger"
)

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }

type stubRepo struct {
	rows    []models.Product
	hasMore bool
	err     error
}

func (s *stubRepo) List(ctx context.Context, params ListParams) ([]models.Product, bool, error) {
	return s.rows, s.hasMore, s.err
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.rows {
		if s.rows[i].ID == id {
			return &s.rows[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) FindByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.rows {
		if s.rows[i].Barcode != nil && *s.rows[i].Barcode == barcode {
			return &s.rows[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) All(ctx context.Context, inStockOnly bool) ([]models.Product, error) {
	return s.rows, s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func sampleRow() models.Product {
	return models.Product{
		ID:                  uuid.New(),
		Barcode:             strPtr("7801234567890"),
		Name:                "Organic Whole Milk",
		Brand:               strPtr("Colun"),
		Category:            "dairy",
		Price:               1890,
		Unit:                "l",
		QuantityPerUnit:     1,
		Store:               strPtr("Jumbo"),
		Proteins:            floatPtr(3.2),
		Fats:                floatPtr(3.5),
		CarbonFootprintKG:   floatPtr(1.2),
		PackagingRecyclable: true,
		LocalProduct:        true,
		Labels:              []string{"organic", "local"},
		InStock:             true,
		CreatedAt:           time.Now(),
	}
}

func TestFromModel(t *testing.T) {
	row := sampleRow()

	p := FromModel(row)
	if p.ID != row.ID.String() {
		t.Fatalf("id mismatch: %s vs %s", p.ID, row.ID)
	}
	if p.Brand != "Colun" || p.Store != "Jumbo" || p.Barcode != "7801234567890" {
		t.Fatalf("optional fields not mapped: %+v", p)
	}
	if p.Nutrition == nil || p.Nutrition.Proteins != 3.2 {
		t.Fatalf("nutrition not mapped: %+v", p.Nutrition)
	}
	if p.Nutrition.Salt != 0 {
		t.Fatalf("missing nutrient should map to zero, got %v", p.Nutrition.Salt)
	}
	if p.Sustainability == nil || !p.Sustainability.LocalProduct {
		t.Fatalf("sustainability not mapped: %+v", p.Sustainability)
	}
}

func TestFromModelWithoutOptionalData(t *testing.T) {
	row := models.Product{ID: uuid.New(), Name: "Mystery", Category: "misc", Price: 100, Unit: "unit"}

	p := FromModel(row)
	if p.Nutrition != nil {
		t.Fatal("expected nil nutrition when no data present")
	}
	if p.Sustainability != nil {
		t.Fatal("expected nil sustainability when no data present")
	}
}

func TestBuildCatalogGroupsAndCaps(t *testing.T) {
	rows := []models.Product{
		{ID: uuid.New(), Name: "A", Category: "dairy", Price: 1, Unit: "unit"},
		{ID: uuid.New(), Name: "B", Category: "dairy", Price: 2, Unit: "unit"},
		{ID: uuid.New(), Name: "C", Category: "bakery", Price: 3, Unit: "unit"},
	}

	cat := BuildCatalog(rows, 1)
	if len(cat.Category("dairy")) != 1 {
		t.Fatalf("expected the dairy category capped at 1, got %d", len(cat.Category("dairy")))
	}
	if cat.Category("dairy")[0].Name != "A" {
		t.Fatalf("cap should keep the earliest row, got %s", cat.Category("dairy")[0].Name)
	}
	if cat.Size() != 2 {
		t.Fatalf("expected size 2 after capping, got %d", cat.Size())
	}
}

func TestServiceSnapshotWithoutCache(t *testing.T) {
	repo := &stubRepo{rows: []models.Product{sampleRow()}}
	svc, err := NewService(repo, nil, config.CatalogConfig{}, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	cat, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if cat.Size() != 1 {
		t.Fatalf("expected one product, got %d", cat.Size())
	}
}

func TestServiceGetProductValidation(t *testing.T) {
	svc, err := NewService(&stubRepo{}, nil, config.CatalogConfig{}, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.GetProduct(context.Background(), "not-a-uuid")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.GetProduct(context.Background(), uuid.NewString())
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestServiceListProductsCursor(t *testing.T) {
	row := sampleRow()
	repo := &stubRepo{rows: []models.Product{row}, hasMore: true}
	svc, err := NewService(repo, nil, config.CatalogConfig{}, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	products, next, err := svc.ListProducts(context.Background(), ListParams{Limit: 1})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected one product, got %d", len(products))
	}
	if next == "" {
		t.Fatal("expected a next cursor when more rows exist")
	}
}

func TestPreferenceHelpers(t *testing.T) {
	p := Product{
		Labels: []string{"Vegan", "organic"},
		Sustainability: &SustainabilityProfile{
			LocalProduct: true,
		},
	}

	if !p.SatisfiesDiet([]string{"vegan"}) {
		t.Fatal("vegan label should satisfy the vegan constraint")
	}
	if p.SatisfiesDiet([]string{"gluten-free"}) {
		t.Fatal("missing gluten-free label should fail the constraint")
	}
	if p.SatisfiesDiet([]string{"organic"}) != true {
		t.Fatal("non-dietary preferences must not act as hard constraints")
	}

	if got := p.PreferenceMatch([]string{"vegan", "local", "fair-trade"}); got < 0.66 || got > 0.67 {
		t.Fatalf("expected two of three preferences matched, got %v", got)
	}
	if got := p.PreferenceMatch(nil); got != 1 {
		t.Fatalf("empty preferences should count as full match, got %v", got)
	}
}
