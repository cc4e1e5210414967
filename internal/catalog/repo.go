package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/liquiverde/liquiverde-backend/pkg/db/models"
	"github.com/liquiverde/liquiverde-backend/pkg/pagination"
)

// Repository provides product persistence over Postgres.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListParams filters and paginates product listings.
type ListParams struct {
	Category    string
	Search      string
	InStockOnly bool
	Limit       int
	Cursor      *pagination.Cursor
}

// List returns one page of products in stable created_at, id order, plus a
// flag reporting whether more rows exist past the page.
func (r *Repository) List(ctx context.Context, params ListParams) ([]models.Product, bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}
	if params.InStockOnly {
		query = query.Where("in_stock")
	}
	if params.Cursor != nil {
		query = query.Where(
			"(created_at, id) > (?, ?)",
			params.Cursor.CreatedAt, params.Cursor.ID,
		)
	}

	limit := pagination.NormalizeLimit(params.Limit)
	var rows []models.Product
	err := query.
		Order("created_at ASC, id ASC").
		Limit(limit + 1).
		Find(&rows).Error
	if err != nil {
		return nil, false, err
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	return rows, hasMore, nil
}

// FindByID loads a single product row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var row models.Product
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByBarcode loads a single product row by its barcode.
func (r *Repository) FindByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	var row models.Product
	if err := r.db.WithContext(ctx).First(&row, "barcode = ?", barcode).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// All returns every product in category, created_at, id order, the stable
// order the optimizer relies on. inStockOnly narrows to sellable rows.
func (r *Repository) All(ctx context.Context, inStockOnly bool) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if inStockOnly {
		query = query.Where("in_stock")
	}
	var rows []models.Product
	if err := query.Order("category ASC, created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert inserts the product, or refreshes the existing row when the barcode
// is already known. Used by the seeding command.
func (r *Repository) Upsert(ctx context.Context, row *models.Product) error {
	if row.Barcode == nil {
		return r.db.WithContext(ctx).Create(row).Error
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "barcode"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "brand", "category", "price", "unit", "quantity_per_unit",
				"store", "energy_kcal", "proteins", "carbohydrates", "fats",
				"fiber", "salt", "carbon_footprint_kg", "water_usage_liters",
				"packaging_recyclable", "fair_trade", "local_product",
				"labels", "allergens", "in_stock", "updated_at",
			}),
		}).
		Create(row).Error
}

// IsNotFound reports whether the error is the GORM record-miss sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
