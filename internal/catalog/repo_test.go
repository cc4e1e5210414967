package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/liquiverde/liquiverde-backend/pkg/db/models"
	"github.com/liquiverde/liquiverde-backend/pkg/pagination"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  barcode TEXT UNIQUE,
  name TEXT NOT NULL,
  brand TEXT,
  category TEXT NOT NULL,
  price INTEGER NOT NULL,
  unit TEXT NOT NULL DEFAULT 'unit',
  quantity_per_unit NUMERIC NOT NULL DEFAULT 1,
  store TEXT,
  energy_kcal NUMERIC,
  proteins NUMERIC,
  carbohydrates NUMERIC,
  fats NUMERIC,
  fiber NUMERIC,
  salt NUMERIC,
  carbon_footprint_kg NUMERIC,
  water_usage_liters NUMERIC,
  packaging_recyclable INTEGER NOT NULL DEFAULT 0,
  fair_trade INTEGER NOT NULL DEFAULT 0,
  local_product INTEGER NOT NULL DEFAULT 0,
  labels TEXT NOT NULL DEFAULT '{}',
  allergens TEXT NOT NULL DEFAULT '{}',
  in_stock INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	return db
}

func insertTestProduct(t *testing.T, repo *Repository, name, category, barcode string, price int64, createdAt time.Time) models.Product {
	t.Helper()

	row := models.Product{
		ID:        uuid.New(),
		Name:      name,
		Category:  category,
		Price:     price,
		Unit:      "unit",
		Labels:    pq.StringArray{},
		Allergens: pq.StringArray{},
		InStock:   true,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if barcode != "" {
		row.Barcode = &barcode
	}
	require.NoError(t, repo.Upsert(context.Background(), &row))
	return row
}

func TestRepositoryUpsertRefreshesByBarcode(t *testing.T) {
	repo := NewRepository(setupRepoTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	insertTestProduct(t, repo, "Whole Milk", "dairy", "780001", 1200, now)

	update := models.Product{
		ID:        uuid.New(),
		Name:      "Whole Milk",
		Category:  "dairy",
		Price:     1090,
		Unit:      "l",
		Labels:    pq.StringArray{"local"},
		Allergens: pq.StringArray{"milk"},
		InStock:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	barcode := "780001"
	update.Barcode = &barcode
	require.NoError(t, repo.Upsert(ctx, &update))

	row, err := repo.FindByBarcode(ctx, "780001")
	require.NoError(t, err)
	assert.Equal(t, int64(1090), row.Price)
	assert.Equal(t, "l", row.Unit)
	assert.Equal(t, pq.StringArray{"local"}, row.Labels)

	all, err := repo.All(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRepositoryFindByBarcodeMiss(t *testing.T) {
	repo := NewRepository(setupRepoTestDB(t))

	_, err := repo.FindByBarcode(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestRepositoryFindByID(t *testing.T) {
	repo := NewRepository(setupRepoTestDB(t))
	inserted := insertTestProduct(t, repo, "Whole Grain Bread", "bakery", "780002", 2190, time.Now().UTC())

	row, err := repo.FindByID(context.Background(), inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, "Whole Grain Bread", row.Name)
}

func TestRepositoryAllOrdersByCategory(t *testing.T) {
	repo := NewRepository(setupRepoTestDB(t))
	now := time.Now().UTC().Truncate(time.Second)

	insertTestProduct(t, repo, "White Bread", "bakery", "780010", 1590, now)
	insertTestProduct(t, repo, "Whole Milk", "dairy", "780011", 1200, now.Add(time.Minute))
	insertTestProduct(t, repo, "Baguette", "bakery", "780012", 1890, now.Add(2*time.Minute))

	rows, err := repo.All(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "bakery", rows[0].Category)
	assert.Equal(t, "bakery", rows[1].Category)
	assert.Equal(t, "dairy", rows[2].Category)
	assert.True(t, rows[0].CreatedAt.Before(rows[1].CreatedAt))
}

func TestRepositoryAllFiltersOutOfStock(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewRepository(db)
	now := time.Now().UTC()

	insertTestProduct(t, repo, "Whole Milk", "dairy", "780020", 1200, now)
	gone := insertTestProduct(t, repo, "Sold Out Milk", "dairy", "780021", 990, now)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", gone.ID).Update("in_stock", false).Error)

	rows, err := repo.All(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Whole Milk", rows[0].Name)
}

func TestRepositoryListPaginates(t *testing.T) {
	repo := NewRepository(setupRepoTestDB(t))
	base := time.Now().UTC().Truncate(time.Second)

	insertTestProduct(t, repo, "Milk A", "dairy", "780030", 1000, base)
	insertTestProduct(t, repo, "Milk B", "dairy", "780031", 1100, base.Add(time.Minute))
	insertTestProduct(t, repo, "Milk C", "dairy", "780032", 1200, base.Add(2*time.Minute))

	first, hasMore, err := repo.List(context.Background(), ListParams{Category: "dairy", Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.True(t, hasMore)
	assert.Equal(t, "Milk A", first[0].Name)

	last := first[len(first)-1]
	second, hasMore, err := repo.List(context.Background(), ListParams{
		Category: "dairy",
		Limit:    2,
		Cursor:   &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID},
	})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.False(t, hasMore)
	assert.Equal(t, "Milk C", second[0].Name)
}

func TestRepositoryListFiltersByCategory(t *testing.T) {
	repo := NewRepository(setupRepoTestDB(t))
	now := time.Now().UTC()

	insertTestProduct(t, repo, "Whole Milk", "dairy", "780040", 1200, now)
	insertTestProduct(t, repo, "White Bread", "bakery", "780041", 1590, now)

	rows, hasMore, err := repo.List(context.Background(), ListParams{Category: "bakery"})
	require.NoError(t, err)
	assert.False(t, hasMore)
	require.Len(t, rows, 1)
	assert.Equal(t, "White Bread", rows[0].Name)
}
