package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/liquiverde/liquiverde-backend/pkg/config"
	"github.com/liquiverde/liquiverde-backend/pkg/db/models"
	pkgerrors "github.com/liquiverde/liquiverde-backend/pkg/errors"
	"github.com/liquiverde/liquiverde-backend/pkg/logger"
	"github.com/liquiverde/liquiverde-backend/pkg/pagination"
	"github.com/liquiverde/liquiverde-backend/pkg/redis"
)

const snapshotScope = "snapshot"

type productRepository interface {
	List(ctx context.Context, params ListParams) ([]models.Product, bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*models.Product, error)
	All(ctx context.Context, inStockOnly bool) ([]models.Product, error)
}

// Service exposes catalog reads to the API and the recommendation engine.
type Service interface {
	Snapshot(ctx context.Context) (Catalog, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*Product, error)
	ListProducts(ctx context.Context, params ListParams) ([]Product, string, error)
	InvalidateSnapshot(ctx context.Context) error
}

type service struct {
	repo  productRepository
	cache *redis.Client
	cfg   config.CatalogConfig
	log   *logger.Logger
}

// NewService builds the catalog service. The cache is optional; without it
// every snapshot read goes to the database.
func NewService(repo productRepository, cache *redis.Client, cfg config.CatalogConfig, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, cfg: cfg, log: log}, nil
}

// Snapshot returns the full catalog grouped by category. The snapshot is
// served from Redis when fresh and rebuilt from Postgres on a miss.
func (s *service) Snapshot(ctx context.Context) (Catalog, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, s.cache.CatalogKey(snapshotScope))
		if err == nil {
			var cat Catalog
			if jsonErr := json.Unmarshal([]byte(cached), &cat); jsonErr == nil {
				return cat, nil
			}
			s.log.Warn(ctx, "discarding undecodable catalog snapshot")
		} else if !redis.IsMiss(err) {
			s.log.Warn(ctx, "catalog cache read failed")
		}
	}

	rows, err := s.repo.All(ctx, s.cfg.InStockOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading catalog")
	}
	cat := BuildCatalog(rows, s.cfg.MaxPerCategory)

	if s.cache != nil {
		payload, err := json.Marshal(cat)
		if err == nil {
			if err := s.cache.Set(ctx, s.cache.CatalogKey(snapshotScope), payload, s.cfg.CacheTTL); err != nil {
				s.log.Warn(ctx, "catalog cache write failed")
			}
		}
	}
	return cat, nil
}

// GetProduct loads one product by its UUID.
func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}
	row, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	product := FromModel(*row)
	return &product, nil
}

// GetProductByBarcode loads one product by its barcode.
func (s *service) GetProductByBarcode(ctx context.Context, barcode string) (*Product, error) {
	if barcode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "barcode required")
	}
	row, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	product := FromModel(*row)
	return &product, nil
}

// ListProducts returns one page of products and the cursor for the next one.
func (s *service) ListProducts(ctx context.Context, params ListParams) ([]Product, string, error) {
	rows, hasMore, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}

	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, FromModel(row))
	}

	nextCursor := ""
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return products, nextCursor, nil
}

// InvalidateSnapshot drops the cached catalog so the next read rebuilds it.
// Called after seeding or bulk imports.
func (s *service) InvalidateSnapshot(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, s.cache.CatalogKey(snapshotScope))
}
