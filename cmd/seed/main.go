package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/lib/pq"

	"github.com/liquiverde/liquiverde-backend/internal/catalog"
	"github.com/liquiverde/liquiverde-backend/pkg/config"
	"github.com/liquiverde/liquiverde-backend/pkg/db"
	"github.com/liquiverde/liquiverde-backend/pkg/db/models"
	"github.com/liquiverde/liquiverde-backend/pkg/logger"
	"github.com/liquiverde/liquiverde-backend/pkg/migrate"
	"github.com/liquiverde/liquiverde-backend/pkg/redis"
)

// seedProduct mirrors one entry of the products dataset file.
type seedProduct struct {
	ID       string  `json:"id"`
	Barcode  *string `json:"barcode"`
	Name     string  `json:"name"`
	Brand    *string `json:"brand"`
	Category string  `json:"category"`
	Price    int64   `json:"price"`
	Unit     string  `json:"unit"`
	Quantity float64 `json:"quantity"`
	Store    *string `json:"store"`

	Nutrition *struct {
		EnergyKcal    *float64 `json:"energy_kcal"`
		Proteins      *float64 `json:"proteins"`
		Carbohydrates *float64 `json:"carbohydrates"`
		Fats          *float64 `json:"fats"`
		Fiber         *float64 `json:"fiber"`
		Salt          *float64 `json:"salt"`
	} `json:"nutrition"`

	Sustainability *struct {
		CarbonFootprintKG   *float64 `json:"carbon_footprint_kg"`
		WaterUsageLiters    *float64 `json:"water_usage_liters"`
		PackagingRecyclable bool     `json:"packaging_recyclable"`
		FairTrade           bool     `json:"fair_trade"`
		LocalProduct        bool     `json:"local_product"`
	} `json:"sustainability"`

	Labels    []string `json:"labels"`
	Allergens []string `json:"allergens"`
	InStock   *bool    `json:"in_stock"`
}

type seedFile struct {
	Products []seedProduct `json:"products"`
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	file := flag.String("file", "data/products_dataset.json", "path to the products dataset")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithField(ctx, "file", *file)

	payload, err := os.ReadFile(*file)
	if err != nil {
		logg.Error(ctx, "failed to read dataset", err)
		os.Exit(1)
	}
	var dataset seedFile
	if err := json.Unmarshal(payload, &dataset); err != nil {
		logg.Error(ctx, "failed to parse dataset", err)
		os.Exit(1)
	}
	if len(dataset.Products) == 0 {
		logg.Error(ctx, "invalid dataset", fmt.Errorf("no products in %s", *file))
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	repo := catalog.NewRepository(dbClient.DB())
	seeded := 0
	for _, entry := range dataset.Products {
		row, err := toModel(entry)
		if err != nil {
			logg.Error(logg.WithField(ctx, "product", entry.Name), "skipping invalid product", err)
			continue
		}
		if err := repo.Upsert(ctx, row); err != nil {
			if db.IsUniqueViolation(err, "") {
				logg.Warn(logg.WithField(ctx, "product", entry.Name), "skipping duplicate product")
				continue
			}
			logg.Error(logg.WithField(ctx, "product", entry.Name), "failed to upsert product", err)
			os.Exit(1)
		}
		seeded++
	}

	// Drop the cached snapshot so the API serves the fresh rows.
	if redisClient, err := redis.New(ctx, cfg.Redis); err == nil {
		if err := redisClient.Del(ctx, redisClient.CatalogKey("snapshot")); err != nil {
			logg.Warn(ctx, "failed to invalidate catalog snapshot")
		}
		redisClient.Close()
	} else {
		logg.Warn(ctx, "redis unavailable, catalog snapshot not invalidated")
	}

	logg.Info(logg.WithField(ctx, "count", seeded), "database seeded")
	fmt.Printf("seeded %d products\n", seeded)
}

func toModel(entry seedProduct) (*models.Product, error) {
	if entry.Name == "" || entry.Category == "" {
		return nil, fmt.Errorf("name and category are required")
	}
	if entry.Price <= 0 {
		return nil, fmt.Errorf("price must be positive")
	}

	row := &models.Product{
		Barcode:   entry.Barcode,
		Name:      entry.Name,
		Brand:     entry.Brand,
		Category:  entry.Category,
		Price:     entry.Price,
		Unit:      entry.Unit,
		Store:     entry.Store,
		Labels:    pq.StringArray(entry.Labels),
		Allergens: pq.StringArray(entry.Allergens),
		InStock:   true,
	}
	if entry.ID != "" {
		id, err := uuid.Parse(entry.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid product id %q: %w", entry.ID, err)
		}
		row.ID = id
	}
	if row.Unit == "" {
		row.Unit = "unit"
	}
	row.QuantityPerUnit = entry.Quantity
	if row.QuantityPerUnit <= 0 {
		row.QuantityPerUnit = 1
	}
	if entry.InStock != nil {
		row.InStock = *entry.InStock
	}
	if n := entry.Nutrition; n != nil {
		row.EnergyKcal = n.EnergyKcal
		row.Proteins = n.Proteins
		row.Carbohydrates = n.Carbohydrates
		row.Fats = n.Fats
		row.Fiber = n.Fiber
		row.Salt = n.Salt
	}
	if s := entry.Sustainability; s != nil {
		row.CarbonFootprintKG = s.CarbonFootprintKG
		row.WaterUsageLiters = s.WaterUsageLiters
		row.PackagingRecyclable = s.PackagingRecyclable
		row.FairTrade = s.FairTrade
		row.LocalProduct = s.LocalProduct
	}
	return row, nil
}
