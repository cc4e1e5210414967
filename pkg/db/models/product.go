package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product represents a catalog entry as stored in Postgres. Prices are kept
// in integer minor units so the row stays currency-agnostic.
type Product struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Barcode         *string   `gorm:"column:barcode"`
	Name            string    `gorm:"column:name;not null"`
	Brand           *string   `gorm:"column:brand"`
	Category        string    `gorm:"column:category;not null;index"`
	Price           int64     `gorm:"column:price;not null"`
	Unit            string    `gorm:"column:unit;not null;default:unit"`
	QuantityPerUnit float64   `gorm:"column:quantity_per_unit;type:numeric(10,3);not null;default:1"`
	Store           *string   `gorm:"column:store"`

	EnergyKcal    *float64 `gorm:"column:energy_kcal;type:numeric(8,2)"`
	Proteins      *float64 `gorm:"column:proteins;type:numeric(8,2)"`
	Carbohydrates *float64 `gorm:"column:carbohydrates;type:numeric(8,2)"`
	Fats          *float64 `gorm:"column:fats;type:numeric(8,2)"`
	Fiber         *float64 `gorm:"column:fiber;type:numeric(8,2)"`
	Salt          *float64 `gorm:"column:salt;type:numeric(8,2)"`

	CarbonFootprintKG   *float64 `gorm:"column:carbon_footprint_kg;type:numeric(8,3)"`
	WaterUsageLiters    *float64 `gorm:"column:water_usage_liters;type:numeric(10,2)"`
	PackagingRecyclable bool     `gorm:"column:packaging_recyclable;not null;default:false"`
	FairTrade           bool     `gorm:"column:fair_trade;not null;default:false"`
	LocalProduct        bool     `gorm:"column:local_product;not null;default:false"`

	Labels    pq.StringArray `gorm:"column:labels;type:text[];not null;default:ARRAY[]::text[]"`
	Allergens pq.StringArray `gorm:"column:allergens;type:text[];not null;default:ARRAY[]::text[]"`

	InStock   bool      `gorm:"column:in_stock;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table used by the catalog repository.
func (Product) TableName() string {
	return "products"
}
