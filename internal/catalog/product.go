package catalog

import "strings"

// NutritionInfo holds per-100g nutrition values. A zero value means the
// attribute is unknown and contributes nothing to scoring.
type NutritionInfo struct {
	EnergyKcal    float64 `json:"energy_kcal"`
	Proteins      float64 `json:"proteins"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
	Fiber         float64 `json:"fiber"`
	Salt          float64 `json:"salt"`
}

// SustainabilityProfile holds the raw sustainability attributes of a product.
// Carbon and water are pointers because zero is a meaningful (excellent)
// measurement, distinct from unknown.
type SustainabilityProfile struct {
	CarbonFootprintKG   *float64 `json:"carbon_footprint_kg,omitempty"`
	WaterUsageLiters    *float64 `json:"water_usage_liters,omitempty"`
	PackagingRecyclable bool     `json:"packaging_recyclable"`
	FairTrade           bool     `json:"fair_trade"`
	LocalProduct        bool     `json:"local_product"`
}

// Product is one catalog entry. Instances are treated as immutable for the
// duration of a scoring or optimization call; the engine never mutates them.
type Product struct {
	ID              string                 `json:"id"`
	Barcode         string                 `json:"barcode,omitempty"`
	Name            string                 `json:"name"`
	Brand           string                 `json:"brand,omitempty"`
	Category        string                 `json:"category"`
	Price           int64                  `json:"price"`
	Unit            string                 `json:"unit"`
	QuantityPerUnit float64                `json:"quantity_per_unit"`
	Store           string                 `json:"store,omitempty"`
	Nutrition       *NutritionInfo         `json:"nutrition,omitempty"`
	Sustainability  *SustainabilityProfile `json:"sustainability,omitempty"`
	Labels          []string               `json:"labels,omitempty"`
	Allergens       []string               `json:"allergens,omitempty"`
	InStock         bool                   `json:"in_stock"`
}

// HasLabel reports whether the product carries the given label,
// case-insensitively.
func (p Product) HasLabel(label string) bool {
	for _, l := range p.Labels {
		if strings.EqualFold(l, label) {
			return true
		}
	}
	return false
}

// LabelSet returns the product labels lowercased for set operations.
func (p Product) LabelSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Labels))
	for _, l := range p.Labels {
		set[strings.ToLower(l)] = struct{}{}
	}
	return set
}

// Catalog maps a category name to the products available in it. Slice order
// is the stable catalog order used for deterministic tie-breaking.
type Catalog map[string][]Product

// Size returns the total number of products across all categories.
func (c Catalog) Size() int {
	total := 0
	for _, products := range c {
		total += len(products)
	}
	return total
}

// Category returns the products registered under the given category name.
func (c Catalog) Category(name string) []Product {
	return c[name]
}
