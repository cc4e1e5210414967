package catalog

import "github.com/liquiverde/liquiverde-backend/pkg/db/models"

// FromModel converts a database row into the engine's product shape.
func FromModel(row models.Product) Product {
	p := Product{
		ID:              row.ID.String(),
		Name:            row.Name,
		Category:        row.Category,
		Price:           row.Price,
		Unit:            row.Unit,
		QuantityPerUnit: row.QuantityPerUnit,
		Labels:          append([]string(nil), row.Labels...),
		Allergens:       append([]string(nil), row.Allergens...),
		InStock:         row.InStock,
	}
	if row.Barcode != nil {
		p.Barcode = *row.Barcode
	}
	if row.Brand != nil {
		p.Brand = *row.Brand
	}
	if row.Store != nil {
		p.Store = *row.Store
	}
	if nutrition := nutritionFromModel(row); nutrition != nil {
		p.Nutrition = nutrition
	}
	if sustainability := sustainabilityFromModel(row); sustainability != nil {
		p.Sustainability = sustainability
	}
	return p
}

// nutritionFromModel returns nil when the row carries no nutrition data at
// all, which the scorer treats as unknown rather than zero.
func nutritionFromModel(row models.Product) *NutritionInfo {
	if row.EnergyKcal == nil && row.Proteins == nil && row.Carbohydrates == nil &&
		row.Fats == nil && row.Fiber == nil && row.Salt == nil {
		return nil
	}
	return &NutritionInfo{
		EnergyKcal:    deref(row.EnergyKcal),
		Proteins:      deref(row.Proteins),
		Carbohydrates: deref(row.Carbohydrates),
		Fats:          deref(row.Fats),
		Fiber:         deref(row.Fiber),
		Salt:          deref(row.Salt),
	}
}

func sustainabilityFromModel(row models.Product) *SustainabilityProfile {
	if row.CarbonFootprintKG == nil && row.WaterUsageLiters == nil &&
		!row.PackagingRecyclable && !row.FairTrade && !row.LocalProduct {
		return nil
	}
	return &SustainabilityProfile{
		CarbonFootprintKG:   row.CarbonFootprintKG,
		WaterUsageLiters:    row.WaterUsageLiters,
		PackagingRecyclable: row.PackagingRecyclable,
		FairTrade:           row.FairTrade,
		LocalProduct:        row.LocalProduct,
	}
}

// BuildCatalog groups database rows into the category map the engine works
// on, preserving row order within each category and capping the category
// size when maxPerCategory is positive.
func BuildCatalog(rows []models.Product, maxPerCategory int) Catalog {
	cat := make(Catalog)
	for _, row := range rows {
		if maxPerCategory > 0 && len(cat[row.Category]) >= maxPerCategory {
			continue
		}
		cat[row.Category] = append(cat[row.Category], FromModel(row))
	}
	return cat
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
