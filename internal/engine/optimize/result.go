package optimize

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/liquiverde/liquiverde-backend/internal/engine/score"
	"github.com/liquiverde/liquiverde-backend/pkg/enums"
)

const (
	maxRecommendedStores = 3

	// Shopping time estimate: a fixed base for getting in and out, a few
	// minutes per line item, and a penalty for every extra store.
	shoppingTimeBaseMinutes     = 15
	shoppingTimePerItemMinutes  = 2
	shoppingTimePerStoreMinutes = 5
)

// buildResult aggregates the final selections into the optimizer output.
func (o *Optimizer) buildResult(list ShoppingList, selections, excluded []Selection, notFound []string, algorithm enums.OptimizerStrategy) *Result {
	result := &Result{
		Selections:     selections,
		TotalCost:      totalCost(selections),
		ItemsNotFound:  notFound,
		Algorithm:      algorithm.String(),
		ConstraintsMet: len(excluded) == 0,
	}

	result.EstimatedSavings = sumSavings(selections)
	result.BudgetUsedPercentage = budgetUsed(result.TotalCost, list.Budget)
	result.RecommendedStores = recommendStores(selections)
	result.EstimatedShoppingTime = estimateShoppingTime(selections, result.RecommendedStores)

	o.fillSustainabilityTotals(result)

	for _, name := range notFound {
		result.Warnings = append(result.Warnings, fmt.Sprintf("No product found for %q", name))
	}
	for _, sel := range excluded {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%q (priority %d) left out to stay within budget", sel.Item.ProductName, sel.Item.Priority))
	}
	if list.Budget != nil && result.TotalCost > *list.Budget {
		result.ConstraintsMet = false
		result.Warnings = append(result.Warnings, "Selection exceeds the requested budget")
	}

	return result
}

// fillSustainabilityTotals computes the aggregate footprint of the basket:
// every score dimension averaged across the selections, plus the carbon,
// water and recyclability totals. Unknown carbon or water measurements
// contribute nothing.
func (o *Optimizer) fillSustainabilityTotals(result *Result) {
	if len(result.Selections) == 0 {
		return
	}

	var sum score.Score
	var carbon, water float64
	recyclable := 0
	for _, sel := range result.Selections {
		sum.Economic += sel.Score.Economic
		sum.Environmental += sel.Score.Environmental
		sum.Social += sel.Score.Social
		sum.Health += sel.Score.Health
		sum.Overall += sel.Score.Overall

		quantity := float64(sel.Item.Quantity)
		if sus := sel.Product.Sustainability; sus != nil {
			if sus.CarbonFootprintKG != nil {
				carbon += *sus.CarbonFootprintKG * quantity
			}
			if sus.WaterUsageLiters != nil {
				water += *sus.WaterUsageLiters * quantity
			}
			if sus.PackagingRecyclable {
				recyclable++
			}
		}
	}

	count := float64(len(result.Selections))
	result.OverallSustainability = score.Score{
		Economic:      round2(sum.Economic / count),
		Environmental: round2(sum.Environmental / count),
		Social:        round2(sum.Social / count),
		Health:        round2(sum.Health / count),
		Overall:       round2(sum.Overall / count),
	}
	result.TotalCarbonFootprint = round2(carbon)
	result.TotalWaterUsage = round2(water)
	result.RecyclablePercentage = round1(100 * float64(recyclable) / count)
}

func sumSavings(selections []Selection) int64 {
	var total int64
	for _, sel := range selections {
		total += sel.Savings
	}
	return total
}

// budgetUsed returns total/budget as a percentage with one decimal. Without
// a budget the percentage is zero.
func budgetUsed(total int64, budget *int64) float64 {
	if budget == nil || *budget <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(total).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(*budget), 1)
	f, _ := pct.Float64()
	return f
}

// recommendStores ranks the stores covering the most selections, most items
// first and alphabetical on ties, capped at maxRecommendedStores.
func recommendStores(selections []Selection) []string {
	counts := make(map[string]int)
	for _, sel := range selections {
		if sel.Product.Store != "" {
			counts[sel.Product.Store]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	stores := make([]string, 0, len(counts))
	for store := range counts {
		stores = append(stores, store)
	}
	sort.Slice(stores, func(i, j int) bool {
		if counts[stores[i]] != counts[stores[j]] {
			return counts[stores[i]] > counts[stores[j]]
		}
		return stores[i] < stores[j]
	})
	if len(stores) > maxRecommendedStores {
		stores = stores[:maxRecommendedStores]
	}
	return stores
}

func estimateShoppingTime(selections []Selection, stores []string) int {
	if len(selections) == 0 {
		return 0
	}
	minutes := shoppingTimeBaseMinutes + shoppingTimePerItemMinutes*len(selections)
	if len(stores) > 1 {
		minutes += shoppingTimePerStoreMinutes * (len(stores) - 1)
	}
	return minutes
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func round1(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}
