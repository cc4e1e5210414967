package optimize

import (
	"sort"

	"github.com/liquiverde/liquiverde-backend/internal/catalog"
)

// fitBudget brings the selections under the budget in three steps. First the
// preferred selections are kept if they already fit. Then every item is
// downgraded to its cheapest candidate and upgraded back one by one, cheapest
// upgrade first, while the budget allows. When even the all-cheapest basket
// exceeds the budget, items are admitted in descending efficiency order while
// the running total stays within it, and the upgrade pass reruns over the
// admitted subset. Excluded selections are returned separately.
func (o *Optimizer) fitBudget(selections []Selection, budget *int64) (kept []Selection, excluded []Selection) {
	if budget == nil || totalCost(selections) <= *budget {
		return selections, nil
	}

	downgraded := make([]Selection, len(selections))
	for i, sel := range selections {
		downgraded[i] = o.cheapestVariant(sel)
	}

	if totalCost(downgraded) <= *budget {
		return upgradeWithin(selections, downgraded, *budget), nil
	}

	keptIdx, excluded := includeByEfficiency(downgraded, *budget)
	cheap := make([]Selection, 0, len(keptIdx))
	preferred := make([]Selection, 0, len(keptIdx))
	for _, idx := range keptIdx {
		cheap = append(cheap, downgraded[idx])
		preferred = append(preferred, selections[idx])
	}
	kept = upgradeWithin(preferred, cheap, *budget)
	return kept, excluded
}

// cheapestVariant swaps the selection to the cheapest candidate in its pool
// and moves the previously chosen product into the alternatives.
func (o *Optimizer) cheapestVariant(sel Selection) Selection {
	pool := sel.pool
	if len(pool) == 0 {
		pool = append([]catalog.Product{sel.Product}, sel.Alternatives...)
	}

	cheapest := sel.Product
	for _, p := range pool {
		if p.Price < cheapest.Price {
			cheapest = p
		}
	}
	if cheapest.ID == sel.Product.ID {
		return sel
	}

	alternatives := make([]catalog.Product, 0, maxAlternatives)
	for _, alt := range append([]catalog.Product{sel.Product}, sel.Alternatives...) {
		if alt.ID == cheapest.ID || len(alternatives) == maxAlternatives {
			continue
		}
		alternatives = append(alternatives, alt)
	}

	swapped := sel
	swapped.Product = cheapest
	swapped.Alternatives = alternatives
	swapped.Score = o.scorer.Score(cheapest)
	swapped.Savings = savings(sel.Item, cheapest, pool)
	swapped.Impact = impactLevel(swapped.Score)
	swapped.Reason = "Switched to the cheapest option to fit the budget"
	return swapped
}

// upgradeWithin restores preferred products over their cheap stand-ins, in
// ascending order of upgrade cost, as long as the budget holds. preferred and
// current must be index-aligned.
func upgradeWithin(preferred, current []Selection, budget int64) []Selection {
	result := make([]Selection, len(current))
	copy(result, current)

	type upgrade struct {
		index int
		delta int64
	}
	upgrades := make([]upgrade, 0, len(current))
	for i := range current {
		delta := preferred[i].Cost() - current[i].Cost()
		if delta > 0 {
			upgrades = append(upgrades, upgrade{index: i, delta: delta})
		}
	}
	sort.SliceStable(upgrades, func(i, j int) bool {
		return upgrades[i].delta < upgrades[j].delta
	})

	total := totalCost(result)
	for _, u := range upgrades {
		if total+u.delta > budget {
			continue
		}
		result[u.index] = preferred[u.index]
		total += u.delta
	}
	return result
}

// includeByEfficiency admits selections greedily in descending efficiency
// order, skipping any whose cost would push the running total over the
// budget. The stable sort breaks efficiency ties by list order. Returned
// indices are ascending, so kept selections preserve their relative order.
func includeByEfficiency(selections []Selection, budget int64) (keptIdx []int, excluded []Selection) {
	order := make([]int, len(selections))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return efficiency(selections[order[i]]) > efficiency(selections[order[j]])
	})

	included := make(map[int]bool, len(selections))
	var total int64
	for _, idx := range order {
		cost := selections[idx].Cost()
		if total+cost > budget {
			continue
		}
		included[idx] = true
		total += cost
	}

	for i, sel := range selections {
		if included[i] {
			keptIdx = append(keptIdx, i)
		} else {
			excluded = append(excluded, sel)
		}
	}
	return keptIdx, excluded
}

// efficiency weighs an item's importance against what it costs. Priority 1
// is the most important, so it inverts to the largest numerator.
func efficiency(sel Selection) float64 {
	cost := sel.Cost()
	if cost <= 0 {
		return 0
	}
	return float64(6-sel.Item.Priority) / float64(cost)
}

func totalCost(selections []Selection) int64 {
	var total int64
	for _, sel := range selections {
		total += sel.Cost()
	}
	return total
}
