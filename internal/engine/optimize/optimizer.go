package optimize

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/liquiverde/liquiverde-backend/internal/catalog"
	"github.com/liquiverde/liquiverde-backend/internal/engine/score"
	"github.com/liquiverde/liquiverde-backend/pkg/config"
	"github.com/liquiverde/liquiverde-backend/pkg/enums"
	pkgerrors "github.com/liquiverde/liquiverde-backend/pkg/errors"
)

const maxAlternatives = 3

// Optimizer turns a shopping list into concrete product selections against a
// catalog snapshot. The greedy strategy is fully deterministic; the genetic
// strategy draws from the injected random source.
type Optimizer struct {
	scorer *score.Scorer
	cfg    config.OptimizerConfig
	finder CandidateFinder
	rng    *rand.Rand
}

// Option customizes an Optimizer.
type Option func(*Optimizer)

// WithCandidateFinder installs a cross-category fallback source.
func WithCandidateFinder(finder CandidateFinder) Option {
	return func(o *Optimizer) { o.finder = finder }
}

// WithRand fixes the random source used by the genetic strategy. Tests use
// this to make runs reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(o *Optimizer) { o.rng = rng }
}

// NewOptimizer builds an optimizer over the given scorer and configuration.
func NewOptimizer(scorer *score.Scorer, cfg config.OptimizerConfig, opts ...Option) (*Optimizer, error) {
	if scorer == nil {
		return nil, fmt.Errorf("optimize: scorer is required")
	}
	o := &Optimizer{scorer: scorer, cfg: cfg}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o, nil
}

// Optimize resolves every list item to a product, fits the selection to the
// budget, and assembles the result. An unknown focus fails fast; everything
// else degrades to warnings: items with no usable candidates are reported in
// ItemsNotFound, an empty list yields an empty result with zero cost, and a
// non-positive budget excludes every item with a warning apiece.
func (o *Optimizer) Optimize(list ShoppingList, cat catalog.Catalog) (*Result, error) {
	if !list.Focus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid optimization focus %q", list.Focus))
	}

	var (
		matched  []matchedItem
		notFound []string
	)
	for _, raw := range list.Items {
		item := raw.normalized()
		candidates, cross := matchCandidates(item, cat, o.finder)
		candidates = filterCandidates(item, candidates)
		if len(candidates) == 0 {
			notFound = append(notFound, item.ProductName)
			continue
		}
		matched = append(matched, matchedItem{
			item:          item,
			candidates:    candidates,
			crossCategory: cross,
		})
	}

	var selections []Selection
	algorithm := enums.OptimizerStrategyGreedy
	if o.cfg.Strategy == enums.OptimizerStrategyGenetic.String() && len(matched) > 0 {
		algorithm = enums.OptimizerStrategyGenetic
		selections = o.selectGenetic(list, matched)
	} else {
		selections = o.selectGreedy(list.Focus, matched)
	}

	selections, excluded := o.fitBudget(selections, list.Budget)

	return o.buildResult(list, selections, excluded, notFound, algorithm), nil
}

// matchedItem carries a normalized item together with its usable candidates.
type matchedItem struct {
	item          Item
	candidates    []catalog.Product
	crossCategory bool
}

// selectGreedy picks the best candidate for each item independently under
// the requested focus. Ties keep the earliest candidate, so the result is
// stable across runs.
func (o *Optimizer) selectGreedy(focus enums.OptimizationFocus, matched []matchedItem) []Selection {
	selections := make([]Selection, 0, len(matched))
	for _, m := range matched {
		values := o.candidateValues(focus, m.item, m.candidates)

		best := 0
		for i := 1; i < len(values); i++ {
			if values[i] > values[best] {
				best = i
			}
		}
		selections = append(selections, o.newSelection(focus, m, best, values))
	}
	return selections
}

// candidateValues scores every candidate under the focus, on a [0,100] scale.
func (o *Optimizer) candidateValues(focus enums.OptimizationFocus, item Item, candidates []catalog.Product) []float64 {
	norms := priceNorms(candidates)
	values := make([]float64, len(candidates))
	for i, p := range candidates {
		values[i] = o.candidateValue(focus, item, p, norms[i])
	}
	return values
}

// candidateValue projects a candidate onto the focus objective. The balanced
// profile blends price, sustainability, health and preference match.
func (o *Optimizer) candidateValue(focus enums.OptimizationFocus, item Item, p catalog.Product, priceNorm float64) float64 {
	sc := o.scorer.Score(p)
	switch focus {
	case enums.OptimizationFocusPrice:
		return priceNorm
	case enums.OptimizationFocusSustainability:
		return sc.Overall
	case enums.OptimizationFocusHealth:
		return sc.Health
	default:
		preference := p.PreferenceMatch(item.Preferences) * 100
		return 0.3*priceNorm + 0.3*sc.Overall + 0.2*sc.Health + 0.2*preference
	}
}

// priceNorms maps candidate prices onto [0,100] where the cheapest candidate
// scores 100. When every candidate costs the same, all score 100.
func priceNorms(candidates []catalog.Product) []float64 {
	norms := make([]float64, len(candidates))
	if len(candidates) == 0 {
		return norms
	}

	lowest, highest := candidates[0].Price, candidates[0].Price
	for _, p := range candidates[1:] {
		if p.Price < lowest {
			lowest = p.Price
		}
		if p.Price > highest {
			highest = p.Price
		}
	}
	if lowest == highest {
		for i := range norms {
			norms[i] = 100
		}
		return norms
	}
	span := float64(highest - lowest)
	for i, p := range candidates {
		norms[i] = 100 * float64(highest-p.Price) / span
	}
	return norms
}

// newSelection assembles a Selection for the chosen candidate, collecting the
// next-best candidates as alternatives.
func (o *Optimizer) newSelection(focus enums.OptimizationFocus, m matchedItem, chosen int, values []float64) Selection {
	product := m.candidates[chosen]

	type ranked struct {
		product catalog.Product
		value   float64
	}
	others := make([]ranked, 0, len(m.candidates)-1)
	for i, p := range m.candidates {
		if i == chosen {
			continue
		}
		others = append(others, ranked{product: p, value: values[i]})
	}
	sort.SliceStable(others, func(i, j int) bool {
		return others[i].value > others[j].value
	})
	if len(others) > maxAlternatives {
		others = others[:maxAlternatives]
	}
	alternatives := make([]catalog.Product, 0, len(others))
	for _, r := range others {
		alternatives = append(alternatives, r.product)
	}

	sc := o.scorer.Score(product)
	return Selection{
		Item:          m.item,
		Product:       product,
		Score:         sc,
		Alternatives:  alternatives,
		Reason:        selectionReason(focus, m),
		Savings:       savings(m.item, product, m.candidates),
		Impact:        impactLevel(sc),
		CrossCategory: m.crossCategory,
		pool:          m.candidates,
	}
}

// savings is what the shopper avoids spending relative to the most expensive
// usable candidate, scaled by the requested quantity.
func savings(item Item, chosen catalog.Product, candidates []catalog.Product) int64 {
	highest := chosen.Price
	for _, p := range candidates {
		if p.Price > highest {
			highest = p.Price
		}
	}
	return (highest - chosen.Price) * int64(item.Quantity)
}

// impactLevel grades a selection by its environmental score. Products without
// sustainability data score a neutral 50 and land on medium.
func impactLevel(sc score.Score) enums.ImpactLevel {
	switch {
	case sc.Environmental >= 75:
		return enums.ImpactLevelLow
	case sc.Environmental >= 50:
		return enums.ImpactLevelMedium
	default:
		return enums.ImpactLevelHigh
	}
}

func selectionReason(focus enums.OptimizationFocus, m matchedItem) string {
	if m.crossCategory {
		return fmt.Sprintf("No direct match for %q; closest available product selected", m.item.ProductName)
	}
	switch focus {
	case enums.OptimizationFocusPrice:
		return "Lowest price among matching products"
	case enums.OptimizationFocusSustainability:
		return "Best overall sustainability score among matching products"
	case enums.OptimizationFocusHealth:
		return "Best nutritional profile among matching products"
	default:
		return "Best balance of price, sustainability and health"
	}
}
