package optimize

import (
	"sort"

	"github.com/liquiverde/liquiverde-backend/internal/catalog"
	"github.com/liquiverde/liquiverde-backend/pkg/enums"
)

const (
	defaultPopulationSize = 50
	defaultGenerations    = 100
	defaultMutationRate   = 0.15
	tournamentSize        = 3
	elitismFraction       = 0.2
)

// fitnessWeights blends the per-gene components into a single fitness value.
type fitnessWeights struct {
	cost           float64
	sustainability float64
	health         float64
	preference     float64
}

func weightsFor(focus enums.OptimizationFocus) fitnessWeights {
	switch focus {
	case enums.OptimizationFocusPrice:
		return fitnessWeights{cost: 0.7, sustainability: 0.1, health: 0.1, preference: 0.1}
	case enums.OptimizationFocusSustainability:
		return fitnessWeights{cost: 0.1, sustainability: 0.7, health: 0.1, preference: 0.1}
	case enums.OptimizationFocusHealth:
		return fitnessWeights{cost: 0.1, sustainability: 0.1, health: 0.7, preference: 0.1}
	default:
		return fitnessWeights{cost: 0.3, sustainability: 0.3, health: 0.2, preference: 0.2}
	}
}

// gene holds the precomputed fitness components of one candidate so the GA
// loop never rescores products.
type gene struct {
	product        catalog.Product
	price          int64
	priceNorm      float64
	sustainability float64
	health         float64
	preference     float64
}

// genePool is the candidate table for one shopping list item.
type genePool struct {
	item     matchedItem
	genes    []gene
	quantity int64
}

// selectGenetic searches product combinations jointly with a genetic
// algorithm. Candidates per item are ranked by overall score and capped so
// the genome stays small; the budget enters the fitness as a penalty rather
// than a hard cut, the later fitting pass enforces it strictly.
func (o *Optimizer) selectGenetic(list ShoppingList, matched []matchedItem) []Selection {
	pools := o.buildGenePools(matched)

	popSize := o.cfg.PopulationSize
	if popSize <= 0 {
		popSize = defaultPopulationSize
	}
	generations := o.cfg.Generations
	if generations <= 0 {
		generations = defaultGenerations
	}
	mutationRate := o.cfg.MutationRate
	if mutationRate <= 0 {
		mutationRate = defaultMutationRate
	}
	weights := weightsFor(list.Focus)

	population := make([][]int, popSize)
	for i := range population {
		population[i] = o.randomGenome(pools)
	}

	eliteCount := int(float64(popSize) * elitismFraction)
	if eliteCount < 1 {
		eliteCount = 1
	}

	for generation := 0; generation < generations; generation++ {
		sort.SliceStable(population, func(i, j int) bool {
			return o.fitness(population[i], pools, weights, list.Budget) >
				o.fitness(population[j], pools, weights, list.Budget)
		})

		next := make([][]int, 0, popSize)
		for i := 0; i < eliteCount; i++ {
			next = append(next, cloneGenome(population[i]))
		}
		for len(next) < popSize {
			parentA := o.tournament(population, pools, weights, list.Budget)
			parentB := o.tournament(population, pools, weights, list.Budget)
			child := o.crossover(parentA, parentB)
			o.mutate(child, pools, mutationRate)
			next = append(next, child)
		}
		population = next
	}

	best := population[0]
	bestFitness := o.fitness(best, pools, weights, list.Budget)
	for _, genome := range population[1:] {
		if fit := o.fitness(genome, pools, weights, list.Budget); fit > bestFitness {
			best = genome
			bestFitness = fit
		}
	}

	return o.genomeSelections(list.Focus, pools, best)
}

// buildGenePools ranks each item's candidates by overall score, caps the
// list, and precomputes the fitness components.
func (o *Optimizer) buildGenePools(matched []matchedItem) []genePool {
	maxCandidates := o.cfg.MaxCandidates
	pools := make([]genePool, 0, len(matched))
	for _, m := range matched {
		ranked := o.scorer.Rank(m.candidates)
		if maxCandidates > 0 && len(ranked) > maxCandidates {
			ranked = ranked[:maxCandidates]
		}

		capped := make([]catalog.Product, 0, len(ranked))
		for _, r := range ranked {
			capped = append(capped, r.Product)
		}
		norms := priceNorms(capped)

		genes := make([]gene, 0, len(ranked))
		for i, r := range ranked {
			genes = append(genes, gene{
				product:        r.Product,
				price:          r.Product.Price,
				priceNorm:      norms[i],
				sustainability: r.Score.Overall,
				health:         r.Score.Health,
				preference:     r.Product.PreferenceMatch(m.item.Preferences) * 100,
			})
		}
		pools = append(pools, genePool{
			item:     withCandidates(m, capped),
			genes:    genes,
			quantity: int64(m.item.Quantity),
		})
	}
	return pools
}

// withCandidates returns the matched item restricted to the capped candidate
// list so downstream selection building sees the same pool as the GA.
func withCandidates(m matchedItem, candidates []catalog.Product) matchedItem {
	m.candidates = candidates
	return m
}

func (o *Optimizer) randomGenome(pools []genePool) []int {
	genome := make([]int, len(pools))
	for i, pool := range pools {
		genome[i] = o.rng.Intn(len(pool.genes))
	}
	return genome
}

// fitness is the average per-gene blend, scaled down when the genome busts
// the budget so cheaper combinations win ties.
func (o *Optimizer) fitness(genome []int, pools []genePool, weights fitnessWeights, budget *int64) float64 {
	if len(genome) == 0 {
		return 0
	}

	var total float64
	var cost int64
	for i, idx := range genome {
		g := pools[i].genes[idx]
		total += weights.cost*g.priceNorm +
			weights.sustainability*g.sustainability +
			weights.health*g.health +
			weights.preference*g.preference
		cost += g.price * pools[i].quantity
	}
	fitness := total / float64(len(genome))

	if budget != nil && cost > *budget {
		fitness *= float64(*budget) / float64(cost)
	}
	return fitness
}

func (o *Optimizer) tournament(population [][]int, pools []genePool, weights fitnessWeights, budget *int64) []int {
	best := population[o.rng.Intn(len(population))]
	bestFitness := o.fitness(best, pools, weights, budget)
	for i := 1; i < tournamentSize; i++ {
		challenger := population[o.rng.Intn(len(population))]
		if fit := o.fitness(challenger, pools, weights, budget); fit > bestFitness {
			best = challenger
			bestFitness = fit
		}
	}
	return best
}

// crossover performs single-point recombination.
func (o *Optimizer) crossover(parentA, parentB []int) []int {
	child := make([]int, len(parentA))
	point := 0
	if len(parentA) > 1 {
		point = o.rng.Intn(len(parentA))
	}
	copy(child, parentA[:point])
	copy(child[point:], parentB[point:])
	return child
}

func (o *Optimizer) mutate(genome []int, pools []genePool, rate float64) {
	for i := range genome {
		if o.rng.Float64() < rate {
			genome[i] = o.rng.Intn(len(pools[i].genes))
		}
	}
}

func cloneGenome(genome []int) []int {
	clone := make([]int, len(genome))
	copy(clone, genome)
	return clone
}

// genomeSelections converts the winning genome into regular selections,
// reusing the greedy machinery for alternatives, savings and reasons.
func (o *Optimizer) genomeSelections(focus enums.OptimizationFocus, pools []genePool, genome []int) []Selection {
	selections := make([]Selection, 0, len(genome))
	for i, idx := range genome {
		pool := pools[i]
		values := o.candidateValues(focus, pool.item.item, pool.item.candidates)
		selections = append(selections, o.newSelection(focus, pool.item, idx, values))
	}
	return selections
}
