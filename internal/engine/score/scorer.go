package score

import (
	"math"
	"sort"
	"strings"

	"github.com/liquiverde/liquiverde-backend/internal/catalog"
)

// Score is the four-dimensional sustainability evaluation of a product plus
// the weighted overall value. Every field lies in [0,100].
type Score struct {
	Economic      float64 `json:"economic_score"`
	Environmental float64 `json:"environmental_score"`
	Social        float64 `json:"social_score"`
	Health        float64 `json:"health_score"`
	Overall       float64 `json:"overall_score"`
}

// Scorer evaluates products against the configured weights and references.
// It is a pure computation: no I/O, no caching, safe for concurrent use.
type Scorer struct {
	weights Weights
	refs    References
}

// NewScorer builds a scorer with the provided weights and references.
func NewScorer(weights Weights, refs References) *Scorer {
	return &Scorer{weights: weights, refs: refs}
}

// NewDefaultScorer builds a scorer with the canonical weights and references.
func NewDefaultScorer() *Scorer {
	return NewScorer(DefaultWeights, DefaultReferences)
}

// Weights returns the configured weight set.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score computes the sustainability score for a product. The function is
// total: missing attributes degrade to neutral contributions, never errors.
func (s *Scorer) Score(p catalog.Product) Score {
	economic := round2(s.economicScore(p))
	environmental := round2(s.environmentalScore(p))
	social := round2(s.socialScore(p))
	health := round2(s.healthScore(p))

	overall := economic*s.weights.Economic +
		environmental*s.weights.Environmental +
		social*s.weights.Social +
		health*s.weights.Health

	return Score{
		Economic:      economic,
		Environmental: environmental,
		Social:        social,
		Health:        health,
		Overall:       round2(clamp(overall)),
	}
}

// economicScore rewards low prices and multi-unit value for money.
func (s *Scorer) economicScore(p catalog.Product) float64 {
	priceScore := 100 * (1 - math.Min(float64(p.Price)/(s.refs.Price*2), 1.0))

	valueScore := 50.0
	if p.QuantityPerUnit > 1 {
		valueScore = math.Min(100, 50+p.QuantityPerUnit*10)
	}

	return clamp(priceScore*0.7 + valueScore*0.3)
}

// environmentalScore starts from a neutral baseline and shifts it by carbon,
// water, packaging and eco label signals.
func (s *Scorer) environmentalScore(p catalog.Product) float64 {
	result := 50.0

	sus := p.Sustainability
	if sus == nil {
		return result
	}

	if sus.CarbonFootprintKG != nil {
		carbonRatio := *sus.CarbonFootprintKG / s.refs.Carbon
		carbonScore := 100 * (1 - math.Min(carbonRatio, 1.0))
		result += (carbonScore - 50) * 0.4
	}

	if sus.WaterUsageLiters != nil {
		waterRatio := *sus.WaterUsageLiters / s.refs.Water
		waterScore := 100 * (1 - math.Min(waterRatio, 1.0))
		result += (waterScore - 50) * 0.3
	}

	if sus.PackagingRecyclable {
		result += recyclableBonus
	}

	result += labelBonus(p.Labels, ecoLabels, ecoLabelBonus, ecoLabelCap)

	return clamp(result)
}

// socialScore rewards fair trade, local production, and social certifications.
func (s *Scorer) socialScore(p catalog.Product) float64 {
	result := 50.0

	sus := p.Sustainability
	if sus == nil {
		return result
	}

	if sus.FairTrade {
		result += fairTradeBonus
	}
	if sus.LocalProduct {
		result += localBonus
	}

	result += labelBonus(p.Labels, socialLabels, socialLabelBonus, socialLabelCap)

	return clamp(result)
}

// healthScore applies a simplified nutri-grade evaluation over the nutrition
// profile, labels, and allergen count.
func (s *Scorer) healthScore(p catalog.Product) float64 {
	if p.Nutrition == nil {
		return 50.0
	}

	result := 70.0
	n := p.Nutrition

	if n.Fats > 10 {
		result -= math.Min((n.Fats-10)*2, 20)
	}
	if n.Salt > 1 {
		result -= math.Min((n.Salt-1)*15, 25)
	}
	if n.Proteins > 5 {
		result += math.Min(n.Proteins*2, 15)
	}
	if n.Fiber > 3 {
		result += math.Min(n.Fiber*3, 15)
	}

	result += labelBonus(p.Labels, healthLabels, healthLabelBonus, healthLabelCap)

	if len(p.Allergens) > 3 {
		result -= allergenPenalty
	}

	return clamp(result)
}

// Comparison reports the per-dimension difference between two products.
type Comparison struct {
	First      Score   `json:"first"`
	Second     Score   `json:"second"`
	WinnerID   string  `json:"winner_id"`
	Difference float64 `json:"difference"`

	EconomicDelta      float64 `json:"economic_delta"`
	EnvironmentalDelta float64 `json:"environmental_delta"`
	SocialDelta        float64 `json:"social_delta"`
	HealthDelta        float64 `json:"health_delta"`
}

// Compare scores both products and reports the dimension deltas (first minus
// second) together with the overall winner.
func (s *Scorer) Compare(first, second catalog.Product) Comparison {
	a := s.Score(first)
	b := s.Score(second)

	winner := first.ID
	if b.Overall > a.Overall {
		winner = second.ID
	}

	return Comparison{
		First:              a,
		Second:             b,
		WinnerID:           winner,
		Difference:         round2(math.Abs(a.Overall - b.Overall)),
		EconomicDelta:      round2(a.Economic - b.Economic),
		EnvironmentalDelta: round2(a.Environmental - b.Environmental),
		SocialDelta:        round2(a.Social - b.Social),
		HealthDelta:        round2(a.Health - b.Health),
	}
}

// Ranked pairs a product with its computed score.
type Ranked struct {
	Product catalog.Product `json:"product"`
	Score   Score           `json:"score"`
}

// Rank orders the products by overall score, best first. The input slice is
// not modified; equal scores keep their input order.
func (s *Scorer) Rank(products []catalog.Product) []Ranked {
	ranked := make([]Ranked, 0, len(products))
	for _, p := range products {
		ranked = append(ranked, Ranked{Product: p, Score: s.Score(p)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Overall > ranked[j].Score.Overall
	})
	return ranked
}

// labelBonus adds bonus points for every product label containing one of the
// needles, capped at limit.
func labelBonus(labels []string, needles []string, bonus, limit float64) float64 {
	if len(labels) == 0 {
		return 0
	}
	count := 0
	for _, label := range labels {
		lower := strings.ToLower(label)
		for _, needle := range needles {
			if strings.Contains(lower, needle) {
				count++
				break
			}
		}
	}
	return math.Min(float64(count)*bonus, limit)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
