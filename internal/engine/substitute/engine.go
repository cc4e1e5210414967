package substitute

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/liquiverde/liquiverde-backend/internal/catalog"
	"github.com/liquiverde/liquiverde-backend/internal/engine/score"
	"github.com/liquiverde/liquiverde-backend/pkg/enums"
	pkgerrors "github.com/liquiverde/liquiverde-backend/pkg/errors"
)

const (
	// DefaultMaxSuggestions caps how many alternatives a single lookup returns.
	DefaultMaxSuggestions = 5

	// similarityThreshold is the minimum similarity for a candidate to be
	// considered a substitute at all.
	similarityThreshold = 30.0

	highConfidenceSimilarity = 70.0
	highConfidenceQuality    = 70.0
	lowConfidenceSimilarity  = 40.0
	lowConfidenceQuality     = 50.0

	sameProductNameRatio = 0.5
	healthierMargin      = 10.0
)

// TradeOff quantifies what the shopper gains or gives up by switching.
// Deltas are candidate minus original; a negative price delta is a saving.
type TradeOff struct {
	PriceDelta          int64   `json:"price_delta"`
	PriceDeltaPct       float64 `json:"price_delta_pct"`
	SustainabilityDelta float64 `json:"sustainability_delta"`
	HealthDelta         float64 `json:"health_delta"`
}

// Suggestion is one ranked substitution candidate. Similarity is reported on
// [0,1]; Quality stays on the 0-100 score scale.
type Suggestion struct {
	Product    catalog.Product        `json:"product"`
	Similarity float64                `json:"similarity"`
	Quality    float64                `json:"quality"`
	Type       enums.SubstitutionType `json:"type"`
	Confidence enums.ConfidenceLevel  `json:"confidence"`
	Reason     string                 `json:"reason"`
	TradeOff   TradeOff               `json:"trade_off"`
}

// Request describes a single substitution lookup.
type Request struct {
	Original       catalog.Product
	Candidates     []catalog.Product
	Focus          enums.OptimizationFocus
	Preferences    []string
	MaxSuggestions int
}

// Engine finds replacement products for a given original. It is a pure
// computation over the provided candidates and safe for concurrent use.
type Engine struct {
	scorer *score.Scorer
}

// NewEngine builds a substitution engine on top of the given scorer.
func NewEngine(scorer *score.Scorer) (*Engine, error) {
	if scorer == nil {
		return nil, fmt.Errorf("substitute: scorer is required")
	}
	return &Engine{scorer: scorer}, nil
}

// FindSubstitutes returns up to MaxSuggestions candidates ranked by how well
// they replace the original under the requested focus. Candidates that are
// out of stock, identical to the original, below the similarity threshold,
// or in violation of a dietary constraint are excluded.
func (e *Engine) FindSubstitutes(req Request) ([]Suggestion, error) {
	if !req.Focus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid optimization focus %q", req.Focus))
	}

	limit := req.MaxSuggestions
	if limit <= 0 {
		limit = DefaultMaxSuggestions
	}

	originalScore := e.scorer.Score(req.Original)

	suggestions := make([]Suggestion, 0, limit)
	for _, candidate := range req.Candidates {
		if candidate.ID == req.Original.ID || !candidate.InStock {
			continue
		}
		if !candidate.SatisfiesDiet(req.Preferences) {
			continue
		}

		sim := similarity(req.Original, candidate)
		if sim < similarityThreshold {
			continue
		}

		candidateScore := e.scorer.Score(candidate)
		quality := qualityFor(req.Focus, candidateScore)

		suggestions = append(suggestions, Suggestion{
			Product:    candidate,
			Similarity: round2(sim) / 100,
			Quality:    round2(quality),
			Type:       classify(req.Original, candidate, originalScore, candidateScore),
			Confidence: confidence(sim, quality),
			Reason:     reason(req.Original, candidate, originalScore, candidateScore),
			TradeOff:   tradeOff(req.Original, candidate, originalScore, candidateScore),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return rankScore(suggestions[i]) > rankScore(suggestions[j])
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// BatchSubstitute runs FindSubstitutes for every original, keyed by product
// ID. The focus, preferences and limit apply to every lookup.
func (e *Engine) BatchSubstitute(originals []catalog.Product, candidates []catalog.Product, focus enums.OptimizationFocus, prefs []string) (map[string][]Suggestion, error) {
	out := make(map[string][]Suggestion, len(originals))
	for _, original := range originals {
		suggestions, err := e.FindSubstitutes(Request{
			Original:    original,
			Candidates:  candidates,
			Focus:       focus,
			Preferences: prefs,
		})
		if err != nil {
			return nil, err
		}
		out[original.ID] = suggestions
	}
	return out, nil
}

// rankScore blends similarity and focus quality evenly for ordering, with
// similarity rescaled onto quality's 0-100 range.
func rankScore(s Suggestion) float64 {
	return s.Similarity*100*0.5 + s.Quality*0.5
}

// qualityFor projects the four-dimensional score onto the requested focus.
func qualityFor(focus enums.OptimizationFocus, s score.Score) float64 {
	switch focus {
	case enums.OptimizationFocusPrice:
		return s.Economic
	case enums.OptimizationFocusSustainability:
		return (s.Environmental + s.Social) / 2
	case enums.OptimizationFocusHealth:
		return s.Health
	default:
		return s.Overall
	}
}

func classify(original, candidate catalog.Product, origScore, candScore score.Score) enums.SubstitutionType {
	sameCategory := strings.EqualFold(original.Category, candidate.Category)
	differentBrand := !strings.EqualFold(original.Brand, candidate.Brand)
	if sameCategory && differentBrand && nameSimilarity(original.Name, candidate.Name) >= sameProductNameRatio {
		return enums.SubstitutionTypeSameProductDifferentBrand
	}
	if candScore.Health > origScore.Health+healthierMargin {
		return enums.SubstitutionTypeHealthierAlternative
	}
	return enums.SubstitutionTypeSimilarCategory
}

func confidence(sim, quality float64) enums.ConfidenceLevel {
	if sim >= highConfidenceSimilarity && quality >= highConfidenceQuality {
		return enums.ConfidenceLevelHigh
	}
	if sim < lowConfidenceSimilarity || quality < lowConfidenceQuality {
		return enums.ConfidenceLevelLow
	}
	return enums.ConfidenceLevelMedium
}

// reason produces the shopper-facing justification for the swap, picking the
// strongest signal first.
func reason(original, candidate catalog.Product, origScore, candScore score.Score) string {
	switch {
	case candidate.Price < original.Price:
		return fmt.Sprintf("Costs %s%% less than %s", priceDeltaPct(original.Price, candidate.Price).Abs().StringFixed(1), original.Name)
	case candScore.Health > origScore.Health+healthierMargin:
		return fmt.Sprintf("Healthier option than %s", original.Name)
	case candScore.Overall > origScore.Overall:
		return fmt.Sprintf("Better overall sustainability than %s", original.Name)
	default:
		return fmt.Sprintf("Comparable alternative to %s", original.Name)
	}
}

func tradeOff(original, candidate catalog.Product, origScore, candScore score.Score) TradeOff {
	pct, _ := priceDeltaPct(original.Price, candidate.Price).Float64()
	sustainabilityDelta := (candScore.Environmental + candScore.Social) - (origScore.Environmental + origScore.Social)
	return TradeOff{
		PriceDelta:          candidate.Price - original.Price,
		PriceDeltaPct:       pct,
		SustainabilityDelta: round2(sustainabilityDelta / 2),
		HealthDelta:         round2(candScore.Health - origScore.Health),
	}
}

// priceDeltaPct returns (candidate - original) / original as a percentage
// rounded to one decimal place. A zero original price yields zero.
func priceDeltaPct(original, candidate int64) decimal.Decimal {
	if original == 0 {
		return decimal.Zero
	}
	delta := decimal.NewFromInt(candidate - original)
	return delta.Mul(decimal.NewFromInt(100)).DivRound(decimal.NewFromInt(original), 1)
}

func round2(v float64) float64 {
	d := decimal.NewFromFloat(v).Round(2)
	f, _ := d.Float64()
	return f
}
