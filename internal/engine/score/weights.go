package score

// Weights defines the contribution of each dimension to the overall score.
// The four values are expected to sum to 1.0.
//
// The upstream documentation circulated two candidate weight sets
// (30/30/20/20 and 25/30/20/25). The executable reference implementation
// uses 30/30/20/20, so that set is pinned here as the canonical default;
// callers needing a different profile inject their own Weights.
type Weights struct {
	Economic      float64
	Environmental float64
	Social        float64
	Health        float64
}

// DefaultWeights is the canonical weight set for the overall score.
var DefaultWeights = Weights{
	Economic:      0.30,
	Environmental: 0.30,
	Social:        0.20,
	Health:        0.20,
}

// References hold the normalization anchors used by the scorer. Price is in
// the catalog's minor currency units, carbon in kg CO2 and water in liters.
type References struct {
	Price  float64
	Carbon float64
	Water  float64
}

// DefaultReferences mirror the averages the reference dataset was calibrated
// against.
var DefaultReferences = References{
	Price:  5000,
	Carbon: 5,
	Water:  100,
}

// Bounded bonus constants for the individual dimensions.
const (
	recyclableBonus  = 15.0
	ecoLabelBonus    = 5.0
	ecoLabelCap      = 15.0
	fairTradeBonus   = 25.0
	localBonus       = 25.0
	socialLabelBonus = 10.0
	socialLabelCap   = 20.0
	healthLabelBonus = 5.0
	healthLabelCap   = 15.0
	allergenPenalty  = 10.0
)

var ecoLabels = []string{"organic", "eco", "sustainable", "recycled"}

var socialLabels = []string{"fair trade", "local", "artisan", "cooperative", "ethical"}

var healthLabels = []string{"organic", "whole grain", "low fat", "no sugar", "vegan", "vegetarian"}
