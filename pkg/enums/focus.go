package enums

import "fmt"

// OptimizationFocus selects the objective the optimizer maximizes when
// choosing a concrete product variant per shopping list item.
type OptimizationFocus string

const (
	OptimizationFocusPrice          OptimizationFocus = "price"
	OptimizationFocusSustainability OptimizationFocus = "sustainability"
	OptimizationFocusHealth         OptimizationFocus = "health"
	OptimizationFocusBalanced       OptimizationFocus = "balanced"
)

var validOptimizationFocuses = []OptimizationFocus{
	OptimizationFocusPrice,
	OptimizationFocusSustainability,
	OptimizationFocusHealth,
	OptimizationFocusBalanced,
}

// String implements fmt.Stringer.
func (f OptimizationFocus) String() string {
	return string(f)
}

// IsValid reports whether the value is a known OptimizationFocus.
func (f OptimizationFocus) IsValid() bool {
	for _, candidate := range validOptimizationFocuses {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseOptimizationFocus converts raw input into an OptimizationFocus.
func ParseOptimizationFocus(value string) (OptimizationFocus, error) {
	for _, candidate := range validOptimizationFocuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid optimization focus %q", value)
}
