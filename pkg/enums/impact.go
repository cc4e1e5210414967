package enums

import "fmt"

// ImpactLevel grades the environmental impact of a selected product.
type ImpactLevel string

const (
	ImpactLevelLow    ImpactLevel = "low"
	ImpactLevelMedium ImpactLevel = "medium"
	ImpactLevelHigh   ImpactLevel = "high"
)

var validImpactLevels = []ImpactLevel{
	ImpactLevelLow,
	ImpactLevelMedium,
	ImpactLevelHigh,
}

// String implements fmt.Stringer.
func (i ImpactLevel) String() string {
	return string(i)
}

// IsValid reports whether the value is a known ImpactLevel.
func (i ImpactLevel) IsValid() bool {
	for _, candidate := range validImpactLevels {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseImpactLevel converts raw input into an ImpactLevel.
func ParseImpactLevel(value string) (ImpactLevel, error) {
	for _, candidate := range validImpactLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid impact level %q", value)
}
