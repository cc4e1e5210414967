package enums

import "fmt"

// SubstitutionType classifies how a suggested product relates to the original.
type SubstitutionType string

const (
	SubstitutionTypeSameProductDifferentBrand SubstitutionType = "same_product_different_brand"
	SubstitutionTypeSimilarCategory           SubstitutionType = "similar_category"
	SubstitutionTypeHealthierAlternative      SubstitutionType = "healthier_alternative"
)

var validSubstitutionTypes = []SubstitutionType{
	SubstitutionTypeSameProductDifferentBrand,
	SubstitutionTypeSimilarCategory,
	SubstitutionTypeHealthierAlternative,
}

// String implements fmt.Stringer.
func (t SubstitutionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known SubstitutionType.
func (t SubstitutionType) IsValid() bool {
	for _, candidate := range validSubstitutionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseSubstitutionType converts raw input into a SubstitutionType.
func ParseSubstitutionType(value string) (SubstitutionType, error) {
	for _, candidate := range validSubstitutionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid substitution type %q", value)
}

// ConfidenceLevel labels how reliable a substitution suggestion is.
type ConfidenceLevel string

const (
	ConfidenceLevelHigh   ConfidenceLevel = "high"
	ConfidenceLevelMedium ConfidenceLevel = "medium"
	ConfidenceLevelLow    ConfidenceLevel = "low"
)

var validConfidenceLevels = []ConfidenceLevel{
	ConfidenceLevelHigh,
	ConfidenceLevelMedium,
	ConfidenceLevelLow,
}

// String implements fmt.Stringer.
func (c ConfidenceLevel) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ConfidenceLevel.
func (c ConfidenceLevel) IsValid() bool {
	for _, candidate := range validConfidenceLevels {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseConfidenceLevel converts raw input into a ConfidenceLevel.
func ParseConfidenceLevel(value string) (ConfidenceLevel, error) {
	for _, candidate := range validConfidenceLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid confidence level %q", value)
}
