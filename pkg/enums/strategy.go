package enums

import "fmt"

// OptimizerStrategy selects the search algorithm behind the optimize call.
// The greedy strategy is deterministic and is the default; the genetic
// strategy requires an explicit random source.
type OptimizerStrategy string

const (
	OptimizerStrategyGreedy  OptimizerStrategy = "greedy"
	OptimizerStrategyGenetic OptimizerStrategy = "genetic"
)

var validOptimizerStrategies = []OptimizerStrategy{
	OptimizerStrategyGreedy,
	OptimizerStrategyGenetic,
}

// String implements fmt.Stringer.
func (s OptimizerStrategy) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OptimizerStrategy.
func (s OptimizerStrategy) IsValid() bool {
	for _, candidate := range validOptimizerStrategies {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOptimizerStrategy converts raw input into an OptimizerStrategy.
func ParseOptimizerStrategy(value string) (OptimizerStrategy, error) {
	for _, candidate := range validOptimizerStrategies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid optimizer strategy %q", value)
}
