package scoring

import "fmt"

// Dimension keys, in matrix order.
const (
	ProblemClarity   = "problemClarity"
	SolutionStrength = "solutionStrength"
	MarketSize       = "marketSize"
	Competition      = "competition"
	BusinessModel    = "businessModel"
	TeamFit          = "teamFit"
	Timing           = "timing"
)

// Dimension is one weighted axis of assessment. Weight is in percentage points.
type Dimension struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// dimensionTable is the single source of truth for weights and display names.
// It is only reachable through the copying accessors below.
var dimensionTable = [...]Dimension{
	{Key: ProblemClarity, Name: "Problem Clarity", Weight: 15},
	{Key: SolutionStrength, Name: "Solution Strength", Weight: 15},
	{Key: MarketSize, Name: "Market Size", Weight: 15},
	{Key: Competition, Name: "Competition", Weight: 10},
	{Key: BusinessModel, Name: "Business Model", Weight: 15},
	{Key: TeamFit, Name: "Team Fit", Weight: 15},
	{Key: Timing, Name: "Timing", Weight: 15},
}

func init() {
	if err := validateDimensions(dimensionTable[:]); err != nil {
		panic(err)
	}
}

// Dimensions returns a copy of the fixed dimension table in matrix order.
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimensionTable))
	copy(out, dimensionTable[:])
	return out
}

// DimensionKeys returns the dimension keys in matrix order.
func DimensionKeys() []string {
	keys := make([]string, len(dimensionTable))
	for i, d := range dimensionTable {
		keys[i] = d.Key
	}
	return keys
}

// LookupDimension returns the dimension registered under key.
func LookupDimension(key string) (Dimension, bool) {
	for _, d := range dimensionTable {
		if d.Key == key {
			return d, true
		}
	}
	return Dimension{}, false
}

// TotalWeight returns the sum of all dimension weights.
func TotalWeight() int {
	return sumWeights(dimensionTable[:])
}

func sumWeights(dims []Dimension) int {
	var total int
	for _, d := range dims {
		total += d.Weight
	}
	return total
}

// validateDimensions checks that weights sum to 100, none are negative and keys are unique.
func validateDimensions(dims []Dimension) error {
	if total := sumWeights(dims); total != 100 {
		return fmt.Errorf("dimension weights sum to %d, must sum to 100", total)
	}
	seen := make(map[string]bool, len(dims))
	for _, d := range dims {
		if d.Weight < 0 {
			return fmt.Errorf("negative weight for %s: %d", d.Key, d.Weight)
		}
		if seen[d.Key] {
			return fmt.Errorf("duplicate dimension key: %s", d.Key)
		}
		seen[d.Key] = true
	}
	return nil
}
