package scoring

import (
	"io"
	"log/slog"
	"math"
)

// Dimension score bounds.
const (
	DimensionScoreMin = 0.0
	DimensionScoreMax = 100.0
)

// RawDimensions maps dimension keys to upstream values of any shape.
type RawDimensions map[string]any

// Input is the canonical form handed to the engine.
type Input struct {
	Dimensions       RawDimensions
	MarketFactors    []RawFactor
	ExecutionFactors []RawFactor
	BiasCorrection   float64
}

// MatrixDimension is one display row of the scores matrix.
type MatrixDimension struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Weight int     `json:"weight"`
}

// ScoresMatrix is the display-oriented view of the dimensions.
type ScoresMatrix struct {
	Dimensions      []MatrixDimension `json:"dimensions"`
	OverallWeighted int               `json:"overall_weighted"`
}

// Metadata exposes intermediate values for audit.
type Metadata struct {
	RawWeightedAverage float64            `json:"raw_weighted_average"`
	BiasCorrection     float64            `json:"bias_correction"`
	ClampedDimensions  map[string]float64 `json:"clamped_dimensions"`
}

// ScoringResult is the complete, deterministic output of one computation.
type ScoringResult struct {
	OverallScore     int          `json:"overall_score"`
	Verdict          Verdict      `json:"verdict"`
	MarketFactors    []Factor     `json:"market_factors"`
	ExecutionFactors []Factor     `json:"execution_factors"`
	ScoresMatrix     ScoresMatrix `json:"scores_matrix"`
	Metadata         Metadata     `json:"metadata"`
}

// ComputeScore turns raw dimension and factor scores into a ScoringResult.
// It is total: malformed or missing fields fall back to their documented defaults.
func ComputeScore(rawDimensions RawDimensions, marketFactors, executionFactors []RawFactor, biasCorrection float64) ScoringResult {
	clamped := clampDimensions(rawDimensions)
	rawWeighted := weightedAverage(clamped)
	corrected := rawWeighted + biasCorrection

	// Clamp before rounding; math.Round breaks ties away from zero.
	overall := int(math.Round(clamp(corrected, DimensionScoreMin, DimensionScoreMax)))

	matrix := make([]MatrixDimension, 0, len(dimensionTable))
	for _, d := range dimensionTable {
		matrix = append(matrix, MatrixDimension{Name: d.Name, Score: clamped[d.Key], Weight: d.Weight})
	}

	return ScoringResult{
		OverallScore:     overall,
		Verdict:          VerdictFor(overall),
		MarketFactors:    normalizeFactors(marketFactors),
		ExecutionFactors: normalizeFactors(executionFactors),
		ScoresMatrix: ScoresMatrix{
			Dimensions:      matrix,
			OverallWeighted: overall,
		},
		Metadata: Metadata{
			RawWeightedAverage: math.Round(rawWeighted*100) / 100,
			BiasCorrection:     biasCorrection,
			ClampedDimensions:  clamped,
		},
	}
}

// ComputeInput is ComputeScore over the canonical Input.
func ComputeInput(in Input) ScoringResult {
	return ComputeScore(in.Dimensions, in.MarketFactors, in.ExecutionFactors, in.BiasCorrection)
}

// clampDimensions yields exactly one value per fixed dimension; absent keys read as 0.
func clampDimensions(raw RawDimensions) map[string]float64 {
	clamped := make(map[string]float64, len(dimensionTable))
	for _, d := range dimensionTable {
		clamped[d.Key] = numberField(raw, d.Key, DimensionScoreMin, DimensionScoreMin, DimensionScoreMax)
	}
	return clamped
}

// weightedAverage sums in table order. The float64 conversion rounds each
// product so the compiler cannot fuse it into the addition.
func weightedAverage(clamped map[string]float64) float64 {
	var total float64
	for _, d := range dimensionTable {
		total += float64(clamped[d.Key] * (float64(d.Weight) / 100))
	}
	return total
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithObserver registers a callback invoked with every computed result.
func WithObserver(fn func(ScoringResult)) Option {
	return func(s *Scorer) { s.observers = append(s.observers, fn) }
}

// Scorer wraps ComputeInput with logging and result observers.
type Scorer struct {
	logger    *slog.Logger
	observers []func(ScoringResult)
}

// NewScorer creates a Scorer. A nil logger discards output.
func NewScorer(logger *slog.Logger, opts ...Option) *Scorer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Scorer{logger: logger}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Score computes the result for in and notifies observers.
func (s *Scorer) Score(in Input) ScoringResult {
	result := ComputeInput(in)

	s.logger.Debug("score computed",
		"overall_score", result.OverallScore,
		"verdict", result.Verdict,
		"raw_weighted_average", result.Metadata.RawWeightedAverage,
		"bias_correction", in.BiasCorrection,
		"market_factors", len(result.MarketFactors),
		"execution_factors", len(result.ExecutionFactors),
	)

	for _, fn := range s.observers {
		fn(result)
	}
	return result
}
