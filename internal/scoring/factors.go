package scoring

// Factor score bounds and status thresholds (1–10 scale).
const (
	FactorScoreMin = 1.0
	FactorScoreMax = 10.0

	StrongThreshold   = 7.0
	ModerateThreshold = 4.0
)

// FactorStatus is the label derived from a factor's clamped score.
type FactorStatus string

const (
	StatusStrong   FactorStatus = "strong"
	StatusModerate FactorStatus = "moderate"
	StatusWeak     FactorStatus = "weak"
)

// RawFactor is a factor as produced upstream: name, score, description, any of which may be missing.
type RawFactor map[string]any

// Factor is a normalized qualitative item with its derived status.
type Factor struct {
	Name        string       `json:"name"`
	Score       float64      `json:"score"`
	Description string       `json:"description"`
	Status      FactorStatus `json:"status"`
}

// StatusFor maps a 1–10 factor score to its status band.
func StatusFor(score float64) FactorStatus {
	switch {
	case score >= StrongThreshold:
		return StatusStrong
	case score >= ModerateThreshold:
		return StatusModerate
	default:
		return StatusWeak
	}
}

// NormalizeFactor clamps the score to [1, 10] (default 1) and attaches its status.
func NormalizeFactor(raw RawFactor) Factor {
	score := numberField(raw, "score", FactorScoreMin, FactorScoreMin, FactorScoreMax)
	return Factor{
		Name:        stringField(raw, "name", ""),
		Score:       score,
		Description: stringField(raw, "description", ""),
		Status:      StatusFor(score),
	}
}

// normalizeFactors preserves order and length; the result is never nil.
func normalizeFactors(raws []RawFactor) []Factor {
	out := make([]Factor, 0, len(raws))
	for _, raw := range raws {
		out = append(out, NormalizeFactor(raw))
	}
	return out
}
