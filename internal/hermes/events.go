package hermes

import "time"

type ScoreComputedEvent struct {
	ScoreID            string    `json:"score_id"`
	OverallScore       int       `json:"overall_score"`
	Verdict            string    `json:"verdict"`
	RawWeightedAverage float64   `json:"raw_weighted_average"`
	BiasCorrection     float64   `json:"bias_correction"`
	BiasSource         string    `json:"bias_source"`
	Shape              string    `json:"shape"`
	Timestamp          time.Time `json:"timestamp"`
}

type CalibrationUpdatedEvent struct {
	Name           string    `json:"name"`
	BiasCorrection float64   `json:"bias_correction"`
	Note           string    `json:"note,omitempty"`
	UpdatedBy      string    `json:"updated_by,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
