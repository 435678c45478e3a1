package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Validator/internal/scoring"
)

func TestRecorderObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	res := scoring.ComputeScore(
		scoring.RawDimensions{"problemClarity": 90},
		[]scoring.RawFactor{{"name": "A", "score": 8}, {"name": "B", "score": 2}},
		[]scoring.RawFactor{{"name": "C", "score": 5}},
		0,
	)
	rec.Observe(res)
	rec.Observe(res)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.scores.WithLabelValues(string(res.Verdict))))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.factors.WithLabelValues("market", "strong")))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.factors.WithLabelValues("market", "weak")))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.factors.WithLabelValues("execution", "moderate")))
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.factors.WithLabelValues("execution", "strong")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "validator_overall_score")
	assert.Contains(t, names, "validator_scores_total")
}

func TestRecorderAsScorerObserver(t *testing.T) {
	rec := NewRecorder(prometheus.NewRegistry())
	s := scoring.NewScorer(nil, scoring.WithObserver(rec.Observe))

	dims := scoring.RawDimensions{}
	for _, k := range scoring.DimensionKeys() {
		dims[k] = 100
	}
	s.Score(scoring.Input{Dimensions: dims})

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.scores.WithLabelValues("go")))
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.scores.WithLabelValues("no_go")))
}
