// Package metrics exposes Prometheus instruments for computed scores.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MikeSquared-Agency/Validator/internal/scoring"
)

const namespace = "validator"

// Recorder counts scoring outcomes. Observe is shaped to be passed to
// scoring.WithObserver.
type Recorder struct {
	scores       *prometheus.CounterVec
	overallScore prometheus.Histogram
	factors      *prometheus.CounterVec
}

// NewRecorder registers the validator collectors on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		scores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scores_total",
			Help:      "Scores computed, by verdict.",
		}, []string{"verdict"}),
		overallScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "overall_score",
			Help:      "Distribution of overall scores.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		factors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "factors_total",
			Help:      "Normalized factors, by kind and status.",
		}, []string{"kind", "status"}),
	}
	reg.MustRegister(r.scores, r.overallScore, r.factors)
	return r
}

func (r *Recorder) Observe(res scoring.ScoringResult) {
	r.scores.WithLabelValues(string(res.Verdict)).Inc()
	r.overallScore.Observe(float64(res.OverallScore))
	for _, f := range res.MarketFactors {
		r.factors.WithLabelValues("market", string(f.Status)).Inc()
	}
	for _, f := range res.ExecutionFactors {
		r.factors.WithLabelValues("execution", string(f.Status)).Inc()
	}
}
