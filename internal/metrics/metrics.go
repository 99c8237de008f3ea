// Package metrics exposes Prometheus collectors for ranking runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/spigell/resume-ranker/internal/extract"
	"github.com/spigell/resume-ranker/internal/validation"
)

const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeDocumentError   = "document_error"
	OutcomeError           = "error"
)

type Recorder struct {
	Runs          *prometheus.CounterVec
	RunDuration   prometheus.Histogram
	ResumesRanked prometheus.Counter
	ResumeScore   prometheus.Histogram
}

// NewRecorder registers the ranking collectors with reg. Passing nil uses
// the default Prometheus registerer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		Runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_ranker_runs_total",
				Help: "Total number of ranking runs by outcome",
			},
			[]string{"outcome"},
		),
		RunDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "resume_ranker_run_duration_seconds",
				Help:    "Duration of ranking runs in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		ResumesRanked: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "resume_ranker_resumes_ranked_total",
				Help: "Total number of resumes that received a score",
			},
		),
		ResumeScore: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "resume_ranker_resume_score",
				Help:    "Distribution of resume scores on the 0-100 scale",
				Buckets: prometheus.LinearBuckets(10, 10, 10),
			},
		),
	}
}

// Outcome classifies the error returned by a ranking run.
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	if _, ok := validation.As(err); ok {
		return OutcomeValidationError
	}
	if _, ok := extract.AsDocumentError(err); ok {
		return OutcomeDocumentError
	}
	return OutcomeError
}

// ObserveRun records one finished run. Scores are only observed on success.
func (r *Recorder) ObserveRun(elapsed time.Duration, scores []float64, err error) {
	if r == nil {
		return
	}

	r.Runs.WithLabelValues(Outcome(err)).Inc()
	r.RunDuration.Observe(elapsed.Seconds())

	if err != nil {
		return
	}

	r.ResumesRanked.Add(float64(len(scores)))
	for _, score := range scores {
		r.ResumeScore.Observe(score)
	}
}
