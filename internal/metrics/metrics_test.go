package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-ranker/internal/extract"
	"github.com/spigell/resume-ranker/internal/validation"
)

func TestOutcome(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: OutcomeSuccess},
		{name: "validation", err: validation.EmptyJobDescription(), want: OutcomeValidationError},
		{name: "wrapped validation", err: fmt.Errorf("rank: %w", validation.TooManyFiles(11, 10)), want: OutcomeValidationError},
		{name: "document", err: &extract.DocumentError{Name: "a.pdf", Err: errors.New("bad")}, want: OutcomeDocumentError},
		{name: "other", err: errors.New("boom"), want: OutcomeError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Outcome(tc.err))
		})
	}
}

func TestObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	recorder := NewRecorder(reg)

	recorder.ObserveRun(150*time.Millisecond, []float64{52.36, 11.14}, nil)
	recorder.ObserveRun(time.Millisecond, nil, validation.EmptyJobDescription())

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := make(map[string]int)
	for i, mf := range families {
		byName[mf.GetName()] = i
	}

	runs := families[byName["resume_ranker_runs_total"]]
	outcomes := make(map[string]float64)
	for _, m := range runs.GetMetric() {
		outcomes[m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{OutcomeSuccess: 1, OutcomeValidationError: 1}, outcomes)

	ranked := families[byName["resume_ranker_resumes_ranked_total"]]
	assert.Equal(t, 2.0, ranked.GetMetric()[0].GetCounter().GetValue())

	duration := families[byName["resume_ranker_run_duration_seconds"]]
	assert.Equal(t, uint64(2), duration.GetMetric()[0].GetHistogram().GetSampleCount())

	scores := families[byName["resume_ranker_resume_score"]]
	assert.Equal(t, uint64(2), scores.GetMetric()[0].GetHistogram().GetSampleCount())
	assert.InDelta(t, 63.5, scores.GetMetric()[0].GetHistogram().GetSampleSum(), 1e-9)
}

func TestObserveRunNilRecorder(t *testing.T) {
	var recorder *Recorder
	recorder.ObserveRun(time.Second, []float64{1}, nil)
}
