package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/graphsearch"
	"github.com/pdrpinto/graphsearch/problems/graph"
)

func TestRecorder(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder, err := NewRecorder(registry)
	require.NoError(t, err)

	g, err := graph.New("A", []string{"D"},
		graph.Edge{From: "A", To: "B", Cost: 1},
		graph.Edge{From: "A", To: "C", Cost: 5},
		graph.Edge{From: "B", To: "D", Cost: 1},
	)
	require.NoError(t, err)
	unreachable, err := graph.New("A", []string{"Z"}, graph.Edge{From: "A", To: "B", Cost: 1})
	require.NoError(t, err)

	ctx := context.Background()
	hooks := graphsearch.WithHooks(recorder.Hooks())

	result, err := graphsearch.UniformCostSearch[string, string](ctx, g, hooks)
	require.NoError(t, err)
	_, err = graphsearch.UniformCostSearch[string, string](ctx, unreachable, hooks)
	require.ErrorIs(t, err, graphsearch.ErrNoSolution)

	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.searches.WithLabelValues("ucs", OutcomeFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.searches.WithLabelValues("ucs", OutcomeNoSolution)))
	assert.Equal(t, float64(result.Expanded+2), testutil.ToFloat64(recorder.expansions.WithLabelValues("ucs")))
	assert.Equal(t, 1, testutil.CollectAndCount(recorder.duration))

	_, err = NewRecorder(registry)
	assert.Error(t, err, "registering twice must fail")
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		event graphsearch.FinishEvent
		want  string
	}{
		{graphsearch.FinishEvent{Found: true}, OutcomeFound},
		{graphsearch.FinishEvent{Err: graphsearch.ErrNoSolution}, OutcomeNoSolution},
		{graphsearch.FinishEvent{Err: graphsearch.ErrExpansionLimit}, OutcomeLimited},
		{graphsearch.FinishEvent{Err: context.DeadlineExceeded}, OutcomeCancelled},
		{graphsearch.FinishEvent{Err: graphsearch.ErrEmptyFrontier}, OutcomeError},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.event))
		})
	}
}
