package graphsearch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/graphsearch"
)

func TestStepper_Outcomes(t *testing.T) {
	// Two entries for C reach the frontier; the second is skipped.
	problem := newWeightedGraph("A", "D").
		edge("A", "B", 1).
		edge("A", "C", 3).
		edge("B", "C", 1).
		edge("C", "D", 5)

	stepper := graphsearch.NewStepper[string, string](problem,
		graphsearch.NewPriorityFrontier[string, string](),
		graphsearch.CostPriority[string, string])

	var outcomes []graphsearch.StepOutcome
	var currents []string
	for !stepper.Done() {
		snapshot, err := stepper.Step()
		require.NoError(t, err)
		outcomes = append(outcomes, snapshot.Outcome)
		currents = append(currents, snapshot.Current)
	}

	assert.Equal(t, []string{"A", "B", "C", "C", "D"}, currents)
	assert.Equal(t, []graphsearch.StepOutcome{
		graphsearch.StepExpanded,
		graphsearch.StepExpanded,
		graphsearch.StepExpanded,
		graphsearch.StepSkipped,
		graphsearch.StepGoal,
	}, outcomes)

	result := stepper.Result()
	assert.True(t, result.Found)
	assert.Equal(t, []string{"B", "C", "D"}, result.Actions)
	assert.Equal(t, 7.0, result.Cost)
	assert.Equal(t, []string{"A", "B", "C", "D"}, stepper.GoalNode().States())
	assert.Len(t, stepper.Visited(), 3)
}

func TestStepper_StepAfterDone(t *testing.T) {
	problem := newWeightedGraph("A", "B").edge("A", "B", 1)
	stepper := graphsearch.NewStepper[string, string](problem,
		graphsearch.NewQueueFrontier[string, string](), nil)

	first, err := stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, graphsearch.StepExpanded, first.Outcome)
	assert.Equal(t, []string{"B"}, pendingNodeStates(stepper.Pending()))

	goal, err := stepper.Step()
	require.NoError(t, err)
	require.True(t, goal.Done)
	assert.Equal(t, []string{"B"}, goal.Actions)

	again, err := stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, goal, again)
	assert.Equal(t, 2, stepper.Result().Steps)
}

func TestStepper_Exhausted(t *testing.T) {
	problem := newWeightedGraph("A", "Z").edge("A", "B", 1)
	stepper := graphsearch.NewStepper[string, string](problem,
		graphsearch.NewStackFrontier[string, string](), nil)

	var last graphsearch.StepSnapshot[string, string]
	for !stepper.Done() {
		snapshot, err := stepper.Step()
		require.NoError(t, err)
		last = snapshot
	}

	assert.Equal(t, graphsearch.StepExhausted, last.Outcome)
	assert.False(t, last.Found)
	assert.Equal(t, 2, last.VisitedCount)
	assert.Equal(t, 0, last.FrontierSize)
	assert.Equal(t, "exhausted", last.Outcome.String())
}

func pendingNodeStates(nodes []*graphsearch.Node[string, string]) []string {
	states := make([]string, 0, len(nodes))
	for _, n := range nodes {
		states = append(states, n.State)
	}
	return states
}

func TestStepper_ExpansionLimit(t *testing.T) {
	stepper := graphsearch.NewStepper[string, string](diamond(),
		graphsearch.NewPriorityFrontier[string, string](),
		graphsearch.CostPriority[string, string],
		graphsearch.WithMaxExpansions(1))

	first, err := stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, graphsearch.StepExpanded, first.Outcome)

	limited, err := stepper.Step()
	require.ErrorIs(t, err, graphsearch.ErrExpansionLimit)
	assert.Equal(t, graphsearch.StepLimited, limited.Outcome)
	assert.Equal(t, "limited", limited.Outcome.String())
	assert.Equal(t, "B", limited.Current)
	assert.True(t, limited.Done)
	assert.False(t, limited.Found)
	assert.Zero(t, limited.Inserted)
	assert.Equal(t, 1, limited.VisitedCount)
	assert.NotContains(t, stepper.Visited(), "B")
	assert.Equal(t, 1, stepper.Result().Expanded)
}

func TestStepOutcome_ZeroValue(t *testing.T) {
	var outcome graphsearch.StepOutcome
	assert.NotEqual(t, graphsearch.StepExpanded, outcome)
	assert.Equal(t, "StepOutcome(0)", outcome.String())
}
