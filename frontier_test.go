package graphsearch_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/graphsearch"
)

func node(state string) *graphsearch.Node[string, string] {
	return &graphsearch.Node[string, string]{State: state}
}

func drain(t *testing.T, frontier graphsearch.Frontier[string, string]) []string {
	t.Helper()
	var states []string
	for !frontier.IsEmpty() {
		n, err := frontier.ExtractNext()
		require.NoError(t, err)
		states = append(states, n.State)
	}
	return states
}

func pendingStates(frontier graphsearch.Frontier[string, string]) []string {
	var states []string
	for _, n := range frontier.Pending() {
		states = append(states, n.State)
	}
	return states
}

func TestFrontier_Order(t *testing.T) {
	tests := []struct {
		name     string
		frontier graphsearch.Frontier[string, string]
		want     []string
	}{
		{"stack", graphsearch.NewStackFrontier[string, string](), []string{"d", "c", "b", "a"}},
		{"queue", graphsearch.NewQueueFrontier[string, string](), []string{"a", "b", "c", "d"}},
		// priorities below: a=3, b=1, c=2, d=1
		{"priority", graphsearch.NewPriorityFrontier[string, string](), []string{"b", "d", "c", "a"}},
	}

	priorities := map[string]float64{"a": 3, "b": 1, "c": 2, "d": 1}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, state := range []string{"a", "b", "c", "d"} {
				tt.frontier.Insert(node(state), priorities[state])
			}
			assert.Equal(t, 4, tt.frontier.Len())
			assert.Equal(t, tt.want, pendingStates(tt.frontier))
			assert.Equal(t, tt.want, drain(t, tt.frontier))
			assert.Equal(t, 0, tt.frontier.Len())
		})
	}
}

func TestFrontier_EmptyExtract(t *testing.T) {
	for name, frontier := range map[string]graphsearch.Frontier[string, string]{
		"stack":    graphsearch.NewStackFrontier[string, string](),
		"queue":    graphsearch.NewQueueFrontier[string, string](),
		"priority": graphsearch.NewPriorityFrontier[string, string](),
	} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, frontier.IsEmpty())
			_, err := frontier.ExtractNext()
			assert.ErrorIs(t, err, graphsearch.ErrEmptyFrontier)
			assert.Empty(t, frontier.Pending())
		})
	}
}

func TestPriorityFrontier_StableTies(t *testing.T) {
	frontier := graphsearch.NewPriorityFrontier[string, string]()
	var want []string
	for i := 0; i < 50; i++ {
		state := fmt.Sprintf("s%02d", i)
		want = append(want, state)
		frontier.Insert(node(state), 7)
	}
	assert.Equal(t, want, drain(t, frontier))
}

func TestPriorityFrontier_DuplicateStates(t *testing.T) {
	frontier := graphsearch.NewPriorityFrontier[string, string]()
	frontier.Insert(&graphsearch.Node[string, string]{State: "x", Cost: 5}, 5)
	frontier.Insert(&graphsearch.Node[string, string]{State: "y", Cost: 3}, 3)
	frontier.Insert(&graphsearch.Node[string, string]{State: "x", Cost: 2}, 2)

	require.Equal(t, 3, frontier.Len())
	first, err := frontier.ExtractNext()
	require.NoError(t, err)
	assert.Equal(t, "x", first.State)
	assert.Equal(t, 2.0, first.Cost)
	assert.Equal(t, []string{"y", "x"}, drain(t, frontier))
}

func TestQueueFrontier_InterleavedLongRun(t *testing.T) {
	frontier := graphsearch.NewQueueFrontier[string, string]()
	next := 0
	var extracted []string
	for round := 0; round < 300; round++ {
		frontier.Insert(node(fmt.Sprint(next)), 0)
		next++
		frontier.Insert(node(fmt.Sprint(next)), 0)
		next++
		n, err := frontier.ExtractNext()
		require.NoError(t, err)
		extracted = append(extracted, n.State)
	}
	extracted = append(extracted, drain(t, frontier)...)

	require.Len(t, extracted, next)
	for i, state := range extracted {
		assert.Equal(t, fmt.Sprint(i), state)
	}
}

func TestNode_Paths(t *testing.T) {
	start := &graphsearch.Node[string, string]{State: "A"}
	b := &graphsearch.Node[string, string]{State: "B", Action: "go-b", Cost: 1, Depth: 1, Parent: start}
	d := &graphsearch.Node[string, string]{State: "D", Action: "go-d", Cost: 2, Depth: 2, Parent: b}

	assert.Equal(t, []string{"go-b", "go-d"}, d.Actions())
	assert.Equal(t, []string{"A", "B", "D"}, d.States())
	assert.Equal(t, []string{}, start.Actions())
	assert.Equal(t, []string{"A"}, start.States())
}
