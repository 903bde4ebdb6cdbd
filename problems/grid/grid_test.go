package grid

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/graphsearch"
)

// Two corridors join P to the goal: along the top then down the east
// side, or down the west side then along the bottom.
const twoCorridors = `
%%%%%%%
%P    %
% %%% %
%    .%
%%%%%%%
`

func TestParse(t *testing.T) {
	m, err := Parse(twoCorridors)
	require.NoError(t, err)

	assert.Equal(t, 7, m.Width())
	assert.Equal(t, 5, m.Height())
	assert.Equal(t, Point{X: 1, Y: 1}, m.Start())
	assert.Equal(t, []Point{{X: 5, Y: 3}}, m.Goals())
	assert.True(t, m.Open(Point{X: 1, Y: 2}))
	assert.False(t, m.Open(Point{X: 2, Y: 2}))
	assert.False(t, m.Open(Point{X: -1, Y: 0}))
	assert.Len(t, m.Walls(), 7*2+3*2+3)
	assert.Equal(t, twoCorridors[1:], m.String())
}

func TestParse_MultiByteCells(t *testing.T) {
	// '·' is two bytes but one open cell.
	m, err := Parse("%%%%%\n%·P.%\n%%%%%")
	require.NoError(t, err)

	assert.Equal(t, 5, m.Width())
	assert.Equal(t, Point{X: 2, Y: 1}, m.Start())
	assert.Equal(t, []Point{{X: 3, Y: 1}}, m.Goals())
	assert.True(t, m.Open(Point{X: 1, Y: 1}))
	assert.Len(t, m.Walls(), 5*2+2)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":       "\n\n",
		"no start":    "%%%\n% .\n%%%",
		"two starts":  "PP.",
		"no goal":     "P  ",
		"walled goal": "P%",
	}
	for name, layout := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(layout)
			assert.ErrorIs(t, err, ErrInvalidLayout)
		})
	}
}

func TestMaze_Successors(t *testing.T) {
	m, err := Parse(twoCorridors)
	require.NoError(t, err)

	successors := m.Successors(Point{X: 1, Y: 1})
	require.Len(t, successors, 2)
	assert.Equal(t, South, successors[0].Action)
	assert.Equal(t, Point{X: 1, Y: 2}, successors[0].State)
	assert.Equal(t, East, successors[1].Action)
	assert.Equal(t, 1.0, successors[1].Cost)
}

func TestMaze_Strategies(t *testing.T) {
	m, err := Parse(twoCorridors)
	require.NoError(t, err)
	ctx := context.Background()

	bfs, err := graphsearch.BreadthFirstSearch[Point, Direction](ctx, m)
	require.NoError(t, err)
	ucs, err := graphsearch.UniformCostSearch[Point, Direction](ctx, m)
	require.NoError(t, err)
	astar, err := graphsearch.AStarSearch(ctx, m, Manhattan)
	require.NoError(t, err)
	dfs, err := graphsearch.DepthFirstSearch[Point, Direction](ctx, m)
	require.NoError(t, err)

	for name, result := range map[string]graphsearch.Result[Point, Direction]{
		"bfs": bfs, "ucs": ucs, "astar": astar, "dfs": dfs,
	} {
		t.Run(name, func(t *testing.T) {
			report, err := graphsearch.ValidatePlan[Point, Direction](m, result.Actions)
			require.NoError(t, err)
			assert.Equal(t, Point{X: 5, Y: 3}, report.Final())
			assert.Equal(t, report.StepCost, m.CostOfActions(result.Actions))
		})
	}

	assert.Len(t, bfs.Actions, 6)
	assert.Equal(t, 6.0, ucs.Cost)
	assert.Equal(t, 6.0, astar.Cost)
	assert.LessOrEqual(t, astar.Expanded, ucs.Expanded)
}

func TestMaze_CostFunctions(t *testing.T) {
	ctx := context.Background()

	east, err := Parse(twoCorridors, WithCostFunc(StayEastCost))
	require.NoError(t, err)
	result, err := graphsearch.UniformCostSearch[Point, Direction](ctx, east)
	require.NoError(t, err)
	assert.Equal(t, []Direction{East, East, East, East, South, South}, result.Actions)
	assert.InDelta(t, 0.53125, result.Cost, 1e-9)

	west, err := Parse(twoCorridors, WithCostFunc(StayWestCost))
	require.NoError(t, err)
	result, err = graphsearch.UniformCostSearch[Point, Direction](ctx, west)
	require.NoError(t, err)
	assert.Equal(t, []Direction{South, South, East, East, East, East}, result.Actions)
	assert.InDelta(t, 64.0, result.Cost, 1e-9)
}

func TestMaze_CostOfActions(t *testing.T) {
	m, err := Parse(twoCorridors)
	require.NoError(t, err)

	assert.Equal(t, 0.0, m.CostOfActions(nil))
	assert.Equal(t, 2.0, m.CostOfActions([]Direction{East, East}))
	assert.True(t, math.IsInf(m.CostOfActions([]Direction{North}), 1))
	assert.True(t, math.IsInf(m.CostOfActions([]Direction{"Up"}), 1))
}

func TestHeuristics(t *testing.T) {
	m, err := Parse(twoCorridors)
	require.NoError(t, err)
	start := m.Start()

	assert.Equal(t, 6.0, Manhattan(start, m))
	assert.InDelta(t, math.Sqrt(20), Euclidean(start, m), 1e-9)
	assert.Equal(t, 0.0, Manhattan(m.Goals()[0], m))

	opaque := struct {
		graphsearch.Problem[Point, Direction]
	}{m}
	assert.Equal(t, 0.0, Manhattan(start, opaque))

	for _, name := range []string{"manhattan", "euclidean", "null", ""} {
		h, ok := HeuristicByName(name)
		assert.True(t, ok, name)
		assert.NotNil(t, h)
	}
	_, ok := HeuristicByName("chebyshev")
	assert.False(t, ok)
}

func TestRender(t *testing.T) {
	m, err := Parse(twoCorridors)
	require.NoError(t, err)

	path := m.Trace([]Direction{East, East, East, East, South, South})
	assert.Len(t, path, 7)

	want := "" +
		"%%%%%%%\n" +
		"%P****%\n" +
		"% %%%*%\n" +
		"%    .%\n" +
		"%%%%%%%\n"
	assert.Equal(t, want, m.Render(path))

	assert.Len(t, m.Trace([]Direction{West, East}), 1, "trace stops at the first illegal move")
}

func TestRandom(t *testing.T) {
	options := DefaultRandomOptions()
	options.Seed = 42

	first, err := Random(options)
	require.NoError(t, err)
	second, err := Random(options)
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
	assert.NotEqual(t, first.Start(), first.Goals()[0])
	assert.True(t, first.Open(first.Start()))

	_, err = Random(RandomOptions{Width: 1, Height: 1, Seed: 1})
	assert.ErrorIs(t, err, ErrInvalidLayout)
}
