package grid

import (
	"math"

	"github.com/pdrpinto/graphsearch"
)

// GoalLister is implemented by problems that can enumerate their goals.
type GoalLister interface {
	Goals() []Point
}

// Manhattan estimates the L1 distance to the nearest goal. It is admissible
// for unit step costs. Problems that do not list goals are estimated at zero.
func Manhattan(state Point, problem graphsearch.Problem[Point, Direction]) float64 {
	return nearestGoal(state, problem, func(a, b Point) float64 {
		return math.Abs(float64(a.X-b.X)) + math.Abs(float64(a.Y-b.Y))
	})
}

// Euclidean estimates the straight-line distance to the nearest goal.
func Euclidean(state Point, problem graphsearch.Problem[Point, Direction]) float64 {
	return nearestGoal(state, problem, func(a, b Point) float64 {
		return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
	})
}

func nearestGoal(state Point, problem graphsearch.Problem[Point, Direction], distance func(a, b Point) float64) float64 {
	lister, ok := problem.(GoalLister)
	if !ok {
		return 0
	}
	best := math.Inf(1)
	for _, goal := range lister.Goals() {
		best = min(best, distance(state, goal))
	}
	if math.IsInf(best, 1) {
		return 0
	}
	return best
}

// HeuristicByName resolves "manhattan", "euclidean" and "null".
func HeuristicByName(name string) (graphsearch.Heuristic[Point, Direction], bool) {
	switch name {
	case "manhattan", "":
		return Manhattan, true
	case "euclidean":
		return Euclidean, true
	case "null":
		return graphsearch.NullHeuristic[Point, Direction], true
	}
	return nil, false
}
