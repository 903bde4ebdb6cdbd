package graphsearch

import (
	"context"
	"fmt"
	"strings"
)

// Strategy names one of the four built-in search configurations.
type Strategy string

const (
	DFS   Strategy = "dfs"
	BFS   Strategy = "bfs"
	UCS   Strategy = "ucs"
	AStar Strategy = "astar"
)

var strategyAliases = map[string]Strategy{
	"dfs":                DFS,
	"depthfirst":         DFS,
	"depthfirstsearch":   DFS,
	"bfs":                BFS,
	"breadthfirst":       BFS,
	"breadthfirstsearch": BFS,
	"ucs":                UCS,
	"uniformcost":        UCS,
	"uniformcostsearch":  UCS,
	"astar":              AStar,
	"a*":                 AStar,
	"astarsearch":        AStar,
}

// Strategies lists the built-in strategies in a stable order.
func Strategies() []Strategy {
	return []Strategy{DFS, BFS, UCS, AStar}
}

// ParseStrategy resolves a strategy name. Matching ignores case, hyphens,
// underscores and spaces, so "breadth-first" and "breadthFirstSearch" both
// resolve to BFS.
func ParseStrategy(name string) (Strategy, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	if strategy, ok := strategyAliases[key]; ok {
		return strategy, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Informed reports whether the strategy consults a heuristic.
func (strategy Strategy) Informed() bool { return strategy == AStar }

func (strategy Strategy) String() string { return string(strategy) }

// Configure returns a fresh frontier and the priority function for strategy.
// The heuristic is only used by AStar.
func Configure[StateType comparable, ActionType comparable](
	strategy Strategy,
	problem Problem[StateType, ActionType],
	heuristic Heuristic[StateType, ActionType],
) (Frontier[StateType, ActionType], PriorityFunc[StateType, ActionType], error) {
	switch strategy {
	case DFS:
		return NewStackFrontier[StateType, ActionType](), ConstantPriority[StateType, ActionType], nil
	case BFS:
		return NewQueueFrontier[StateType, ActionType](), ConstantPriority[StateType, ActionType], nil
	case UCS:
		return NewPriorityFrontier[StateType, ActionType](), CostPriority[StateType, ActionType], nil
	case AStar:
		return NewPriorityFrontier[StateType, ActionType](), HeuristicPriority(problem, heuristic), nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, string(strategy))
	}
}

// Run dispatches to the selector for strategy.
func Run[StateType comparable, ActionType comparable](
	contextObject context.Context,
	strategy Strategy,
	problem Problem[StateType, ActionType],
	heuristic Heuristic[StateType, ActionType],
	options ...Option,
) (Result[StateType, ActionType], error) {
	switch strategy {
	case DFS:
		return DepthFirstSearch(contextObject, problem, options...)
	case BFS:
		return BreadthFirstSearch(contextObject, problem, options...)
	case UCS:
		return UniformCostSearch(contextObject, problem, options...)
	case AStar:
		return AStarSearch(contextObject, problem, heuristic, options...)
	default:
		return Result[StateType, ActionType]{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, string(strategy))
	}
}
