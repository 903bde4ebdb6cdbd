package graphsearch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pdrpinto/graphsearch/internal/logging"
)

// Problem is the capability set a search domain provides.
// StateType and ActionType must be comparable so states can key the visited
// set and plans can be replayed against successors.
type Problem[StateType comparable, ActionType comparable] interface {
	StartState() StateType
	IsGoalState(state StateType) bool
	// Successors returns the transitions out of state, in a stable order.
	Successors(state StateType) []Successor[StateType, ActionType]
	// CostOfActions is independent cost accounting for a whole plan. The
	// engine never calls it; ValidatePlan does.
	CostOfActions(actions []ActionType) float64
}

// Successor is one transition offered by a state.
type Successor[StateType comparable, ActionType comparable] struct {
	State  StateType
	Action ActionType
	// Cost is expected to be non-negative. UCS and A* lose optimality otherwise.
	Cost float64
}

// Heuristic estimates the remaining cost from state to the nearest goal.
type Heuristic[StateType comparable, ActionType comparable] func(state StateType, problem Problem[StateType, ActionType]) float64

// NullHeuristic always estimates zero, which makes A* order nodes exactly as UCS does.
func NullHeuristic[StateType comparable, ActionType comparable](StateType, Problem[StateType, ActionType]) float64 {
	return 0
}

// PriorityFunc computes the frontier priority of a node at insertion time.
type PriorityFunc[StateType comparable, ActionType comparable] func(node *Node[StateType, ActionType]) float64

// ConstantPriority leaves ordering entirely to the frontier.
func ConstantPriority[StateType comparable, ActionType comparable](*Node[StateType, ActionType]) float64 {
	return 0
}

// CostPriority orders nodes by accumulated path cost.
func CostPriority[StateType comparable, ActionType comparable](node *Node[StateType, ActionType]) float64 {
	return node.Cost
}

// HeuristicPriority orders nodes by accumulated path cost plus heuristic(state).
func HeuristicPriority[StateType comparable, ActionType comparable](
	problem Problem[StateType, ActionType],
	heuristic Heuristic[StateType, ActionType],
) PriorityFunc[StateType, ActionType] {
	if heuristic == nil {
		heuristic = NullHeuristic[StateType, ActionType]
	}
	return func(node *Node[StateType, ActionType]) float64 {
		return node.Cost + heuristic(node.State, problem)
	}
}

// Result contains the outcome of a search
type Result[StateType comparable, ActionType comparable] struct {
	// Actions is the plan from the start state to Goal. It is empty, not nil,
	// when the start state is itself a goal.
	Actions []ActionType
	Cost    float64
	Goal    StateType
	Found   bool

	Expanded     int
	Generated    int
	Steps        int
	PeakFrontier int
}

// ExpandEvent describes one expansion for Hooks.OnExpand.
type ExpandEvent struct {
	Strategy     string
	Step         int
	Depth        int
	Cost         float64
	Successors   int
	FrontierSize int
}

// FinishEvent describes a completed search for Hooks.OnFinish.
type FinishEvent struct {
	Strategy     string
	Found        bool
	Err          error
	Cost         float64
	Expanded     int
	Generated    int
	Steps        int
	PeakFrontier int
	Duration     time.Duration
}

// Hooks are optional observability callbacks invoked synchronously by Search.
type Hooks struct {
	OnExpand func(ctx context.Context, event ExpandEvent)
	OnFinish func(ctx context.Context, event FinishEvent)
}

// Options defines parameters for the search.
type Options struct {
	Logger *slog.Logger
	Hooks  Hooks
	// MaxExpansions bounds the number of expanded states; zero means unbounded.
	MaxExpansions int
	StrategyName  string
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(options *Options) { options.Hooks = hooks }
}

// WithMaxExpansions stops the search with ErrExpansionLimit once limit
// states have been expanded and another expansion is due.
func WithMaxExpansions(limit int) Option {
	return func(options *Options) { options.MaxExpansions = limit }
}

// WithStrategyName labels logs, spans and hook events.
func WithStrategyName(name string) Option {
	return func(options *Options) { options.StrategyName = name }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{StrategyName: "custom"}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = logging.NewNop()
	}
	return searchOptions
}

// Search runs the graph search loop with the given frontier and priority
// function until a goal is extracted, the frontier empties, the expansion
// limit is hit or ctx is cancelled.
//
// An exhausted frontier returns ErrNoSolution alongside a Result whose Found
// is false and whose counters describe the exploration.
func Search[StateType comparable, ActionType comparable](
	contextObject context.Context,
	problem Problem[StateType, ActionType],
	frontier Frontier[StateType, ActionType],
	priority PriorityFunc[StateType, ActionType],
	options ...Option,
) (Result[StateType, ActionType], error) {
	searchOptions := applyOptions(options)
	logger := searchOptions.Logger.With(slog.String("strategy", searchOptions.StrategyName))

	contextObject, span := startSearchSpan(contextObject, searchOptions.StrategyName)
	startedAt := time.Now()

	stepper := NewStepper(problem, frontier, priority, options...)

	// --- Orchestrator loop ---
	var searchErr error
	for {
		if err := contextObject.Err(); err != nil {
			searchErr = err
			break
		}

		snapshot, err := stepper.Step()
		if err != nil {
			searchErr = err
			break
		}

		if snapshot.Outcome == StepExpanded && searchOptions.Hooks.OnExpand != nil {
			searchOptions.Hooks.OnExpand(contextObject, ExpandEvent{
				Strategy:     searchOptions.StrategyName,
				Step:         snapshot.StepIndex,
				Depth:        snapshot.Depth,
				Cost:         snapshot.Cost,
				Successors:   snapshot.Inserted,
				FrontierSize: snapshot.FrontierSize,
			})
		}

		if snapshot.Done {
			if !snapshot.Found {
				searchErr = ErrNoSolution
			}
			break
		}
	}

	result := stepper.Result()
	duration := time.Since(startedAt)
	endSearchSpan(span, result, searchErr)

	if searchOptions.Hooks.OnFinish != nil {
		searchOptions.Hooks.OnFinish(contextObject, FinishEvent{
			Strategy:     searchOptions.StrategyName,
			Found:        result.Found,
			Err:          searchErr,
			Cost:         result.Cost,
			Expanded:     result.Expanded,
			Generated:    result.Generated,
			Steps:        result.Steps,
			PeakFrontier: result.PeakFrontier,
			Duration:     duration,
		})
	}

	attrs := []any{
		slog.Int("expanded", result.Expanded),
		slog.Int("generated", result.Generated),
		slog.Duration("duration", duration),
	}
	switch {
	case result.Found:
		logger.Info("search succeeded", append(attrs, slog.Int("actions", len(result.Actions)), slog.Float64("cost", result.Cost))...)
	case errors.Is(searchErr, ErrNoSolution):
		logger.Info("search exhausted frontier", attrs...)
	default:
		logger.Warn("search stopped", append(attrs, slog.Any("error", searchErr))...)
	}

	return result, searchErr
}

// DepthFirstSearch explores the deepest frontier node first.
func DepthFirstSearch[StateType comparable, ActionType comparable](
	contextObject context.Context,
	problem Problem[StateType, ActionType],
	options ...Option,
) (Result[StateType, ActionType], error) {
	return Search(contextObject, problem,
		NewStackFrontier[StateType, ActionType](),
		ConstantPriority[StateType, ActionType],
		named(DFS, options)...)
}

// BreadthFirstSearch explores the shallowest frontier node first.
func BreadthFirstSearch[StateType comparable, ActionType comparable](
	contextObject context.Context,
	problem Problem[StateType, ActionType],
	options ...Option,
) (Result[StateType, ActionType], error) {
	return Search(contextObject, problem,
		NewQueueFrontier[StateType, ActionType](),
		ConstantPriority[StateType, ActionType],
		named(BFS, options)...)
}

// UniformCostSearch explores the frontier node of least accumulated cost first.
func UniformCostSearch[StateType comparable, ActionType comparable](
	contextObject context.Context,
	problem Problem[StateType, ActionType],
	options ...Option,
) (Result[StateType, ActionType], error) {
	return Search(contextObject, problem,
		NewPriorityFrontier[StateType, ActionType](),
		CostPriority[StateType, ActionType],
		named(UCS, options)...)
}

// AStarSearch explores the frontier node of least cost plus heuristic first.
// A nil heuristic is NullHeuristic.
func AStarSearch[StateType comparable, ActionType comparable](
	contextObject context.Context,
	problem Problem[StateType, ActionType],
	heuristic Heuristic[StateType, ActionType],
	options ...Option,
) (Result[StateType, ActionType], error) {
	return Search(contextObject, problem,
		NewPriorityFrontier[StateType, ActionType](),
		HeuristicPriority(problem, heuristic),
		named(AStar, options)...)
}

// named prepends the strategy label so a caller's WithStrategyName still wins.
func named(strategy Strategy, options []Option) []Option {
	return append([]Option{WithStrategyName(string(strategy))}, options...)
}
