package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/graphsearch"
	"github.com/pdrpinto/graphsearch/config"
	"github.com/pdrpinto/graphsearch/problems/graph"
	"github.com/pdrpinto/graphsearch/problems/grid"
)

var (
	errNoProblem       = errors.New("no problem file: pass one as an argument or set problem.path")
	errUnusedHeuristic = errors.New("heuristic given for an uninformed strategy")
)

// searchFlags override the problem and search settings of the config file.
type searchFlags struct {
	kind          string
	cost          string
	strategy      string
	heuristic     string
	maxExpansions int
}

func (f *searchFlags) register(cmd *cobra.Command, withStrategy bool) {
	flags := cmd.Flags()
	flags.StringVar(&f.kind, "kind", "", "problem kind: grid or graph (default from file extension or config)")
	flags.StringVar(&f.cost, "cost", "", "grid step cost: unit, stay-east or stay-west")
	flags.StringVar(&f.heuristic, "heuristic", "", "grid heuristic: manhattan, euclidean or null")
	flags.IntVar(&f.maxExpansions, "max-expansions", -1, "stop after this many expansions (0 for unbounded)")
	if withStrategy {
		flags.StringVarP(&f.strategy, "strategy", "s", "", "search strategy: dfs, bfs, ucs or astar")
	}
}

func (a *app) strategy(f *searchFlags) (graphsearch.Strategy, error) {
	name := a.cfg.Strategy
	if f.strategy != "" {
		name = f.strategy
	}
	strategy, err := graphsearch.ParseStrategy(name)
	if err != nil {
		return "", err
	}
	if f.heuristic != "" && !strategy.Informed() {
		return "", fmt.Errorf("%w: %s", errUnusedHeuristic, strategy)
	}
	return strategy, nil
}

func (a *app) searchOptions(f *searchFlags, extra ...graphsearch.Option) []graphsearch.Option {
	limit := a.cfg.MaxExpansions
	if f.maxExpansions >= 0 {
		limit = f.maxExpansions
	}
	return append([]graphsearch.Option{
		graphsearch.WithLogger(a.logger),
		graphsearch.WithMaxExpansions(limit),
	}, extra...)
}

// loadRunner loads the problem named by args or the config file. A .yaml or
// .yml file is a graph unless --kind says otherwise.
func (a *app) loadRunner(f *searchFlags, args []string) (runner, error) {
	path := a.cfg.Problem.Path
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, errNoProblem
	}

	kind := f.kind
	if kind == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			kind = config.KindGraph
		default:
			kind = a.cfg.Problem.Kind
		}
	}
	heuristicName := a.cfg.Heuristic
	if f.heuristic != "" {
		heuristicName = f.heuristic
	}

	switch kind {
	case config.KindGraph:
		g, err := graph.Load(path)
		if err != nil {
			return nil, err
		}
		heuristic := graphsearch.NullHeuristic[string, string]
		if g.HasHeuristic() && heuristicName != "null" {
			heuristic = g.TableHeuristic()
		}
		return &problemRunner[string, string]{problem: g, heuristic: heuristic}, nil

	case config.KindGrid:
		costName := a.cfg.Problem.Cost
		if f.cost != "" {
			costName = f.cost
		}
		cost, err := gridCost(costName)
		if err != nil {
			return nil, err
		}
		heuristic, ok := grid.HeuristicByName(heuristicName)
		if !ok {
			return nil, fmt.Errorf("unknown grid heuristic %q", heuristicName)
		}
		maze, err := grid.Load(path, grid.WithCostFunc(cost))
		if err != nil {
			return nil, err
		}
		return &problemRunner[grid.Point, grid.Direction]{
			problem:   maze,
			heuristic: heuristic,
			render: func(actions []grid.Direction) string {
				return maze.Render(maze.Trace(actions))
			},
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown problem kind %q", config.ErrInvalidConfig, kind)
	}
}

func gridCost(name string) (grid.CostFunc, error) {
	switch name {
	case "", "unit":
		return grid.UnitCost, nil
	case "stay-east":
		return grid.StayEastCost, nil
	case "stay-west":
		return grid.StayWestCost, nil
	}
	return nil, fmt.Errorf("%w: unknown grid cost %q", config.ErrInvalidConfig, name)
}

// summary is the printable outcome of one search.
type summary struct {
	Strategy     graphsearch.Strategy
	Found        bool
	Err          error
	Plan         []string
	Cost         float64
	Expanded     int
	Generated    int
	PeakFrontier int
	Duration     time.Duration

	// Set by solve when requested.
	Validated  bool
	ReplayCost float64
	Rendered   string
}

type solveRequest struct {
	validate bool
	render   bool
}

// runner hides the state and action types of a loaded problem.
type runner interface {
	solve(ctx context.Context, strategy graphsearch.Strategy, request solveRequest, options ...graphsearch.Option) (summary, error)
	trace(ctx context.Context, w io.Writer, strategy graphsearch.Strategy, maxSteps int, options ...graphsearch.Option) error
}

type problemRunner[StateType comparable, ActionType comparable] struct {
	problem   graphsearch.Problem[StateType, ActionType]
	heuristic graphsearch.Heuristic[StateType, ActionType]
	render    func(actions []ActionType) string
}

// solve runs one search. A search that ends without a plan is reported in
// summary.Err; the returned error is reserved for failed validation.
func (r *problemRunner[StateType, ActionType]) solve(
	ctx context.Context,
	strategy graphsearch.Strategy,
	request solveRequest,
	options ...graphsearch.Option,
) (summary, error) {
	startedAt := time.Now()
	result, err := graphsearch.Run(ctx, strategy, r.problem, r.heuristic, options...)
	s := summary{
		Strategy:     strategy,
		Found:        result.Found,
		Err:          err,
		Plan:         formatActions(result.Actions),
		Cost:         result.Cost,
		Expanded:     result.Expanded,
		Generated:    result.Generated,
		PeakFrontier: result.PeakFrontier,
		Duration:     time.Since(startedAt),
	}
	if !result.Found {
		return s, nil
	}

	if request.validate {
		report, err := graphsearch.ValidatePlan(r.problem, result.Actions)
		if err != nil {
			return s, fmt.Errorf("plan failed validation: %w", err)
		}
		s.Validated = true
		s.ReplayCost = report.ProblemCost
	}
	if request.render && r.render != nil {
		s.Rendered = r.render(result.Actions)
	}
	return s, nil
}

func (r *problemRunner[StateType, ActionType]) trace(
	ctx context.Context,
	w io.Writer,
	strategy graphsearch.Strategy,
	maxSteps int,
	options ...graphsearch.Option,
) error {
	frontier, priority, err := graphsearch.Configure(strategy, r.problem, r.heuristic)
	if err != nil {
		return err
	}
	stepper := graphsearch.NewStepper(r.problem, frontier, priority, options...)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if maxSteps > 0 && stepper.Result().Steps >= maxSteps {
			fmt.Fprintf(w, "stopped after %d steps\n", maxSteps)
			return nil
		}

		snapshot, stepErr := stepper.Step()
		state := "-"
		if snapshot.Outcome != graphsearch.StepExhausted {
			state = fmt.Sprint(snapshot.Current)
		}
		fmt.Fprintf(w, "%4d  %-9s  %-12s depth=%d cost=%g inserted=%d frontier=%d visited=%d\n",
			snapshot.StepIndex, snapshot.Outcome, state, snapshot.Depth, snapshot.Cost,
			snapshot.Inserted, snapshot.FrontierSize, snapshot.VisitedCount)
		if stepErr != nil {
			return stepErr
		}
		if !snapshot.Done {
			continue
		}

		if snapshot.Found {
			fmt.Fprintf(w, "plan: %s\n", strings.Join(formatActions(snapshot.Actions), " "))
			return nil
		}
		return graphsearch.ErrNoSolution
	}
}

func formatActions[ActionType any](actions []ActionType) []string {
	formatted := make([]string, 0, len(actions))
	for _, action := range actions {
		formatted = append(formatted, fmt.Sprint(action))
	}
	return formatted
}
