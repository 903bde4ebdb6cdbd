package graphsearch

import (
	"fmt"
	"log/slog"
)

// StepOutcome classifies what a single Step did with the extracted node.
type StepOutcome int

// The zero StepOutcome is not a valid outcome.
const (
	// StepExpanded means the node's state was marked visited and its
	// successors were inserted.
	StepExpanded StepOutcome = iota + 1
	// StepSkipped means the node's state had already been expanded.
	StepSkipped
	// StepGoal means the node's state satisfied the goal test.
	StepGoal
	// StepExhausted means the frontier was empty; no node was extracted.
	StepExhausted
	// StepLimited means the expansion limit stopped the search. The node was
	// extracted but neither marked visited nor expanded.
	StepLimited
)

func (outcome StepOutcome) String() string {
	switch outcome {
	case StepExpanded:
		return "expanded"
	case StepSkipped:
		return "skipped"
	case StepGoal:
		return "goal"
	case StepExhausted:
		return "exhausted"
	case StepLimited:
		return "limited"
	default:
		return fmt.Sprintf("StepOutcome(%d)", int(outcome))
	}
}

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[StateType comparable, ActionType comparable] struct {
	StepIndex int
	Outcome   StepOutcome
	// Current is the extracted state. It is the zero value on StepExhausted.
	Current StateType
	Depth   int
	Cost    float64
	// Inserted counts the successors pushed during this step.
	Inserted     int
	FrontierSize int
	VisitedCount int
	Done         bool
	Found        bool
	// Actions is the plan to Current, set only on StepGoal.
	Actions []ActionType
}

// Stepper drives the search loop one frontier extraction at a time.
// It owns its frontier and visited set; it is not safe for concurrent use.
type Stepper[StateType comparable, ActionType comparable] struct {
	problem  Problem[StateType, ActionType]
	frontier Frontier[StateType, ActionType]
	priority PriorityFunc[StateType, ActionType]
	logger   *slog.Logger

	maxExpansions int

	visited map[StateType]struct{}
	goal    *Node[StateType, ActionType]

	stepCount    int
	expanded     int
	generated    int
	peakFrontier int

	done     bool
	final    StepSnapshot[StateType, ActionType]
	finalErr error
}

// NewStepper seeds frontier with the problem's start state and returns a
// stepper over it. frontier should be empty and must not be shared.
func NewStepper[StateType comparable, ActionType comparable](
	problem Problem[StateType, ActionType],
	frontier Frontier[StateType, ActionType],
	priority PriorityFunc[StateType, ActionType],
	options ...Option,
) *Stepper[StateType, ActionType] {
	stepperOptions := applyOptions(options)
	if priority == nil {
		priority = ConstantPriority[StateType, ActionType]
	}

	s := &Stepper[StateType, ActionType]{
		problem:       problem,
		frontier:      frontier,
		priority:      priority,
		logger:        stepperOptions.Logger.With(slog.String("strategy", stepperOptions.StrategyName)),
		maxExpansions: stepperOptions.MaxExpansions,
		visited:       make(map[StateType]struct{}),
	}

	start := newStartNode[StateType, ActionType](problem.StartState())
	s.insert(start)
	return s
}

func (s *Stepper[StateType, ActionType]) insert(node *Node[StateType, ActionType]) {
	s.frontier.Insert(node, s.priority(node))
	s.generated++
	if size := s.frontier.Len(); size > s.peakFrontier {
		s.peakFrontier = size
	}
}

// Step advances the search by one frontier extraction and returns a snapshot.
//
// Once the search is done, further calls return the final snapshot and error
// again. An exhausted frontier is reported through the snapshot
// (Done && !Found), not as an error.
func (s *Stepper[StateType, ActionType]) Step() (StepSnapshot[StateType, ActionType], error) {
	if s.done {
		return s.final, s.finalErr
	}

	if s.frontier.IsEmpty() {
		return s.finish(StepSnapshot[StateType, ActionType]{Outcome: StepExhausted}, nil)
	}

	node, err := s.frontier.ExtractNext()
	if err != nil {
		return s.finish(StepSnapshot[StateType, ActionType]{Outcome: StepExhausted}, fmt.Errorf("extract from non-empty frontier: %w", err))
	}
	s.stepCount++

	snapshot := StepSnapshot[StateType, ActionType]{
		Current: node.State,
		Depth:   node.Depth,
		Cost:    node.Cost,
	}

	// Goal test happens at extraction so the cheapest goal entry wins under UCS and A*.
	if s.problem.IsGoalState(node.State) {
		s.goal = node
		snapshot.Outcome = StepGoal
		snapshot.Found = true
		snapshot.Actions = node.Actions()
		return s.finish(snapshot, nil)
	}

	if _, seen := s.visited[node.State]; seen {
		snapshot.Outcome = StepSkipped
		return s.fill(snapshot), nil
	}

	if s.maxExpansions > 0 && s.expanded >= s.maxExpansions {
		s.logger.Debug("expansion limit reached", slog.Int("limit", s.maxExpansions))
		snapshot.Outcome = StepLimited
		return s.finish(snapshot, ErrExpansionLimit)
	}

	// --- Expand ---
	s.visited[node.State] = struct{}{}
	s.expanded++
	for _, successor := range s.problem.Successors(node.State) {
		if successor.State == node.State {
			continue
		}
		s.insert(node.child(successor))
		snapshot.Inserted++
	}
	snapshot.Outcome = StepExpanded

	s.logger.Debug("expanded state",
		slog.Any("state", node.State),
		slog.Int("depth", node.Depth),
		slog.Float64("cost", node.Cost),
		slog.Int("inserted", snapshot.Inserted),
		slog.Int("frontier", s.frontier.Len()),
	)

	return s.fill(snapshot), nil
}

func (s *Stepper[StateType, ActionType]) fill(snapshot StepSnapshot[StateType, ActionType]) StepSnapshot[StateType, ActionType] {
	snapshot.StepIndex = s.stepCount
	snapshot.FrontierSize = s.frontier.Len()
	snapshot.VisitedCount = len(s.visited)
	return snapshot
}

func (s *Stepper[StateType, ActionType]) finish(snapshot StepSnapshot[StateType, ActionType], err error) (StepSnapshot[StateType, ActionType], error) {
	snapshot.Done = true
	s.done = true
	s.final = s.fill(snapshot)
	s.finalErr = err
	return s.final, err
}

// Done reports whether the search has finished.
func (s *Stepper[StateType, ActionType]) Done() bool { return s.done }

// Visited returns a copy of the expanded states.
func (s *Stepper[StateType, ActionType]) Visited() map[StateType]struct{} {
	visited := make(map[StateType]struct{}, len(s.visited))
	for state := range s.visited {
		visited[state] = struct{}{}
	}
	return visited
}

// Pending returns the frontier's waiting nodes in extraction order.
func (s *Stepper[StateType, ActionType]) Pending() []*Node[StateType, ActionType] {
	return s.frontier.Pending()
}

// GoalNode returns the extracted goal node, or nil if none was found.
func (s *Stepper[StateType, ActionType]) GoalNode() *Node[StateType, ActionType] {
	return s.goal
}

// Result summarises the search so far. Found is set only after a goal was extracted.
func (s *Stepper[StateType, ActionType]) Result() Result[StateType, ActionType] {
	result := Result[StateType, ActionType]{
		Expanded:     s.expanded,
		Generated:    s.generated,
		Steps:        s.stepCount,
		PeakFrontier: s.peakFrontier,
	}
	if s.goal != nil {
		result.Found = true
		result.Goal = s.goal.State
		result.Actions = s.goal.Actions()
		result.Cost = s.goal.Cost
	}
	return result
}
