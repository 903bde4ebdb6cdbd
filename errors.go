package graphsearch

import "errors"

var (
	// ErrNoSolution is returned when the frontier empties before a goal state
	// is extracted. It is an ordinary outcome, not a failure of the engine.
	ErrNoSolution = errors.New("no solution found")

	// ErrEmptyFrontier is returned by Frontier.ExtractNext on an empty frontier.
	// The engine checks IsEmpty first, so seeing it from Search means a bug
	// in a custom Frontier implementation.
	ErrEmptyFrontier = errors.New("frontier is empty")

	// ErrExpansionLimit is returned when WithMaxExpansions is exhausted.
	ErrExpansionLimit = errors.New("expansion limit reached")

	// ErrUnknownStrategy is returned by ParseStrategy for unrecognised names.
	ErrUnknownStrategy = errors.New("unknown search strategy")

	// ErrIllegalAction is returned by ValidatePlan when an action is not
	// offered by the current state's successors.
	ErrIllegalAction = errors.New("illegal action")

	// ErrGoalNotReached is returned by ValidatePlan when a plan replays
	// cleanly but ends outside the goal set.
	ErrGoalNotReached = errors.New("plan does not reach a goal state")
)
