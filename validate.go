package graphsearch

import "fmt"

// PlanReport is the outcome of replaying a plan with ValidatePlan.
type PlanReport[StateType comparable] struct {
	// States holds the start state followed by the state after each action.
	States []StateType
	// StepCost sums the successor costs taken during the replay.
	StepCost float64
	// ProblemCost is the problem's own CostOfActions for the plan.
	ProblemCost float64
}

// Final returns the state the plan ends in.
func (report PlanReport[StateType]) Final() StateType {
	return report.States[len(report.States)-1]
}

// ValidatePlan replays actions from the start state. Each action must match
// a successor of the current state (the first match is taken) and the last
// state must be a goal.
//
// On ErrIllegalAction or ErrGoalNotReached the returned report covers the
// prefix that did replay.
func ValidatePlan[StateType comparable, ActionType comparable](
	problem Problem[StateType, ActionType],
	actions []ActionType,
) (PlanReport[StateType], error) {
	current := problem.StartState()
	report := PlanReport[StateType]{States: make([]StateType, 1, len(actions)+1)}
	report.States[0] = current

	for index, action := range actions {
		matched := false
		for _, successor := range problem.Successors(current) {
			if successor.Action != action {
				continue
			}
			current = successor.State
			report.StepCost += successor.Cost
			report.States = append(report.States, current)
			matched = true
			break
		}
		if !matched {
			return report, fmt.Errorf("%w: action %d (%v) from state %v", ErrIllegalAction, index, action, current)
		}
	}

	report.ProblemCost = problem.CostOfActions(actions)
	if !problem.IsGoalState(current) {
		return report, fmt.Errorf("%w: plan ends in %v", ErrGoalNotReached, current)
	}
	return report, nil
}
