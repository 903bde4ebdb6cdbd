package graphsearch

import "github.com/pdrpinto/graphsearch/internal"

// Node is a frontier entry: a state together with how the search reached it.
//
// Nodes form a parent-linked tree so sibling entries share their common
// action prefix instead of copying it.
type Node[StateType comparable, ActionType comparable] struct {
	State StateType
	// Action is the action taken from Parent to reach State. It is the zero
	// value for the start node.
	Action ActionType
	// Cost is the accumulated step cost from the start state.
	Cost float64
	// Depth is the number of actions from the start state.
	Depth  int
	Parent *Node[StateType, ActionType]
}

func newStartNode[StateType comparable, ActionType comparable](state StateType) *Node[StateType, ActionType] {
	return &Node[StateType, ActionType]{State: state}
}

// child extends node by one successor.
func (node *Node[StateType, ActionType]) child(successor Successor[StateType, ActionType]) *Node[StateType, ActionType] {
	return &Node[StateType, ActionType]{
		State:  successor.State,
		Action: successor.Action,
		Cost:   node.Cost + successor.Cost,
		Depth:  node.Depth + 1,
		Parent: node,
	}
}

// Actions returns the ordered actions from the start state to node.State.
// The start node returns an empty, non-nil slice.
func (node *Node[StateType, ActionType]) Actions() []ActionType {
	return internal.ReconstructPath(
		node,
		node.Depth,
		func(n *Node[StateType, ActionType]) *Node[StateType, ActionType] { return n.Parent },
		func(n *Node[StateType, ActionType]) ActionType { return n.Action },
	)
}

// States returns the states visited from the start state to node.State, inclusive.
func (node *Node[StateType, ActionType]) States() []StateType {
	return internal.ReconstructPath(
		node,
		node.Depth+1,
		func(n *Node[StateType, ActionType]) *Node[StateType, ActionType] { return n.Parent },
		func(n *Node[StateType, ActionType]) StateType { return n.State },
	)
}
