// Package graphsearch provides generic graph search over caller-defined state spaces.
//
// It exposes four strategy entry points that share one engine:
//
//   - DepthFirstSearch: stack-ordered frontier.
//   - BreadthFirstSearch: queue-ordered frontier.
//   - UniformCostSearch: priority frontier ordered by accumulated cost.
//   - AStarSearch: priority frontier ordered by accumulated cost plus a heuristic.
//
// Every strategy is a graph search: a state is expanded at most once per call,
// the goal test runs when a node is extracted from the frontier, and duplicate
// frontier entries are discarded lazily when they come up for extraction.
//
// Search runs a strategy to completion and returns a Result. Stepper drives the
// same loop one extraction at a time, for UIs and debugging tools.
//
// The engine keeps no state between calls. The frontier and visited set grow
// without bound on infinite state spaces; callers bound them with
// WithMaxExpansions or by cancelling the context.
package graphsearch
