// Package graph implements an explicit weighted directed graph as a search problem.
//
// Graphs are usually described in YAML:
//
//	start: A
//	goals: [D]
//	edges:
//	  - {from: A, to: B, cost: 1}
//	  - {from: A, to: C, cost: 5, action: a-to-c}
//	heuristic: {A: 2, B: 1, C: 1}
//
// States and actions are strings. An edge's action defaults to its target name.
package graph

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/graphsearch"
)

// ErrInvalidProblem is returned when a graph description is inconsistent.
var ErrInvalidProblem = errors.New("invalid graph problem")

// Edge is one directed, weighted transition.
type Edge struct {
	From   string  `yaml:"from"`
	To     string  `yaml:"to"`
	Cost   float64 `yaml:"cost"`
	Action string  `yaml:"action,omitempty"`
}

// Document is the YAML form of a graph problem.
type Document struct {
	Start     string             `yaml:"start"`
	Goals     []string           `yaml:"goals"`
	Edges     []Edge             `yaml:"edges"`
	Heuristic map[string]float64 `yaml:"heuristic,omitempty"`
}

// Graph is an immutable search problem over named states.
type Graph struct {
	start     string
	goals     map[string]struct{}
	adjacency map[string][]graphsearch.Successor[string, string]
	estimates map[string]float64
}

var _ graphsearch.Problem[string, string] = (*Graph)(nil)

// New builds a graph problem from its parts.
func New(start string, goals []string, edges ...Edge) (*Graph, error) {
	return FromDocument(Document{Start: start, Goals: goals, Edges: edges})
}

// FromDocument validates document and builds the problem.
func FromDocument(document Document) (*Graph, error) {
	if document.Start == "" {
		return nil, fmt.Errorf("%w: start state is empty", ErrInvalidProblem)
	}

	g := &Graph{
		start:     document.Start,
		goals:     make(map[string]struct{}, len(document.Goals)),
		adjacency: make(map[string][]graphsearch.Successor[string, string]),
		estimates: make(map[string]float64, len(document.Heuristic)),
	}
	known := map[string]struct{}{document.Start: {}}

	for i, edge := range document.Edges {
		if edge.From == "" || edge.To == "" {
			return nil, fmt.Errorf("%w: edge %d has an empty endpoint", ErrInvalidProblem, i)
		}
		if edge.Cost < 0 || math.IsNaN(edge.Cost) {
			return nil, fmt.Errorf("%w: edge %s->%s has cost %v", ErrInvalidProblem, edge.From, edge.To, edge.Cost)
		}
		action := edge.Action
		if action == "" {
			action = edge.To
		}
		g.adjacency[edge.From] = append(g.adjacency[edge.From], graphsearch.Successor[string, string]{
			State:  edge.To,
			Action: action,
			Cost:   edge.Cost,
		})
		known[edge.From] = struct{}{}
		known[edge.To] = struct{}{}
	}

	for _, goal := range document.Goals {
		if goal == "" {
			return nil, fmt.Errorf("%w: empty goal name", ErrInvalidProblem)
		}
		g.goals[goal] = struct{}{}
	}

	for state, estimate := range document.Heuristic {
		if _, ok := known[state]; !ok {
			return nil, fmt.Errorf("%w: heuristic for unknown state %q", ErrInvalidProblem, state)
		}
		if estimate < 0 {
			return nil, fmt.Errorf("%w: negative heuristic for %q", ErrInvalidProblem, state)
		}
		g.estimates[state] = estimate
	}

	return g, nil
}

// Parse decodes a YAML graph description.
func Parse(data []byte) (*Graph, error) {
	var document Document
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("failed to parse graph problem: %w", err)
	}
	return FromDocument(document)
}

// Load reads and parses a YAML graph description from path.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph problem: %w", err)
	}
	return Parse(data)
}

func (g *Graph) StartState() string { return g.start }

func (g *Graph) IsGoalState(state string) bool {
	_, ok := g.goals[state]
	return ok
}

// Successors returns edges in declaration order.
func (g *Graph) Successors(state string) []graphsearch.Successor[string, string] {
	return g.adjacency[state]
}

// CostOfActions replays actions from the start state and sums edge costs.
// An action that no outgoing edge carries makes the plan cost +Inf.
func (g *Graph) CostOfActions(actions []string) float64 {
	current, total := g.start, 0.0
	for _, action := range actions {
		next, cost, ok := g.follow(current, action)
		if !ok {
			return math.Inf(1)
		}
		current, total = next, total+cost
	}
	return total
}

func (g *Graph) follow(state, action string) (string, float64, bool) {
	for _, successor := range g.adjacency[state] {
		if successor.Action == action {
			return successor.State, successor.Cost, true
		}
	}
	return "", 0, false
}

// TableHeuristic returns the heuristic declared with the problem. States
// without an estimate are estimated at zero.
func (g *Graph) TableHeuristic() graphsearch.Heuristic[string, string] {
	return func(state string, _ graphsearch.Problem[string, string]) float64 {
		return g.estimates[state]
	}
}

// HasHeuristic reports whether the description declared any estimates.
func (g *Graph) HasHeuristic() bool { return len(g.estimates) > 0 }
