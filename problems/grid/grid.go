// Package grid implements maze navigation as a search problem.
//
// Layouts are plain text: '%' is a wall, 'P' the start, '.' a goal and any
// other character open floor. Row 0 is the top line, so North decreases Y.
package grid

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pdrpinto/graphsearch"
)

// ErrInvalidLayout is returned when a layout cannot describe a maze.
var ErrInvalidLayout = errors.New("invalid maze layout")

// Point is a cell position.
type Point struct {
	X, Y int
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Direction is a movement action.
type Direction string

const (
	North Direction = "North"
	South Direction = "South"
	East  Direction = "East"
	West  Direction = "West"
)

// directions is the successor generation order.
var directions = []Direction{North, South, East, West}

// Vector returns the displacement of one step in direction.
func (d Direction) Vector() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

// CostFunc prices the step that enters a cell.
type CostFunc func(entered Point) float64

// UnitCost charges 1 per step.
func UnitCost(Point) float64 { return 1 }

// StayEastCost makes western cells expensive: entering column x costs 0.5^x.
func StayEastCost(p Point) float64 { return math.Pow(0.5, float64(p.X)) }

// StayWestCost makes eastern cells expensive: entering column x costs 2^x.
func StayWestCost(p Point) float64 { return math.Pow(2, float64(p.X)) }

// Maze is an immutable grid problem.
type Maze struct {
	width, height int
	walls         map[Point]bool
	start         Point
	goals         []Point
	goalSet       map[Point]bool
	cost          CostFunc
}

var _ graphsearch.Problem[Point, Direction] = (*Maze)(nil)

// Option configures a Maze.
type Option func(*Maze)

// WithCostFunc replaces the unit step cost.
func WithCostFunc(cost CostFunc) Option {
	return func(m *Maze) {
		if cost != nil {
			m.cost = cost
		}
	}
}

// New builds a maze from explicit parts.
func New(width, height int, walls map[Point]bool, start Point, goals []Point, options ...Option) (*Maze, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidLayout, width, height)
	}
	m := &Maze{
		width:   width,
		height:  height,
		walls:   make(map[Point]bool, len(walls)),
		start:   start,
		goalSet: make(map[Point]bool, len(goals)),
		cost:    UnitCost,
	}
	for p, isWall := range walls {
		if isWall && m.Contains(p) {
			m.walls[p] = true
		}
	}
	if !m.Open(start) {
		return nil, fmt.Errorf("%w: start %v is not an open cell", ErrInvalidLayout, start)
	}
	for _, goal := range goals {
		if !m.Open(goal) {
			return nil, fmt.Errorf("%w: goal %v is not an open cell", ErrInvalidLayout, goal)
		}
		if !m.goalSet[goal] {
			m.goalSet[goal] = true
			m.goals = append(m.goals, goal)
		}
	}
	if len(m.goals) == 0 {
		return nil, fmt.Errorf("%w: no goal", ErrInvalidLayout)
	}
	for _, option := range options {
		option(m)
	}
	return m, nil
}

// Parse reads a text layout.
func Parse(layout string, options ...Option) (*Maze, error) {
	lines := strings.Split(strings.TrimRight(strings.ReplaceAll(layout, "\r\n", "\n"), "\n"), "\n")
	// Leading blank lines are common in raw string literals.
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidLayout)
	}

	width := 0
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}

	var (
		walls  = make(map[Point]bool)
		goals  []Point
		start  Point
		starts int
	)
	for y, line := range lines {
		x := 0
		for _, cell := range line {
			p := Point{X: x, Y: y}
			x++
			switch cell {
			case '%':
				walls[p] = true
			case 'P':
				start = p
				starts++
			case '.':
				goals = append(goals, p)
			}
		}
	}
	if starts != 1 {
		return nil, fmt.Errorf("%w: expected exactly one start, found %d", ErrInvalidLayout, starts)
	}
	return New(width, len(lines), walls, start, goals, options...)
}

// Load reads a layout file.
func Load(path string, options ...Option) (*Maze, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read maze layout: %w", err)
	}
	return Parse(string(data), options...)
}

func (m *Maze) Width() int     { return m.width }
func (m *Maze) Height() int    { return m.height }
func (m *Maze) Start() Point   { return m.start }
func (m *Maze) Goals() []Point { return append([]Point(nil), m.goals...) }

// Contains reports whether p lies inside the grid.
func (m *Maze) Contains(p Point) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

// Open reports whether p is inside the grid and not a wall.
func (m *Maze) Open(p Point) bool { return m.Contains(p) && !m.walls[p] }

// Walls returns the wall cells in row-major order.
func (m *Maze) Walls() []Point {
	walls := make([]Point, 0, len(m.walls))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if p := (Point{X: x, Y: y}); m.walls[p] {
				walls = append(walls, p)
			}
		}
	}
	return walls
}

func (m *Maze) StartState() Point { return m.start }

func (m *Maze) IsGoalState(p Point) bool { return m.goalSet[p] }

// Successors returns the open neighbours of p, North, South, East, West.
func (m *Maze) Successors(p Point) []graphsearch.Successor[Point, Direction] {
	successors := make([]graphsearch.Successor[Point, Direction], 0, len(directions))
	for _, direction := range directions {
		next, ok := m.move(p, direction)
		if !ok {
			continue
		}
		successors = append(successors, graphsearch.Successor[Point, Direction]{
			State:  next,
			Action: direction,
			Cost:   m.cost(next),
		})
	}
	return successors
}

// CostOfActions prices a plan from the start. A plan that walks into a
// wall or off the grid costs +Inf.
func (m *Maze) CostOfActions(actions []Direction) float64 {
	current, total := m.start, 0.0
	for _, action := range actions {
		next, ok := m.move(current, action)
		if !ok {
			return math.Inf(1)
		}
		current = next
		total += m.cost(next)
	}
	return total
}

func (m *Maze) move(p Point, direction Direction) (Point, bool) {
	dx, dy := direction.Vector()
	if dx == 0 && dy == 0 {
		return p, false
	}
	next := Point{X: p.X + dx, Y: p.Y + dy}
	return next, m.Open(next)
}

// String renders the layout.
func (m *Maze) String() string { return m.Render(nil) }

// Render draws the maze with path cells marked '*'. Start and goals keep
// their own symbols.
func (m *Maze) Render(path []Point) string {
	onPath := make(map[Point]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}

	var b strings.Builder
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			p := Point{X: x, Y: y}
			switch {
			case m.walls[p]:
				b.WriteByte('%')
			case p == m.start:
				b.WriteByte('P')
			case m.goalSet[p]:
				b.WriteByte('.')
			case onPath[p]:
				b.WriteByte('*')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Trace converts a plan into the cells it visits, start included. It stops
// at the first illegal move.
func (m *Maze) Trace(actions []Direction) []Point {
	path := []Point{m.start}
	current := m.start
	for _, action := range actions {
		next, ok := m.move(current, action)
		if !ok {
			break
		}
		current = next
		path = append(path, current)
	}
	return path
}
