package grid

import (
	"math/rand"
	"time"
)

// RandomOptions shapes a randomly generated maze.
type RandomOptions struct {
	Width, Height int
	// Clusters random walks each drop walls along Steps moves with
	// probability Density per cell visited.
	Clusters int
	Steps    int
	Density  float64
	// Seed makes generation reproducible. Zero seeds from the clock.
	Seed int64
}

// DefaultRandomOptions matches a 40x24 board with moderate clutter.
func DefaultRandomOptions() RandomOptions {
	return RandomOptions{Width: 40, Height: 24, Clusters: 8, Steps: 200, Density: 0.25}
}

// Random generates a maze with clustered walls and distinct random start and
// goal cells. The goal is not guaranteed to be reachable.
func Random(options RandomOptions, mazeOptions ...Option) (*Maze, error) {
	seed := options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))

	w, h := options.Width, options.Height
	if w <= 0 || h <= 0 || w*h < 2 {
		return New(w, h, nil, Point{}, nil)
	}

	var start, goal Point
	for {
		start = Point{X: r.Intn(w), Y: r.Intn(h)}
		goal = Point{X: r.Intn(w), Y: r.Intn(h)}
		if start != goal {
			break
		}
	}

	walls := map[Point]bool{}
	moves := []Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for c := 0; c < options.Clusters; c++ {
		p := Point{X: r.Intn(w), Y: r.Intn(h)}
		for s := 0; s < options.Steps; s++ {
			if r.Float64() < options.Density && p != start && p != goal {
				walls[p] = true
			}
			d := moves[r.Intn(len(moves))]
			np := Point{X: p.X + d.X, Y: p.Y + d.Y}
			if np.X >= 0 && np.X < w && np.Y >= 0 && np.Y < h {
				p = np
			}
		}
	}

	return New(w, h, walls, start, []Point{goal}, mazeOptions...)
}
