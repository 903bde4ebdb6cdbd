// Package server exposes step-by-step maze searches over HTTP so a browser
// front end can animate the frontier and visited set.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/pdrpinto/graphsearch"
	"github.com/pdrpinto/graphsearch/internal/logging"
	"github.com/pdrpinto/graphsearch/problems/grid"
)

const (
	// DefaultMaxSessions bounds concurrently open sessions.
	DefaultMaxSessions = 64
	// DefaultMaxSide bounds the width and height of a generated maze.
	DefaultMaxSide = 256

	maxClusters  = 64
	maxWalkSteps = 10000
)

var (
	errSessionNotFound = errors.New("session not found")
	errTooManySessions = errors.New("too many open sessions")
	errRateLimited     = errors.New("session creation rate exceeded")
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

type point = [2]int

type session struct {
	mu       sync.Mutex
	maze     *grid.Maze
	walls    []point
	strategy graphsearch.Strategy
	stepper  *graphsearch.Stepper[grid.Point, grid.Direction]
}

// Server holds the open sessions. Each session owns one stepper.
type Server struct {
	logger        *slog.Logger
	maxSessions   int
	maxSide       int
	createLimiter *rate.Limiter
	gatherer      prometheus.Gatherer

	sessionGauge prometheus.Gauge
	stepCounter  *prometheus.CounterVec

	mu       sync.Mutex
	sessions map[string]*session
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMaxSessions overrides DefaultMaxSessions.
func WithMaxSessions(n int) Option {
	return func(s *Server) { s.maxSessions = n }
}

// WithMaxSide overrides DefaultMaxSide.
func WithMaxSide(n int) Option {
	return func(s *Server) { s.maxSide = n }
}

// WithCreateRate limits session creation to limit per second, allowing
// bursts of burst.
func WithCreateRate(limit rate.Limit, burst int) Option {
	return func(s *Server) { s.createLimiter = rate.NewLimiter(limit, burst) }
}

// WithMetrics registers the server's collectors with registry and serves
// everything it gathers on /metrics.
func WithMetrics(registry *prometheus.Registry) Option {
	return func(s *Server) {
		s.gatherer = registry
		s.sessionGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "graphsearch_server_sessions",
			Help: "Number of open stepping sessions",
		})
		s.stepCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graphsearch_server_steps_total",
			Help: "Steps served by outcome",
		}, []string{"strategy", "outcome"})
		registry.MustRegister(s.sessionGauge, s.stepCounter)
	}
}

// New creates a server with no sessions.
func New(options ...Option) *Server {
	s := &Server{
		logger:      logging.NewNop(),
		maxSessions: DefaultMaxSessions,
		maxSide:     DefaultMaxSide,
		sessions:    make(map[string]*session),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Post("/{id}/step", s.handleStep)
		r.Get("/{id}/stream", s.handleStream)
		r.Delete("/{id}", s.handleDelete)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if s.createLimiter != nil && !s.createLimiter.Allow() {
		writeError(w, http.StatusTooManyRequests, errRateLimited)
		return
	}
	q := r.URL.Query()

	options := grid.DefaultRandomOptions()
	for _, dim := range []struct {
		name   string
		target *int
	}{{"w", &options.Width}, {"h", &options.Height}} {
		raw := q.Get(dim.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 4 || v > s.maxSide {
			writeError(w, http.StatusBadRequest, fmt.Errorf("%s must be an integer in (4, %d]", dim.name, s.maxSide))
			return
		}
		*dim.target = v
	}
	if v, err := strconv.Atoi(q.Get("clusters")); err == nil && v > 0 {
		options.Clusters = min(v, maxClusters)
	}
	if v, err := strconv.Atoi(q.Get("steps")); err == nil && v > 0 {
		options.Steps = min(v, maxWalkSteps)
	}
	if v, err := strconv.ParseFloat(q.Get("density"), 64); err == nil && v >= 0 && v <= 1 {
		options.Density = v
	}
	if v, err := strconv.ParseInt(q.Get("seed"), 10, 64); err == nil {
		options.Seed = v
	}

	strategy := graphsearch.AStar
	if name := q.Get("strategy"); name != "" {
		parsed, err := graphsearch.ParseStrategy(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		strategy = parsed
	}
	if q.Get("heuristic") != "" && !strategy.Informed() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("strategy %s does not use a heuristic", strategy))
		return
	}
	heuristic, ok := grid.HeuristicByName(q.Get("heuristic"))
	if !ok {
		writeError(w, http.StatusBadRequest, errors.New("unknown heuristic"))
		return
	}

	maze, err := grid.Random(options)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	frontier, priority, err := graphsearch.Configure(strategy, maze, heuristic)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	id := uuid.NewString()
	sess := &session{
		maze:     maze,
		walls:    toPoints(maze.Walls()),
		strategy: strategy,
		stepper: graphsearch.NewStepper(maze, frontier, priority,
			graphsearch.WithLogger(s.logger.With(slog.String("session", id))),
			graphsearch.WithStrategyName(strategy.String()),
		),
	}

	s.mu.Lock()
	if len(s.sessions) >= s.maxSessions {
		s.mu.Unlock()
		writeError(w, http.StatusTooManyRequests, errTooManySessions)
		return
	}
	s.sessions[id] = sess
	open := len(s.sessions)
	s.mu.Unlock()

	if s.sessionGauge != nil {
		s.sessionGauge.Set(float64(open))
	}
	s.logger.Info("session created",
		slog.String("session", id),
		slog.String("strategy", strategy.String()),
		slog.Int("w", maze.Width()),
		slog.Int("h", maze.Height()),
	)

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       id,
		"w":        maze.Width(),
		"h":        maze.Height(),
		"strategy": strategy,
		"start":    toPoint(maze.Start()),
		"goal":     toPoint(maze.Goals()[0]),
	})
}

type snapshotResponse struct {
	Step    int      `json:"step"`
	Outcome string   `json:"outcome"`
	W       int      `json:"w"`
	H       int      `json:"h"`
	Walls   []point  `json:"walls"`
	Open    []point  `json:"open,omitempty"`
	Closed  []point  `json:"closed,omitempty"`
	Current point    `json:"current"`
	Start   point    `json:"start"`
	Goal    point    `json:"goal"`
	Done    bool     `json:"done"`
	Found   bool     `json:"found"`
	Cost    float64  `json:"cost"`
	Path    []point  `json:"path,omitempty"`
	Actions []string `json:"actions,omitempty"`
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	response, err := s.step(sess)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleStream upgrades to a websocket and pushes one snapshot per step until
// the search is done or the client goes away. ?interval=<ms> paces the steps.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.lookup(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	var tick <-chan time.Time
	if v, err := strconv.Atoi(r.URL.Query().Get("interval")); err == nil && v > 0 {
		ticker := time.NewTicker(time.Duration(v) * time.Millisecond)
		defer ticker.Stop()
		tick = ticker.C
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", slog.String("session", id), slog.Any("error", err))
		return
	}
	defer conn.Close()

	// Reading processes control frames; a client close or a dead
	// connection ends the stream.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			s.logger.Debug("stream client gone", slog.String("session", id))
			return
		default:
		}

		response, err := s.step(sess)
		if err != nil {
			_ = conn.WriteJSON(map[string]any{"error": err.Error()})
			return
		}
		if err := conn.WriteJSON(response); err != nil {
			s.logger.Debug("stream client gone", slog.String("session", id), slog.Any("error", err))
			return
		}
		if response.Done {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "search finished"))
			return
		}
		if tick != nil {
			select {
			case <-gone:
				s.logger.Debug("stream client gone", slog.String("session", id))
				return
			case <-tick:
			}
		}
	}
}

// step advances sess by one extraction and renders the board.
func (s *Server) step(sess *session) (snapshotResponse, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	snapshot, err := sess.stepper.Step()
	if err != nil {
		return snapshotResponse{}, err
	}
	if s.stepCounter != nil {
		s.stepCounter.WithLabelValues(sess.strategy.String(), snapshot.Outcome.String()).Inc()
	}

	response := snapshotResponse{
		Step:    snapshot.StepIndex,
		Outcome: snapshot.Outcome.String(),
		W:       sess.maze.Width(),
		H:       sess.maze.Height(),
		Walls:   sess.walls,
		Current: toPoint(snapshot.Current),
		Start:   toPoint(sess.maze.Start()),
		Goal:    toPoint(sess.maze.Goals()[0]),
		Done:    snapshot.Done,
		Found:   snapshot.Found,
		Cost:    snapshot.Cost,
	}

	seen := make(map[grid.Point]bool)
	for _, n := range sess.stepper.Pending() {
		if !seen[n.State] {
			seen[n.State] = true
			response.Open = append(response.Open, toPoint(n.State))
		}
	}
	for p := range sess.stepper.Visited() {
		response.Closed = append(response.Closed, toPoint(p))
	}
	if goal := sess.stepper.GoalNode(); goal != nil {
		response.Path = toPoints(goal.States())
		for _, action := range goal.Actions() {
			response.Actions = append(response.Actions, string(action))
		}
	}
	return response, nil
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	open := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, errSessionNotFound)
		return
	}
	if s.sessionGauge != nil {
		s.sessionGauge.Set(float64(open))
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookup(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, errSessionNotFound
	}
	return sess, nil
}

func toPoint(p grid.Point) point { return point{p.X, p.Y} }

func toPoints(points []grid.Point) []point {
	out := make([]point, 0, len(points))
	for _, p := range points {
		out = append(out, toPoint(p))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}
