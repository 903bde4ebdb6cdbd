// Package metrics exports search statistics to Prometheus.
package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdrpinto/graphsearch"
)

// Outcome label values.
const (
	OutcomeFound      = "found"
	OutcomeNoSolution = "no_solution"
	OutcomeLimited    = "limited"
	OutcomeCancelled  = "cancelled"
	OutcomeError      = "error"
)

// Recorder holds the search collectors and turns them into engine hooks.
type Recorder struct {
	searches     *prometheus.CounterVec
	expansions   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	frontierPeak *prometheus.GaugeVec
}

// NewRecorder creates the collectors and registers them with registerer.
func NewRecorder(registerer prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphsearch_searches_total",
				Help: "Total number of completed searches by strategy and outcome",
			},
			[]string{"strategy", "outcome"},
		),
		expansions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphsearch_expansions_total",
				Help: "Total number of expanded states",
			},
			[]string{"strategy"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "graphsearch_search_duration_seconds",
				Help:    "Wall-clock duration of searches",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"strategy"},
		),
		frontierPeak: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "graphsearch_frontier_peak",
				Help: "Largest frontier size seen by the most recent search",
			},
			[]string{"strategy"},
		),
	}

	for _, collector := range []prometheus.Collector{r.searches, r.expansions, r.duration, r.frontierPeak} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Hooks returns engine hooks feeding the recorder.
func (r *Recorder) Hooks() graphsearch.Hooks {
	return graphsearch.Hooks{
		OnExpand: func(_ context.Context, event graphsearch.ExpandEvent) {
			r.expansions.WithLabelValues(event.Strategy).Inc()
		},
		OnFinish: func(_ context.Context, event graphsearch.FinishEvent) {
			r.searches.WithLabelValues(event.Strategy, Outcome(event)).Inc()
			r.duration.WithLabelValues(event.Strategy).Observe(event.Duration.Seconds())
			r.frontierPeak.WithLabelValues(event.Strategy).Set(float64(event.PeakFrontier))
		},
	}
}

// Outcome maps a finished search to its outcome label.
func Outcome(event graphsearch.FinishEvent) string {
	switch {
	case event.Found:
		return OutcomeFound
	case errors.Is(event.Err, graphsearch.ErrNoSolution):
		return OutcomeNoSolution
	case errors.Is(event.Err, graphsearch.ErrExpansionLimit):
		return OutcomeLimited
	case errors.Is(event.Err, context.Canceled), errors.Is(event.Err, context.DeadlineExceeded):
		return OutcomeCancelled
	default:
		return OutcomeError
	}
}
