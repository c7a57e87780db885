package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/classplanner/timetable-solver/internal/solver"
)

// Registry wraps the solver's Prometheus collectors: a solve-duration
// histogram labelled by outcome, and a gauge of the backtrack count from
// the most recent solve.
type Registry struct {
	registry       *prometheus.Registry
	handler        http.Handler
	solveDuration  *prometheus.HistogramVec
	solveTotal     *prometheus.CounterVec
	lastBacktracks prometheus.Gauge
}

// New registers the solver's Prometheus collectors.
func New() *Registry {
	registry := prometheus.NewRegistry()

	solveDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solve_duration_seconds",
		Help:    "Duration of a timetable solve, labelled by outcome",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	solveTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solve_total",
		Help: "Total number of solves attempted, labelled by outcome",
	}, []string{"outcome"})

	lastBacktracks := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solve_last_backtracks",
		Help: "Backtrack count of the most recently completed solve",
	})

	registry.MustRegister(solveDuration, solveTotal, lastBacktracks)

	return &Registry{
		registry:       registry,
		handler:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		solveDuration:  solveDuration,
		solveTotal:     solveTotal,
		lastBacktracks: lastBacktracks,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return r.handler
}

// ObserveSolve records one completed solve attempt's outcome, duration and
// backtrack count. outcome is typically a solver.Outcome's String() form,
// or "load_error"/"domain_too_small" for failures that never reach Search.
func (r *Registry) ObserveSolve(outcome string, duration time.Duration, backtracks int) {
	if r == nil {
		return
	}
	r.solveDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	r.solveTotal.WithLabelValues(outcome).Inc()
	if outcome == solver.OutcomeSat.String() || outcome == solver.OutcomeUnsat.String() || outcome == solver.OutcomeTimeout.String() {
		r.lastBacktracks.Set(float64(backtracks))
	}
}
