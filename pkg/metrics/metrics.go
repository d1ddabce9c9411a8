package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	Outcome     = "outcome"
	StatusLabel = "status"
	Succeeded   = "succeeded"
	Failed      = "failed"
)

var (
	solveDurationSummary = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "mpsolver_solve_duration_seconds",
			Help:       "The duration of a solve attempt",
			Objectives: map[float64]float64{0.95: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{Outcome},
	)

	solveResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mpsolver_solve_results_total",
			Help: "Number of solve attempts by decoded status",
		},
		[]string{StatusLabel},
	)

	modelVariables = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mpsolver_model_variables",
			Help:    "Number of variables of the models submitted for solving",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	modelConstraints = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mpsolver_model_constraints",
			Help:    "Number of constraints of the models submitted for solving",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

var registerOnce sync.Once

// RegisterSolver registers the solver collectors with the default
// prometheus registry. Calls after the first have no effect.
func RegisterSolver() {
	registerOnce.Do(func() {
		prometheus.MustRegister(solveDurationSummary)
		prometheus.MustRegister(solveResultsTotal)
		prometheus.MustRegister(modelVariables)
		prometheus.MustRegister(modelConstraints)
	})
}

func EmitSolveSuccess(duration time.Duration) {
	solveDurationSummary.WithLabelValues(Succeeded).Observe(duration.Seconds())
}

func EmitSolveFailure(duration time.Duration) {
	solveDurationSummary.WithLabelValues(Failed).Observe(duration.Seconds())
}

func EmitSolveStatus(status string) {
	solveResultsTotal.WithLabelValues(status).Inc()
}

func ObserveModel(variables, constraints int) {
	modelVariables.Observe(float64(variables))
	modelConstraints.Observe(float64(constraints))
}

// WriteTextfile writes the metrics of the default registry to path in
// the text exposition format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
