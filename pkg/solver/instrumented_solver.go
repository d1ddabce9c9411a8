package solver

import (
	"time"

	"github.com/operator-framework/mpsolver/pkg/mp"
	"github.com/operator-framework/mpsolver/pkg/parameters"
	"github.com/operator-framework/mpsolver/pkg/result"
)

type InstrumentedSolver struct {
	solver                Solver
	successMetricsEmitter func(time.Duration)
	failureMetricsEmitter func(time.Duration)
	statusEmitter         func(string)
}

var _ Solver = &InstrumentedSolver{}

// NewInstrumentedSolver wraps solver, reporting the duration of every
// call to Solve to one of the two emitters. A call succeeds when it
// returns no error, whatever the decoded status.
func NewInstrumentedSolver(solver Solver, successMetricsEmitter, failureMetricsEmitter func(time.Duration)) *InstrumentedSolver {
	return &InstrumentedSolver{
		solver:                solver,
		successMetricsEmitter: successMetricsEmitter,
		failureMetricsEmitter: failureMetricsEmitter,
	}
}

// WithStatusEmitter additionally reports the outcome label of every
// call to Solve, as computed by Outcome.
func (is *InstrumentedSolver) WithStatusEmitter(emitter func(string)) *InstrumentedSolver {
	is.statusEmitter = emitter
	return is
}

func (is *InstrumentedSolver) Solve(m *mp.MP) (*result.Result, error) {
	start := time.Now()
	r, err := is.solver.Solve(m)
	if err != nil {
		is.failureMetricsEmitter(time.Since(start))
	} else {
		is.successMetricsEmitter(time.Since(start))
	}
	if is.statusEmitter != nil {
		is.statusEmitter(Outcome(r, err))
	}
	return r, err
}

func (is *InstrumentedSolver) SetConfiguration(c parameters.Configuration) error {
	return is.solver.SetConfiguration(c)
}

func (is *InstrumentedSolver) Configuration() parameters.Configuration {
	return is.solver.Configuration()
}
