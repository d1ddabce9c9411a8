// Package solver binds solver-agnostic mathematical programs to an
// LP/MIP engine: it encodes a program into the engine's native model,
// runs the engine and decodes its verdict into a result.Result.
package solver

import (
	"github.com/sirupsen/logrus"

	"github.com/operator-framework/mpsolver/pkg/engine"
	"github.com/operator-framework/mpsolver/pkg/engine/simplex"
	"github.com/operator-framework/mpsolver/pkg/mp"
	"github.com/operator-framework/mpsolver/pkg/parameters"
	"github.com/operator-framework/mpsolver/pkg/result"
)

// DefaultEngine is the engine driver used when no other is selected.
const DefaultEngine = simplex.Name

// Solver solves mathematical programs. Implementations are not safe
// for concurrent use: each goroutine needs its own Solver.
type Solver interface {
	// SetConfiguration replaces the configuration used by subsequent
	// calls to Solve. It fails, leaving the current configuration in
	// place, if the configuration cannot be honored.
	SetConfiguration(c parameters.Configuration) error
	// Configuration returns the configuration in use.
	Configuration() parameters.Configuration
	// Solve returns a result carrying a solution if the program was
	// solved to optimality, a result without solution if it was
	// proven infeasible or unbounded, and an error otherwise.
	Solve(m *mp.MP) (*result.Result, error)
}

type solver struct {
	factory engine.Factory
	config  parameters.Configuration
	log     logrus.FieldLogger
}

// call holds the state of a single call to Solve. It is never reused.
type call struct {
	model       *mp.MP
	problemType engine.ProblemType
	engine      engine.Engine
	mapping     *varMapping
}

func (s *solver) Solve(m *mp.MP) (*result.Result, error) {
	c, err := s.encode(m)
	if err != nil {
		return nil, err
	}
	raw, elapsed := s.invoke(c)
	return s.decode(c, raw, elapsed)
}

func New(options ...Option) (Solver, error) {
	s := solver{config: parameters.Default()}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type Option func(s *solver) error

// WithEngine selects a registered engine driver by name, loading it if
// necessary.
func WithEngine(name string) Option {
	return func(s *solver) error {
		f, err := engine.Load(name)
		if err != nil {
			return err
		}
		s.factory = f
		return nil
	}
}

// WithFactory uses f to create the engine of every solve.
func WithFactory(f engine.Factory) Option {
	return func(s *solver) error {
		s.factory = f
		return nil
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *solver) error {
		s.log = log
		return nil
	}
}

// WithConfiguration sets the initial configuration, subject to the
// same checks as SetConfiguration.
func WithConfiguration(c parameters.Configuration) Option {
	return func(s *solver) error {
		return s.SetConfiguration(c)
	}
}

var defaults = []Option{
	func(s *solver) error {
		if s.factory == nil {
			return WithEngine(DefaultEngine)(s)
		}
		return nil
	},
	func(s *solver) error {
		if s.log == nil {
			s.log = logrus.StandardLogger()
		}
		return nil
	},
}
