// Package simplex is an in-process engine driver. Linear programs are
// solved with gonum's simplex implementation after a light presolve;
// mixed-integer programs are solved by depth-first branch and bound
// over those relaxations.
package simplex

import (
	"fmt"
	"math"
	"time"

	"github.com/operator-framework/mpsolver/pkg/engine"
)

// Name is the name under which the driver is registered.
const Name = "simplex"

func init() {
	engine.Register(engine.Driver{
		Name: Name,
		New:  New,
	})
}

type Option func(e *Engine)

// WithTracer reports every branch-and-bound node to t.
func WithTracer(t Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// New returns an empty Engine. It satisfies engine.Factory.
func New(name string, problemType engine.ProblemType) (engine.Engine, error) {
	return newEngine(name, problemType), nil
}

// NewFactory returns an engine.Factory applying the given options to
// every Engine it creates.
func NewFactory(options ...Option) engine.Factory {
	return func(name string, problemType engine.ProblemType) (engine.Engine, error) {
		e := newEngine(name, problemType)
		for _, option := range options {
			option(e)
		}
		return e, nil
	}
}

func newEngine(name string, problemType engine.ProblemType) *Engine {
	e := &Engine{
		name:        name,
		problemType: problemType,
		created:     time.Now(),
		tracer:      DefaultTracer{},
	}
	e.objective = &objective{e: e, coefficients: make(map[int]float64)}
	return e
}

// Engine holds one problem. It is not safe for concurrent use.
type Engine struct {
	name        string
	problemType engine.ProblemType
	created     time.Time
	hasLimit    bool
	timeLimit   time.Duration
	variables   []*variable
	rows        []*row
	objective   *objective
	tracer      Tracer
}

var _ engine.Engine = &Engine{}

func (e *Engine) Infinity() float64 {
	return math.Inf(1)
}

func (e *Engine) MakeBoolVar(name string) engine.Variable {
	return e.makeVar(0, 1, true, name)
}

func (e *Engine) MakeIntVar(lb, ub float64, name string) engine.Variable {
	return e.makeVar(lb, ub, true, name)
}

func (e *Engine) MakeNumVar(lb, ub float64, name string) engine.Variable {
	return e.makeVar(lb, ub, false, name)
}

func (e *Engine) makeVar(lb, ub float64, integer bool, name string) *variable {
	v := &variable{
		e:       e,
		index:   len(e.variables),
		name:    name,
		lb:      lb,
		ub:      ub,
		integer: integer,
	}
	e.variables = append(e.variables, v)
	return v
}

func (e *Engine) MakeConstraint(lb, ub float64, name string) engine.Constraint {
	r := &row{
		e:            e,
		index:        len(e.rows),
		name:         name,
		lb:           lb,
		ub:           ub,
		coefficients: make(map[int]float64),
	}
	e.rows = append(e.rows, r)
	return r
}

func (e *Engine) Objective() engine.Objective {
	return e.objective
}

func (e *Engine) NumVariables() int {
	return len(e.variables)
}

func (e *Engine) NumConstraints() int {
	return len(e.rows)
}

func (e *Engine) SetTimeLimit(d time.Duration) {
	e.hasLimit = true
	e.timeLimit = d
}

func (e *Engine) WallTime() time.Duration {
	return time.Since(e.created)
}

// Solve runs the engine. Linear programs are solved in a single
// relaxation and only observe the time limit before starting.
func (e *Engine) Solve() engine.ResultStatus {
	var deadline time.Time
	if e.hasLimit {
		deadline = time.Now().Add(e.timeLimit)
	}
	p := e.problem()

	var status engine.ResultStatus
	var x []float64
	switch {
	case expired(deadline):
		status = engine.NotSolved
	case e.problemType == engine.MixedIntegerProgramming && p.hasIntegers():
		status, x = p.branchAndBound(deadline, e.tracer)
	default:
		status, x = p.relax(p.lb, p.ub)
	}

	for i, v := range e.variables {
		v.value = 0
		if x != nil {
			v.value = x[i]
		}
	}
	e.objective.value = 0
	if x != nil {
		for i, c := range e.objective.coefficients {
			e.objective.value += c * x[i]
		}
	}
	return status
}

func expired(deadline time.Time) bool {
	return !deadline.IsZero() && !time.Now().Before(deadline)
}

// problem returns a snapshot of the model in minimization form.
func (e *Engine) problem() *problem {
	n := len(e.variables)
	p := &problem{
		n:       n,
		cost:    make([]float64, n),
		lb:      make([]float64, n),
		ub:      make([]float64, n),
		integer: make([]bool, n),
		rows:    make([]sparseRow, 0, len(e.rows)),
	}
	sign := 1.0
	if e.objective.maximize {
		sign = -1
	}
	for i, c := range e.objective.coefficients {
		p.cost[i] = sign * c
	}
	for i, v := range e.variables {
		p.lb[i], p.ub[i] = v.lb, v.ub
		p.integer[i] = v.integer && e.problemType == engine.MixedIntegerProgramming
		if p.integer[i] {
			p.lb[i], p.ub[i] = math.Ceil(v.lb), math.Floor(v.ub)
		}
	}
	for _, r := range e.rows {
		sr := sparseRow{lb: r.lb, ub: r.ub}
		for i := 0; i < n; i++ {
			if c, ok := r.coefficients[i]; ok {
				sr.index = append(sr.index, i)
				sr.value = append(sr.value, c)
			}
		}
		p.rows = append(p.rows, sr)
	}
	return p
}

func (e *Engine) own(v engine.Variable) *variable {
	x, ok := v.(*variable)
	if !ok || x.e != e {
		panic(fmt.Sprintf("simplex: variable %q does not belong to engine %q", v.Name(), e.name))
	}
	return x
}

type variable struct {
	e       *Engine
	index   int
	name    string
	lb, ub  float64
	integer bool
	value   float64
}

func (v *variable) Name() string           { return v.name }
func (v *variable) Index() int             { return v.index }
func (v *variable) Lb() float64            { return v.lb }
func (v *variable) Ub() float64            { return v.ub }
func (v *variable) Integer() bool          { return v.integer }
func (v *variable) SolutionValue() float64 { return v.value }

type row struct {
	e            *Engine
	index        int
	name         string
	lb, ub       float64
	coefficients map[int]float64
}

func (r *row) Name() string { return r.name }
func (r *row) Index() int   { return r.index }
func (r *row) Lb() float64  { return r.lb }
func (r *row) Ub() float64  { return r.ub }

func (r *row) SetCoefficient(v engine.Variable, coefficient float64) {
	setCoefficient(r.coefficients, r.e.own(v).index, coefficient)
}

func (r *row) Coefficient(v engine.Variable) float64 {
	return r.coefficients[r.e.own(v).index]
}

type objective struct {
	e            *Engine
	coefficients map[int]float64
	maximize     bool
	value        float64
}

func (o *objective) SetCoefficient(v engine.Variable, coefficient float64) {
	setCoefficient(o.coefficients, o.e.own(v).index, coefficient)
}

func (o *objective) Coefficient(v engine.Variable) float64 {
	return o.coefficients[o.e.own(v).index]
}

func (o *objective) SetMaximization()   { o.maximize = true }
func (o *objective) SetMinimization()   { o.maximize = false }
func (o *objective) Maximization() bool { return o.maximize }
func (o *objective) Value() float64     { return o.value }

func setCoefficient(m map[int]float64, index int, coefficient float64) {
	if coefficient == 0 {
		delete(m, index)
		return
	}
	m[index] = coefficient
}
