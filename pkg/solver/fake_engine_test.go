package solver

import (
	"math"
	"time"

	"github.com/operator-framework/mpsolver/pkg/engine"
)

// fakeFactory creates fakeEngines that answer Solve with a fixed
// status and fixed variable values.
type fakeFactory struct {
	infinity       float64
	status         engine.ResultStatus
	values         []float64
	objectiveValue float64
	err            error

	engines []*fakeEngine
}

func (f *fakeFactory) New(name string, problemType engine.ProblemType) (engine.Engine, error) {
	if f.err != nil {
		return nil, f.err
	}
	inf := f.infinity
	if inf == 0 {
		inf = math.Inf(1)
	}
	e := &fakeEngine{
		factory:     f,
		name:        name,
		infinity:    inf,
		problemType: problemType,
		objective:   &fakeObjective{coefficients: make(map[engine.Variable]float64)},
	}
	f.engines = append(f.engines, e)
	return e, nil
}

func (f *fakeFactory) last() *fakeEngine {
	if len(f.engines) == 0 {
		return nil
	}
	return f.engines[len(f.engines)-1]
}

type fakeEngine struct {
	factory     *fakeFactory
	name        string
	infinity    float64
	problemType engine.ProblemType
	variables   []*fakeVariable
	constraints []*fakeConstraint
	objective   *fakeObjective
	timeLimit   *time.Duration
	solves      int
}

func (e *fakeEngine) Infinity() float64 { return e.infinity }

func (e *fakeEngine) MakeBoolVar(name string) engine.Variable {
	return e.makeVar(0, 1, true, name)
}

func (e *fakeEngine) MakeIntVar(lb, ub float64, name string) engine.Variable {
	return e.makeVar(lb, ub, true, name)
}

func (e *fakeEngine) MakeNumVar(lb, ub float64, name string) engine.Variable {
	return e.makeVar(lb, ub, false, name)
}

func (e *fakeEngine) makeVar(lb, ub float64, integer bool, name string) *fakeVariable {
	v := &fakeVariable{index: len(e.variables), name: name, lb: lb, ub: ub, integer: integer}
	e.variables = append(e.variables, v)
	return v
}

func (e *fakeEngine) MakeConstraint(lb, ub float64, name string) engine.Constraint {
	c := &fakeConstraint{
		index:        len(e.constraints),
		name:         name,
		lb:           lb,
		ub:           ub,
		coefficients: make(map[engine.Variable]float64),
	}
	e.constraints = append(e.constraints, c)
	return c
}

func (e *fakeEngine) Objective() engine.Objective { return e.objective }
func (e *fakeEngine) NumVariables() int           { return len(e.variables) }
func (e *fakeEngine) NumConstraints() int         { return len(e.constraints) }

func (e *fakeEngine) SetTimeLimit(d time.Duration) {
	e.timeLimit = &d
}

func (e *fakeEngine) Solve() engine.ResultStatus {
	e.solves++
	for i, v := range e.variables {
		if i < len(e.factory.values) {
			v.value = e.factory.values[i]
		}
	}
	e.objective.value = e.factory.objectiveValue
	return e.factory.status
}

func (e *fakeEngine) WallTime() time.Duration { return time.Hour }

type fakeVariable struct {
	index   int
	name    string
	lb, ub  float64
	integer bool
	value   float64
	reads   int
}

func (v *fakeVariable) Name() string  { return v.name }
func (v *fakeVariable) Index() int    { return v.index }
func (v *fakeVariable) Lb() float64   { return v.lb }
func (v *fakeVariable) Ub() float64   { return v.ub }
func (v *fakeVariable) Integer() bool { return v.integer }
func (v *fakeVariable) SolutionValue() float64 {
	v.reads++
	return v.value
}

type fakeConstraint struct {
	index        int
	name         string
	lb, ub       float64
	coefficients map[engine.Variable]float64
}

func (c *fakeConstraint) Name() string { return c.name }
func (c *fakeConstraint) Index() int   { return c.index }
func (c *fakeConstraint) Lb() float64  { return c.lb }
func (c *fakeConstraint) Ub() float64  { return c.ub }

func (c *fakeConstraint) SetCoefficient(v engine.Variable, coefficient float64) {
	c.coefficients[v] = coefficient
}

func (c *fakeConstraint) Coefficient(v engine.Variable) float64 {
	return c.coefficients[v]
}

type fakeObjective struct {
	coefficients map[engine.Variable]float64
	maximize     bool
	senseSet     bool
	value        float64
	reads        int
}

func (o *fakeObjective) SetCoefficient(v engine.Variable, coefficient float64) {
	o.coefficients[v] = coefficient
}

func (o *fakeObjective) Coefficient(v engine.Variable) float64 {
	return o.coefficients[v]
}

func (o *fakeObjective) SetMaximization() {
	o.maximize = true
	o.senseSet = true
}

func (o *fakeObjective) SetMinimization() {
	o.maximize = false
	o.senseSet = true
}

func (o *fakeObjective) Maximization() bool { return o.maximize }

func (o *fakeObjective) Value() float64 {
	o.reads++
	return o.value
}
