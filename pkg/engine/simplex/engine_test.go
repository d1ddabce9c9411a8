package simplex

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/mpsolver/pkg/engine"
)

const delta = 1e-6

func newTestEngine(t *testing.T, problemType engine.ProblemType, options ...Option) engine.Engine {
	t.Helper()
	e, err := NewFactory(options...)(t.Name(), problemType)
	require.NoError(t, err)
	return e
}

func TestRegistered(t *testing.T) {
	f, err := engine.Load(Name)
	require.NoError(t, err)
	e, err := f("registered", engine.LinearProgramming)
	require.NoError(t, err)
	assert.Equal(t, 0, e.NumVariables())
	assert.True(t, math.IsInf(e.Infinity(), 1))
}

func TestMaximizeBoundedVariable(t *testing.T) {
	e := newTestEngine(t, engine.LinearProgramming)
	inf := e.Infinity()
	x := e.MakeNumVar(0, inf, "x")
	c := e.MakeConstraint(-inf, 10, "c")
	c.SetCoefficient(x, 1)
	e.Objective().SetCoefficient(x, 1)
	e.Objective().SetMaximization()

	require.Equal(t, engine.Optimal, e.Solve())
	assert.Equal(t, 1, e.NumVariables())
	assert.Equal(t, 1, e.NumConstraints())
	assert.InDelta(t, 10, e.Objective().Value(), delta)
	assert.InDelta(t, 10, x.SolutionValue(), delta)
}

func TestRelaxationShapes(t *testing.T) {
	inf := math.Inf(1)
	type rowBounds struct {
		lb, ub float64
		coef   float64
	}
	for _, tt := range []struct {
		Name     string
		Lb, Ub   float64
		Maximize bool
		Rows     []rowBounds
		Status   engine.ResultStatus
		Value    float64
	}{
		{
			Name: "two sided bounds with a lower row",
			Lb:   -5, Ub: 3,
			Rows:   []rowBounds{{lb: -2, ub: inf, coef: 1}},
			Status: engine.Optimal,
			Value:  -2,
		},
		{
			Name: "free variable with a lower row",
			Lb:   -inf, Ub: inf,
			Rows:   []rowBounds{{lb: -7, ub: inf, coef: 1}},
			Status: engine.Optimal,
			Value:  -7,
		},
		{
			Name: "upper bounded variable maximized",
			Lb:   -inf, Ub: 4,
			Maximize: true,
			Status:   engine.Optimal,
			Value:    4,
		},
		{
			Name: "ranged row",
			Lb:   -inf, Ub: inf,
			Maximize: true,
			Rows:     []rowBounds{{lb: 1, ub: 6, coef: 2}},
			Status:   engine.Optimal,
			Value:    3,
		},
		{
			Name: "nonnegative variable maximized without rows",
			Lb:   0, Ub: inf,
			Maximize: true,
			Status:   engine.Unbounded,
		},
		{
			Name: "empty bound interval",
			Lb:   2, Ub: 1,
			Status: engine.Infeasible,
		},
		{
			Name: "empty row interval",
			Lb:   0, Ub: inf,
			Rows:   []rowBounds{{lb: 3, ub: 2, coef: 1}},
			Status: engine.Infeasible,
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			e := newTestEngine(t, engine.LinearProgramming)
			x := e.MakeNumVar(tt.Lb, tt.Ub, "x")
			for _, r := range tt.Rows {
				e.MakeConstraint(r.lb, r.ub, "r").SetCoefficient(x, r.coef)
			}
			e.Objective().SetCoefficient(x, 1)
			if tt.Maximize {
				e.Objective().SetMaximization()
			}
			require.Equal(t, tt.Status, e.Solve())
			if tt.Status == engine.Optimal {
				assert.InDelta(t, tt.Value, x.SolutionValue(), delta)
				assert.InDelta(t, tt.Value, e.Objective().Value(), delta)
			}
		})
	}
}

func TestUnboundedDirection(t *testing.T) {
	e := newTestEngine(t, engine.LinearProgramming)
	inf := e.Infinity()
	x := e.MakeNumVar(0, inf, "x")
	y := e.MakeNumVar(0, inf, "y")
	c := e.MakeConstraint(-inf, 1, "c")
	c.SetCoefficient(x, 1)
	c.SetCoefficient(y, -1)
	e.Objective().SetCoefficient(x, 1)
	e.Objective().SetCoefficient(y, 1)
	e.Objective().SetMaximization()

	assert.Equal(t, engine.Unbounded, e.Solve())
}

func TestContradictoryEqualities(t *testing.T) {
	e := newTestEngine(t, engine.LinearProgramming)
	inf := e.Infinity()
	x := e.MakeNumVar(-inf, inf, "x")
	e.MakeConstraint(2, 2, "c1").SetCoefficient(x, 1)
	e.MakeConstraint(3, 3, "c2").SetCoefficient(x, 1)

	assert.Equal(t, engine.Infeasible, e.Solve())
}

func TestRedundantEqualities(t *testing.T) {
	e := newTestEngine(t, engine.LinearProgramming)
	inf := e.Infinity()
	x := e.MakeNumVar(-inf, inf, "x")
	e.MakeConstraint(2, 2, "c1").SetCoefficient(x, 1)
	e.MakeConstraint(4, 4, "c2").SetCoefficient(x, 2)

	require.Equal(t, engine.Optimal, e.Solve())
	assert.InDelta(t, 2, x.SolutionValue(), delta)
}

func TestFeasibilityProblem(t *testing.T) {
	e := newTestEngine(t, engine.LinearProgramming)
	inf := e.Infinity()
	x := e.MakeNumVar(-inf, inf, "x")
	y := e.MakeNumVar(-inf, inf, "y")
	e.MakeConstraint(2, 2, "c1").SetCoefficient(x, 1)
	e.MakeConstraint(3, 3, "c1").SetCoefficient(y, 1)

	require.Equal(t, engine.Optimal, e.Solve())
	assert.InDelta(t, 2, x.SolutionValue(), delta)
	assert.InDelta(t, 3, y.SolutionValue(), delta)
	assert.Equal(t, 0.0, e.Objective().Value())
}

func TestKnapsack(t *testing.T) {
	e := newTestEngine(t, engine.MixedIntegerProgramming)
	inf := e.Infinity()
	weights := []float64{2, 3, 1}
	values := []float64{5, 4, 3}
	capacity := e.MakeConstraint(-inf, 5, "capacity")
	var items []engine.Variable
	for i := range weights {
		v := e.MakeBoolVar("item")
		items = append(items, v)
		capacity.SetCoefficient(v, weights[i])
		e.Objective().SetCoefficient(v, values[i])
	}
	e.Objective().SetMaximization()

	require.Equal(t, engine.Optimal, e.Solve())
	assert.InDelta(t, 9, e.Objective().Value(), delta)
	assert.Equal(t, 1.0, items[0].SolutionValue())
	assert.Equal(t, 1.0, items[1].SolutionValue())
	assert.Equal(t, 0.0, items[2].SolutionValue())
}

func TestIntegerRounding(t *testing.T) {
	for _, tt := range []struct {
		Name        string
		ProblemType engine.ProblemType
		Expected    float64
	}{
		{Name: "mip honors integrality", ProblemType: engine.MixedIntegerProgramming, Expected: 3},
		{Name: "lp relaxes integrality", ProblemType: engine.LinearProgramming, Expected: 3.5},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			e := newTestEngine(t, tt.ProblemType)
			inf := e.Infinity()
			x := e.MakeIntVar(0, inf, "x")
			y := e.MakeIntVar(0, inf, "y")
			c := e.MakeConstraint(-inf, 7, "c")
			c.SetCoefficient(x, 2)
			c.SetCoefficient(y, 2)
			e.Objective().SetCoefficient(x, 1)
			e.Objective().SetCoefficient(y, 1)
			e.Objective().SetMaximization()

			require.Equal(t, engine.Optimal, e.Solve())
			assert.InDelta(t, tt.Expected, e.Objective().Value(), delta)
			assert.InDelta(t, tt.Expected, x.SolutionValue()+y.SolutionValue(), delta)
		})
	}
}

func TestIntegerInfeasible(t *testing.T) {
	e := newTestEngine(t, engine.MixedIntegerProgramming)
	x := e.MakeIntVar(0, 10, "x")
	e.MakeConstraint(3, 3, "odd").SetCoefficient(x, 2)

	assert.Equal(t, engine.Infeasible, e.Solve())
}

func TestTimeLimitExpired(t *testing.T) {
	e := newTestEngine(t, engine.MixedIntegerProgramming)
	x := e.MakeIntVar(0, 10, "x")
	e.Objective().SetCoefficient(x, 1)
	e.SetTimeLimit(0)

	assert.Equal(t, engine.NotSolved, e.Solve())
	assert.Equal(t, 0.0, x.SolutionValue())
}

func TestTracer(t *testing.T) {
	var buf bytes.Buffer
	e := newTestEngine(t, engine.MixedIntegerProgramming, WithTracer(LoggingTracer{Writer: &buf}))
	x := e.MakeIntVar(0, 10, "x")
	e.MakeConstraint(math.Inf(-1), 2.5, "c").SetCoefficient(x, 1)
	e.Objective().SetCoefficient(x, 1)
	e.Objective().SetMaximization()

	require.Equal(t, engine.Optimal, e.Solve())
	assert.InDelta(t, 2, x.SolutionValue(), delta)
	assert.Contains(t, buf.String(), "Action: branch on 0")
	assert.Contains(t, buf.String(), "Action: new incumbent")
}

func TestCoefficients(t *testing.T) {
	e := newTestEngine(t, engine.LinearProgramming)
	x := e.MakeNumVar(0, 1, "x")
	c := e.MakeConstraint(0, 1, "c")
	c.SetCoefficient(x, 3)
	assert.Equal(t, 3.0, c.Coefficient(x))
	c.SetCoefficient(x, 0)
	assert.Equal(t, 0.0, c.Coefficient(x))
	assert.False(t, e.Objective().Maximization())
}

func TestForeignVariablePanics(t *testing.T) {
	a := newTestEngine(t, engine.LinearProgramming)
	b := newTestEngine(t, engine.LinearProgramming)
	x := b.MakeNumVar(0, 1, "x")
	assert.Panics(t, func() { a.Objective().SetCoefficient(x, 1) })
}

func TestWallTime(t *testing.T) {
	e := newTestEngine(t, engine.LinearProgramming)
	start := time.Now()
	e.Solve()
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, e.WallTime(), elapsed)
}
