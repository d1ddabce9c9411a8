package simplex

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/operator-framework/mpsolver/pkg/engine"
)

const (
	// zeroTolerance is the magnitude below which matrix entries are
	// treated as zero.
	zeroTolerance = 1e-12
	// feasibilityTolerance is the residual accepted on a row that has
	// no variable left.
	feasibilityTolerance = 1e-9
	// rankTolerance is relative to the largest singular value.
	rankTolerance = 1e-9
	// simplexTolerance is handed to lp.Simplex.
	simplexTolerance = 1e-10
)

type sparseRow struct {
	lb, ub float64
	index  []int
	value  []float64
}

// problem is min cost·x subject to lb <= x <= ub and
// rows[i].lb <= rows[i]·x <= rows[i].ub.
type problem struct {
	n       int
	cost    []float64
	lb, ub  []float64
	integer []bool
	rows    []sparseRow
}

func (p *problem) hasIntegers() bool {
	for _, integer := range p.integer {
		if integer {
			return true
		}
	}
	return false
}

// value returns cost·x.
func (p *problem) value(x []float64) float64 {
	var f float64
	for i, c := range p.cost {
		f += c * x[i]
	}
	return f
}

// column is a non-negative variable of the standard form. Slack
// columns have no origin.
type column struct {
	origin int
	sign   float64
}

// equality is the row coefficients·y = rhs of the standard form.
type equality struct {
	coefficients map[int]float64
	rhs          float64
}

// relax solves the continuous relaxation of p with the given variable
// bounds. The returned point is only set for engine.Optimal.
//
// The relaxation is rewritten in the standard form min c·y, Ay = b,
// y >= 0 expected by lp.Simplex: every variable becomes an offset plus
// or minus non-negative columns, finite upper bounds and inequality
// rows gain slack columns.
func (p *problem) relax(lb, ub []float64) (engine.ResultStatus, []float64) {
	var (
		columns []column
		eqs     []equality
		parts   = make([][]int, p.n)
		offset  = make([]float64, p.n)
	)
	addColumn := func(origin int, sign float64) int {
		columns = append(columns, column{origin: origin, sign: sign})
		c := len(columns) - 1
		if origin >= 0 {
			parts[origin] = append(parts[origin], c)
		}
		return c
	}

	for j := 0; j < p.n; j++ {
		l, u := lb[j], ub[j]
		if l > u {
			return engine.Infeasible, nil
		}
		switch {
		case !math.IsInf(l, 0):
			offset[j] = l
			c := addColumn(j, 1)
			if !math.IsInf(u, 0) {
				s := addColumn(-1, 0)
				eqs = append(eqs, equality{coefficients: map[int]float64{c: 1, s: 1}, rhs: u - l})
			}
		case !math.IsInf(u, 0):
			offset[j] = u
			addColumn(j, -1)
		default:
			addColumn(j, 1)
			addColumn(j, -1)
		}
	}

	for _, r := range p.rows {
		coefficients := make(map[int]float64)
		var constant float64
		for k, j := range r.index {
			a := r.value[k]
			constant += a * offset[j]
			for _, c := range parts[j] {
				coefficients[c] += a * columns[c].sign
			}
		}
		rl, ru := r.lb-constant, r.ub-constant
		if rl > ru {
			return engine.Infeasible, nil
		}
		if r.lb == r.ub {
			eqs = append(eqs, equality{coefficients: coefficients, rhs: rl})
			continue
		}
		if !math.IsInf(rl, 0) {
			ge := equality{coefficients: clone(coefficients), rhs: rl}
			ge.coefficients[addColumn(-1, 0)] = -1
			eqs = append(eqs, ge)
		}
		if !math.IsInf(ru, 0) {
			le := equality{coefficients: clone(coefficients), rhs: ru}
			le.coefficients[addColumn(-1, 0)] = 1
			eqs = append(eqs, le)
		}
	}

	cost := make([]float64, len(columns))
	for c, col := range columns {
		if col.origin >= 0 {
			cost[c] = p.cost[col.origin] * col.sign
		}
	}

	status, y := solveStandard(cost, eqs)
	if status != engine.Optimal {
		return status, nil
	}
	x := make([]float64, p.n)
	copy(x, offset)
	for c, col := range columns {
		if col.origin >= 0 {
			x[col.origin] += col.sign * y[c]
		}
	}
	return engine.Optimal, x
}

func clone(m map[int]float64) map[int]float64 {
	c := make(map[int]float64, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// solveStandard solves min cost·y, eqs, y >= 0. Empty rows and columns
// are removed and linearly dependent rows are either dropped or prove
// infeasibility before lp.Simplex is called, since it rejects such
// input.
func solveStandard(cost []float64, eqs []equality) (engine.ResultStatus, []float64) {
	n := len(cost)
	y := make([]float64, n)

	used := make([]bool, n)
	var rows []equality
	for _, eq := range eqs {
		empty := true
		for c, a := range eq.coefficients {
			if math.Abs(a) > zeroTolerance {
				used[c] = true
				empty = false
			}
		}
		if !empty {
			rows = append(rows, eq)
			continue
		}
		if math.Abs(eq.rhs) > feasibilityTolerance {
			return engine.Infeasible, nil
		}
	}

	// An unconstrained column with a negative cost is a ray along
	// which the objective decreases without limit, provided the rest
	// of the problem is feasible.
	var ray bool
	var kept []int
	for c := 0; c < n; c++ {
		if used[c] {
			kept = append(kept, c)
			continue
		}
		if cost[c] < 0 {
			ray = true
		}
	}

	if len(rows) > 0 {
		dense := make([][]float64, len(rows))
		b := make([]float64, len(rows))
		for i, eq := range rows {
			dense[i] = make([]float64, len(kept))
			for k, c := range kept {
				dense[i][k] = eq.coefficients[c]
			}
			b[i] = eq.rhs
		}

		independent, ok, err := independentRows(dense, b)
		if err != nil {
			return engine.Abnormal, nil
		}
		if !ok {
			return engine.Infeasible, nil
		}

		m := len(independent)
		data := make([]float64, 0, m*len(kept))
		rhs := make([]float64, m)
		for i, r := range independent {
			data = append(data, dense[r]...)
			rhs[i] = b[r]
		}
		c := make([]float64, len(kept))
		for k, col := range kept {
			c[k] = cost[col]
		}

		opt, status := simplex(c, mat.NewDense(m, len(kept), data), rhs)
		if status != engine.Optimal {
			return status, nil
		}
		for k, col := range kept {
			y[col] = math.Max(opt[k], 0)
		}
	}

	if ray {
		return engine.Unbounded, nil
	}
	return engine.Optimal, y
}

func simplex(c []float64, a mat.Matrix, b []float64) (x []float64, status engine.ResultStatus) {
	defer func() {
		// lp.Simplex panics on inputs it considers malformed.
		if r := recover(); r != nil {
			x, status = nil, engine.Abnormal
		}
	}()
	_, x, err := lp.Simplex(c, a, b, simplexTolerance, nil)
	switch {
	case err == nil:
		return x, engine.Optimal
	case errors.Is(err, lp.ErrInfeasible):
		return nil, engine.Infeasible
	case errors.Is(err, lp.ErrUnbounded):
		return nil, engine.Unbounded
	default:
		return nil, engine.Abnormal
	}
}

// independentRows greedily selects a maximal set of linearly
// independent rows of a. ok is false when a dropped row contradicts
// the selected ones, i.e. when the system a·y = b has no solution at
// all.
func independentRows(a [][]float64, b []float64) (selected []int, ok bool, err error) {
	var (
		basis     [][]float64
		augmented [][]float64
		r         int
	)
	for i, row := range a {
		candidate := append(append([][]float64(nil), basis...), row)
		rc, err := rank(candidate)
		if err != nil {
			return nil, false, err
		}
		withRHS := append(append([]float64(nil), row...), b[i])
		if rc > r {
			basis = candidate
			augmented = append(augmented, withRHS)
			selected = append(selected, i)
			r = rc
			continue
		}
		ra, err := rank(append(append([][]float64(nil), augmented...), withRHS))
		if err != nil {
			return nil, false, err
		}
		if ra > r {
			return nil, false, nil
		}
	}
	return selected, true, nil
}

var errFactorize = errors.New("simplex: singular value decomposition failed")

func rank(rows [][]float64) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for _, row := range rows {
		data = append(data, row...)
	}
	var svd mat.SVD
	if !svd.Factorize(mat.NewDense(len(rows), cols, data), mat.SVDNone) {
		return 0, errFactorize
	}
	values := svd.Values(nil)
	if len(values) == 0 || values[0] == 0 {
		return 0, nil
	}
	var r int
	for _, s := range values {
		if s > rankTolerance*values[0] {
			r++
		}
	}
	return r, nil
}
