package simplex

import (
	"math"
	"time"

	"github.com/operator-framework/mpsolver/pkg/engine"
)

const (
	// integralityTolerance is the distance to the nearest integer
	// below which a value counts as integral.
	integralityTolerance = 1e-6
	// pruneTolerance avoids exploring nodes that cannot improve on
	// the incumbent by a meaningful amount.
	pruneTolerance = 1e-9
)

type node struct {
	lb, ub []float64
	depth  int
}

// branchAndBound explores relaxations depth first, branching on the
// first fractional integer variable and preferring the child closest
// to the relaxed value. It reports Feasible or NotSolved when the
// deadline passes before the search completes.
func (p *problem) branchAndBound(deadline time.Time, tracer Tracer) (engine.ResultStatus, []float64) {
	var (
		stack     = []node{{lb: p.lb, ub: p.ub}}
		incumbent []float64
		best      = math.Inf(1)
		root      = true
	)
	for len(stack) > 0 {
		if expired(deadline) {
			if incumbent != nil {
				return engine.Feasible, incumbent
			}
			return engine.NotSolved, nil
		}

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		status, x := p.relax(nd.lb, nd.ub)
		pos := position{depth: nd.depth, status: status, bound: math.NaN(), best: best, branch: -1}
		switch status {
		case engine.Optimal:
			pos.bound = p.value(x)
		case engine.Infeasible:
			tracer.Trace(pos)
			root = false
			continue
		case engine.Unbounded:
			tracer.Trace(pos)
			if root {
				return engine.Unbounded, nil
			}
			// A restriction of a bounded relaxation cannot be
			// unbounded.
			return engine.Abnormal, nil
		default:
			tracer.Trace(pos)
			return engine.Abnormal, nil
		}
		root = false

		if pos.bound >= best-pruneTolerance {
			pos.pruned = true
			tracer.Trace(pos)
			continue
		}

		j := p.fractional(x)
		if j < 0 {
			incumbent = p.round(x)
			best = p.value(incumbent)
			pos.best = best
			pos.improved = true
			tracer.Trace(pos)
			continue
		}
		pos.branch = j
		tracer.Trace(pos)

		floor := math.Floor(x[j])
		down := node{lb: nd.lb, ub: with(nd.ub, j, floor), depth: nd.depth + 1}
		up := node{lb: with(nd.lb, j, floor+1), ub: nd.ub, depth: nd.depth + 1}
		if x[j]-floor >= 0.5 {
			stack = append(stack, down, up)
		} else {
			stack = append(stack, up, down)
		}
	}
	if incumbent == nil {
		return engine.Infeasible, nil
	}
	return engine.Optimal, incumbent
}

// fractional returns the first integer variable whose value in x is
// not integral, or -1.
func (p *problem) fractional(x []float64) int {
	for j, integer := range p.integer {
		if integer && math.Abs(x[j]-math.Round(x[j])) > integralityTolerance {
			return j
		}
	}
	return -1
}

func (p *problem) round(x []float64) []float64 {
	r := make([]float64, len(x))
	for j, v := range x {
		if p.integer[j] {
			v = math.Round(v)
		}
		r[j] = v
	}
	return r
}

func with(bounds []float64, j int, v float64) []float64 {
	b := make([]float64, len(bounds))
	copy(b, bounds)
	b[j] = v
	return b
}
