// Package engine defines the native capability of a linear or
// mixed-integer programming engine, and a process-wide registry of
// engine drivers.
package engine

import (
	"fmt"
	"time"
)

// ProblemType selects the solving method of an Engine.
type ProblemType int

const (
	// LinearProgramming treats every variable as continuous.
	LinearProgramming ProblemType = iota
	// MixedIntegerProgramming honors the integrality of variables.
	MixedIntegerProgramming
)

func (t ProblemType) String() string {
	switch t {
	case LinearProgramming:
		return "LP"
	case MixedIntegerProgramming:
		return "MIP"
	}
	return fmt.Sprintf("ProblemType(%d)", int(t))
}

// ResultStatus is the termination status reported by an Engine.
type ResultStatus int

const (
	// Optimal means a provably optimal solution was found.
	Optimal ResultStatus = iota
	// Feasible means a solution was found, without proof of optimality.
	Feasible
	// Infeasible means the problem has no solution.
	Infeasible
	// Unbounded means the objective can be improved without limit.
	Unbounded
	// Abnormal means the engine failed, typically numerically.
	Abnormal
	// NotSolved means the engine stopped before reaching any verdict.
	NotSolved
)

func (s ResultStatus) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Feasible:
		return "FEASIBLE"
	case Infeasible:
		return "INFEASIBLE"
	case Unbounded:
		return "UNBOUNDED"
	case Abnormal:
		return "ABNORMAL"
	case NotSolved:
		return "NOT_SOLVED"
	}
	return fmt.Sprintf("ResultStatus(%d)", int(s))
}

// Variable is an engine-native variable. It is only meaningful to the
// Engine that created it.
type Variable interface {
	Name() string
	// Index is the position of the variable in creation order.
	Index() int
	Lb() float64
	Ub() float64
	Integer() bool
	// SolutionValue is the value of the variable in the last
	// solution found.
	SolutionValue() float64
}

// Constraint is an engine-native row Lb <= sum(coefficient * var) <= Ub.
type Constraint interface {
	Name() string
	Index() int
	Lb() float64
	Ub() float64
	SetCoefficient(v Variable, coefficient float64)
	Coefficient(v Variable) float64
}

// Objective is the engine-native objective function. It is empty and
// minimizing until configured.
type Objective interface {
	SetCoefficient(v Variable, coefficient float64)
	Coefficient(v Variable) float64
	SetMaximization()
	SetMinimization()
	Maximization() bool
	// Value is the objective value of the last solution found.
	Value() float64
}

// Engine is one problem instance held by an engine. Values are
// single-use and not safe for concurrent use.
type Engine interface {
	// Infinity is the value standing for an infinite bound.
	Infinity() float64
	MakeBoolVar(name string) Variable
	MakeIntVar(lb, ub float64, name string) Variable
	MakeNumVar(lb, ub float64, name string) Variable
	MakeConstraint(lb, ub float64, name string) Constraint
	Objective() Objective
	NumVariables() int
	NumConstraints() int
	// SetTimeLimit bounds the wall time spent in Solve.
	SetTimeLimit(d time.Duration)
	// Solve runs the engine to termination and reports its status.
	Solve() ResultStatus
	// WallTime is the time elapsed since the engine was created.
	WallTime() time.Duration
}

// Factory returns a fresh Engine for a named problem of the given
// type.
type Factory func(name string, problemType ProblemType) (Engine, error)
