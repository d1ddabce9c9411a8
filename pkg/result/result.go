// Package result holds the solver-agnostic outcome of solving a
// mathematical program.
package result

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/operator-framework/mpsolver/pkg/mp"
	"github.com/operator-framework/mpsolver/pkg/parameters"
)

// Status is the verdict reached on a program.
type Status int

const (
	Optimal Status = iota
	Infeasible
	Unbounded
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Infeasible:
		return "INFEASIBLE"
	case Unbounded:
		return "UNBOUNDED"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ComputationTime records the resources spent reaching a verdict.
type ComputationTime struct {
	WallTime time.Duration
}

// OfWallTime returns a ComputationTime recording only wall time.
func OfWallTime(d time.Duration) ComputationTime {
	return ComputationTime{WallTime: d}
}

// Solution is an assignment of a value to every variable of a program,
// together with the objective value it achieves.
type Solution struct {
	objective float64
	order     []*mp.Variable
	values    map[*mp.Variable]float64
}

// Assignment is the value given to a single variable.
type Assignment struct {
	Variable *mp.Variable
	Value    float64
}

// NewSolution returns a solution with the given objective value and
// assignments. Iteration over the solution follows the order of the
// assignments; a variable assigned twice keeps its last value.
func NewSolution(objective float64, assignments ...Assignment) *Solution {
	s := &Solution{
		objective: objective,
		order:     make([]*mp.Variable, 0, len(assignments)),
		values:    make(map[*mp.Variable]float64, len(assignments)),
	}
	for _, a := range assignments {
		if _, ok := s.values[a.Variable]; !ok {
			s.order = append(s.order, a.Variable)
		}
		s.values[a.Variable] = a.Value
	}
	return s
}

// ObjectiveValue returns the value of the objective function.
func (s *Solution) ObjectiveValue() float64 {
	return s.objective
}

// Value returns the value of v, and false if v is not part of the
// solution.
func (s *Solution) Value(v *mp.Variable) (float64, bool) {
	x, ok := s.values[v]
	return x, ok
}

// Variables returns the assigned variables in order.
func (s *Solution) Variables() []*mp.Variable {
	return append([]*mp.Variable(nil), s.order...)
}

// Values returns a copy of the assignment.
func (s *Solution) Values() map[*mp.Variable]float64 {
	values := make(map[*mp.Variable]float64, len(s.values))
	for v, x := range s.values {
		values[v] = x
	}
	return values
}

func (s *Solution) Len() int {
	return len(s.order)
}

// Equal reports whether both solutions have the same objective value
// and assign the same values to the same variables.
func (s *Solution) Equal(o *Solution) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.objective != o.objective || len(s.values) != len(o.values) {
		return false
	}
	for v, x := range s.values {
		if y, ok := o.values[v]; !ok || x != y {
			return false
		}
	}
	return true
}

// WriteTo renders the solution as an aligned table.
func (s *Solution) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "objective\t%g\n", s.objective)
	for _, v := range s.order {
		fmt.Fprintf(tw, "%s\t%g\n", v.Description(), s.values[v])
	}
	err := tw.Flush()
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Result is the outcome of a solve. It carries a Solution only when
// its status is Optimal.
type Result struct {
	Status        Status
	Time          ComputationTime
	Configuration parameters.Configuration
	solution      *Solution
}

// WithSolution returns a result carrying s.
func WithSolution(status Status, elapsed ComputationTime, configuration parameters.Configuration, s *Solution) *Result {
	return &Result{
		Status:        status,
		Time:          elapsed,
		Configuration: configuration,
		solution:      s,
	}
}

// NoSolution returns a result without a solution.
func NoSolution(status Status, elapsed ComputationTime, configuration parameters.Configuration) *Result {
	return &Result{
		Status:        status,
		Time:          elapsed,
		Configuration: configuration,
	}
}

// Solution returns the solution, and false if there is none.
func (r *Result) Solution() (*Solution, bool) {
	return r.solution, r.solution != nil
}

func (r *Result) String() string {
	return fmt.Sprintf("%s in %s", r.Status, r.Time.WallTime)
}
