package simplex

import (
	"fmt"
	"io"

	"github.com/operator-framework/mpsolver/pkg/engine"
)

// SearchPosition describes a node of the branch-and-bound search once
// its relaxation has been solved.
type SearchPosition interface {
	Depth() int
	// Relaxation is the status of the node's continuous relaxation.
	Relaxation() engine.ResultStatus
	// Bound is the relaxation objective, in minimization form, or NaN
	// if the relaxation has no optimum.
	Bound() float64
	// Incumbent is the best integral objective known, in minimization
	// form, or +Inf.
	Incumbent() float64
	// Branch is the index of the variable branched on, or -1.
	Branch() int
	Pruned() bool
	Improved() bool
}

type Tracer interface {
	Trace(p SearchPosition)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ SearchPosition) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(p SearchPosition) {
	fmt.Fprintf(t.Writer, "---\nNode:\n- depth: %d\n- relaxation: %s\n- bound: %g\n", p.Depth(), p.Relaxation(), p.Bound())
	fmt.Fprintf(t.Writer, "Incumbent: %g\n", p.Incumbent())
	switch {
	case p.Pruned():
		fmt.Fprintf(t.Writer, "Action: prune\n")
	case p.Improved():
		fmt.Fprintf(t.Writer, "Action: new incumbent\n")
	case p.Branch() >= 0:
		fmt.Fprintf(t.Writer, "Action: branch on %d\n", p.Branch())
	}
}

type position struct {
	depth    int
	status   engine.ResultStatus
	bound    float64
	best     float64
	branch   int
	pruned   bool
	improved bool
}

var _ SearchPosition = position{}

func (p position) Depth() int                      { return p.depth }
func (p position) Relaxation() engine.ResultStatus { return p.status }
func (p position) Bound() float64                  { return p.bound }
func (p position) Incumbent() float64              { return p.best }
func (p position) Branch() int                     { return p.branch }
func (p position) Pruned() bool                    { return p.pruned }
func (p position) Improved() bool                  { return p.improved }
