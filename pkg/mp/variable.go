package mp

import (
	"fmt"
	"math"
)

// Kind is the domain of a Variable.
type Kind int

const (
	// Real variables take any value within their bounds.
	Real Kind = iota
	// Int variables take integral values within their bounds.
	Int
	// Bool variables take the value 0 or 1. Their bounds are always [0, 1].
	Bool
)

func (k Kind) String() string {
	switch k {
	case Real:
		return "real"
	case Int:
		return "int"
	case Bool:
		return "bool"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsInteger reports whether variables of this kind take integral
// values only.
func (k Kind) IsInteger() bool {
	return k == Int || k == Bool
}

// Range is a closed interval of reals. Either endpoint may be infinite.
type Range struct {
	Lower float64
	Upper float64
}

// All returns the range (-inf, +inf).
func All() Range {
	return Range{Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// Closed returns the range [lower, upper].
func Closed(lower, upper float64) Range {
	return Range{Lower: lower, Upper: upper}
}

// AtLeast returns the range [lower, +inf).
func AtLeast(lower float64) Range {
	return Range{Lower: lower, Upper: math.Inf(1)}
}

// AtMost returns the range (-inf, upper].
func AtMost(upper float64) Range {
	return Range{Lower: math.Inf(-1), Upper: upper}
}

// Contains reports whether x lies within the range.
func (r Range) Contains(x float64) bool {
	return r.Lower <= x && x <= r.Upper
}

func (r Range) String() string {
	open, close := "[", "]"
	if math.IsInf(r.Lower, -1) {
		open = "("
	}
	if math.IsInf(r.Upper, 1) {
		close = ")"
	}
	return fmt.Sprintf("%s%g, %g%s", open, r.Lower, r.Upper, close)
}

// Variable is a decision variable of a mathematical program. Values
// are immutable and compared by identity: two Variables sharing a
// description are distinct.
type Variable struct {
	description string
	kind        Kind
	bounds      Range
}

// NewVariable returns a Variable of the given kind and bounds. The
// bounds of a Bool variable are always [0, 1], whatever is supplied.
func NewVariable(description string, kind Kind, bounds Range) *Variable {
	if kind == Bool {
		bounds = Closed(0, 1)
	}
	return &Variable{
		description: description,
		kind:        kind,
		bounds:      bounds,
	}
}

// RealVar returns an unbounded Real variable.
func RealVar(description string) *Variable {
	return NewVariable(description, Real, All())
}

// IntVar returns an unbounded Int variable.
func IntVar(description string) *Variable {
	return NewVariable(description, Int, All())
}

// BoolVar returns a Bool variable.
func BoolVar(description string) *Variable {
	return NewVariable(description, Bool, Closed(0, 1))
}

func (v *Variable) Description() string {
	return v.description
}

func (v *Variable) Kind() Kind {
	return v.kind
}

func (v *Variable) Bounds() Range {
	return v.bounds
}

func (v *Variable) String() string {
	return v.description
}
