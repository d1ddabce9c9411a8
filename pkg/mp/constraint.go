package mp

import (
	"fmt"
	"strings"
)

// Term is a coefficient applied to a Variable.
type Term struct {
	Coefficient float64
	Variable    *Variable
}

// T returns the term coefficient * v.
func T(coefficient float64, v *Variable) Term {
	return Term{Coefficient: coefficient, Variable: v}
}

func (t Term) String() string {
	return fmt.Sprintf("%g %s", t.Coefficient, t.Variable)
}

// SumTerms is a linear function: the sum of its terms. The zero value
// is the zero function.
type SumTerms []Term

// Sum returns the sum of the given terms.
func Sum(terms ...Term) SumTerms {
	return SumTerms(append([]Term(nil), terms...))
}

// IsZero reports whether every term has a zero coefficient.
func (s SumTerms) IsZero() bool {
	for _, t := range s {
		if t.Coefficient != 0 {
			return false
		}
	}
	return true
}

func (s SumTerms) String() string {
	if len(s) == 0 {
		return "0"
	}
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

// Operator compares the left-hand side of a Constraint to its
// right-hand side.
type Operator int

const (
	EQ Operator = iota
	GE
	LE
)

func (o Operator) String() string {
	switch o {
	case EQ:
		return "="
	case GE:
		return ">="
	case LE:
		return "<="
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Constraint is a linear constraint lhs op rhs. The description is a
// label only; several constraints may share one.
type Constraint struct {
	description string
	lhs         SumTerms
	operator    Operator
	rhs         float64
}

// NewConstraint returns the constraint lhs op rhs.
func NewConstraint(description string, lhs SumTerms, op Operator, rhs float64) Constraint {
	return Constraint{
		description: description,
		lhs:         Sum(lhs...),
		operator:    op,
		rhs:         rhs,
	}
}

func (c Constraint) Description() string {
	return c.description
}

// LHS returns a copy of the left-hand side.
func (c Constraint) LHS() SumTerms {
	return Sum(c.lhs...)
}

func (c Constraint) Operator() Operator {
	return c.operator
}

func (c Constraint) RHS() float64 {
	return c.rhs
}

// Bounds returns the range the left-hand side is restricted to: EQ
// gives [rhs, rhs], GE gives [rhs, +inf) and LE gives (-inf, rhs].
func (c Constraint) Bounds() Range {
	switch c.operator {
	case GE:
		return AtLeast(c.rhs)
	case LE:
		return AtMost(c.rhs)
	default:
		return Closed(c.rhs, c.rhs)
	}
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s: %s %s %g", c.description, c.lhs, c.operator, c.rhs)
}
