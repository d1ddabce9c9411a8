// Package mp describes mathematical programs independently of the
// engine used to solve them: variables, linear constraints and a
// linear objective.
package mp

import (
	"fmt"
)

// Sense is the optimization direction of an Objective.
type Sense int

const (
	Min Sense = iota
	Max
)

func (s Sense) String() string {
	switch s {
	case Min:
		return "min"
	case Max:
		return "max"
	}
	return fmt.Sprintf("Sense(%d)", int(s))
}

// Objective is a linear function to minimize or maximize.
type Objective struct {
	Sense    Sense
	Function SumTerms
}

// Minimize returns the objective min f.
func Minimize(f SumTerms) Objective {
	return Objective{Sense: Min, Function: Sum(f...)}
}

// Maximize returns the objective max f.
func Maximize(f SumTerms) Objective {
	return Objective{Sense: Max, Function: Sum(f...)}
}

// IsZero reports whether the objective function is the zero function,
// in which case the program is a feasibility problem.
func (o Objective) IsZero() bool {
	return o.Function.IsZero()
}

func (o Objective) String() string {
	return fmt.Sprintf("%s %s", o.Sense, o.Function)
}

// MP is a mathematical program. The zero value is an empty,
// anonymous feasibility problem.
type MP struct {
	name        string
	variables   []*Variable
	constraints []Constraint
	objective   Objective
}

// New returns a program over exactly the given variables. No
// consistency checks are performed: use a Builder to assemble
// programs from constraints.
func New(name string, variables []*Variable, constraints []Constraint, objective Objective) *MP {
	return &MP{
		name:        name,
		variables:   append([]*Variable(nil), variables...),
		constraints: append([]Constraint(nil), constraints...),
		objective:   objective,
	}
}

func (m *MP) Name() string {
	return m.name
}

// Variables returns the variables of the program in declaration
// order.
func (m *MP) Variables() []*Variable {
	return append([]*Variable(nil), m.variables...)
}

// Constraints returns the constraints of the program in declaration
// order.
func (m *MP) Constraints() []Constraint {
	return append([]Constraint(nil), m.constraints...)
}

func (m *MP) Objective() Objective {
	return m.objective
}

// IntegerDomainsCount returns the number of Int and Bool variables.
func (m *MP) IntegerDomainsCount() int {
	var n int
	for _, v := range m.variables {
		if v.Kind().IsInteger() {
			n++
		}
	}
	return n
}

// DuplicateVariable is returned by a Builder when a Variable is added
// explicitly more than once.
type DuplicateVariable struct {
	Variable *Variable
}

func (e DuplicateVariable) Error() string {
	return fmt.Sprintf("variable %q added twice", e.Variable.Description())
}

// Builder accumulates the parts of a program. Variables referenced by
// constraints or by the objective are added implicitly, in the order
// they are first seen.
type Builder struct {
	name        string
	variables   []*Variable
	seen        map[*Variable]struct{}
	constraints []Constraint
	objective   Objective
}

func NewBuilder(name string) *Builder {
	return &Builder{
		name: name,
		seen: make(map[*Variable]struct{}),
	}
}

// AddVariable declares v. It fails if v has already been declared,
// explicitly or through a constraint or the objective.
func (b *Builder) AddVariable(v *Variable) error {
	if _, ok := b.seen[v]; ok {
		return DuplicateVariable{Variable: v}
	}
	b.add(v)
	return nil
}

// AddConstraint appends c, declaring any variable it references that
// is not yet known.
func (b *Builder) AddConstraint(c Constraint) *Builder {
	for _, t := range c.lhs {
		b.addIfAbsent(t.Variable)
	}
	b.constraints = append(b.constraints, c)
	return b
}

// SetObjective replaces the objective, declaring any variable it
// references that is not yet known.
func (b *Builder) SetObjective(o Objective) *Builder {
	for _, t := range o.Function {
		b.addIfAbsent(t.Variable)
	}
	b.objective = o
	return b
}

func (b *Builder) addIfAbsent(v *Variable) {
	if v == nil {
		return
	}
	if _, ok := b.seen[v]; !ok {
		b.add(v)
	}
}

func (b *Builder) add(v *Variable) {
	b.seen[v] = struct{}{}
	b.variables = append(b.variables, v)
}

// Build returns the program assembled so far. The Builder may be used
// further without affecting the returned program.
func (b *Builder) Build() *MP {
	return New(b.name, b.variables, b.constraints, b.objective)
}
