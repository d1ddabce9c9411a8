package solver

import (
	"fmt"
	"strings"

	"github.com/operator-framework/mpsolver/pkg/engine"
	"github.com/operator-framework/mpsolver/pkg/mp"
)

// varMapping performs translation between the variables of a program
// and the variables of the engine solving it. It lives for a single
// call to Solve.
type varMapping struct {
	inorder  []*mp.Variable
	declared map[*mp.Variable]int
	natives  []engine.Variable
	byNative map[int]*mp.Variable
	errs     []error
}

// newVarMapping indexes the declared variables of a program. It fails
// if a variable is declared more than once.
func newVarMapping(variables []*mp.Variable) (*varMapping, error) {
	d := varMapping{
		inorder:  variables,
		declared: make(map[*mp.Variable]int, len(variables)),
		natives:  make([]engine.Variable, len(variables)),
		byNative: make(map[int]*mp.Variable, len(variables)),
	}
	for i, v := range variables {
		if v == nil {
			return nil, UnknownVariable{Referrer: fmt.Sprintf("declaration %d", i)}
		}
		if _, ok := d.declared[v]; ok {
			return nil, mp.DuplicateVariable{Variable: v}
		}
		d.declared[v] = i
	}
	return &d, nil
}

// Check verifies that every term of the constraints and of the
// objective references a declared variable.
func (d *varMapping) Check(constraints []mp.Constraint, objective mp.Objective) error {
	for _, c := range constraints {
		for _, t := range c.LHS() {
			if _, ok := d.declared[t.Variable]; !ok {
				return UnknownVariable{Variable: t.Variable, Referrer: fmt.Sprintf("constraint %q", c.Description())}
			}
		}
	}
	for _, t := range objective.Function {
		if _, ok := d.declared[t.Variable]; !ok {
			return UnknownVariable{Variable: t.Variable, Referrer: "objective"}
		}
	}
	return nil
}

// Bind associates a declared variable with the engine variable
// created for it.
func (d *varMapping) Bind(v *mp.Variable, native engine.Variable) {
	i, ok := d.declared[v]
	if !ok {
		d.errs = append(d.errs, fmt.Errorf("variable %q bound but not declared", v.Description()))
		return
	}
	if d.natives[i] != nil {
		d.errs = append(d.errs, fmt.Errorf("variable %q bound twice", v.Description()))
		return
	}
	if other, ok := d.byNative[native.Index()]; ok {
		d.errs = append(d.errs, fmt.Errorf("engine variable %d bound to both %q and %q", native.Index(), other.Description(), v.Description()))
		return
	}
	d.natives[i] = native
	d.byNative[native.Index()] = v
}

// NativeOf returns the engine variable bound to v, or nil if there is
// none.
func (d *varMapping) NativeOf(v *mp.Variable) engine.Variable {
	if i, ok := d.declared[v]; ok && d.natives[i] != nil {
		return d.natives[i]
	}
	d.errs = append(d.errs, fmt.Errorf("variable %q referenced but not bound", v))
	return nil
}

// VariableOf returns the program variable bound to the given engine
// variable, or nil if there is none.
func (d *varMapping) VariableOf(native engine.Variable) *mp.Variable {
	if v, ok := d.byNative[native.Index()]; ok {
		return v
	}
	d.errs = append(d.errs, fmt.Errorf("no variable corresponding to engine variable %d", native.Index()))
	return nil
}

// Variables returns the declared variables in declaration order.
func (d *varMapping) Variables() []*mp.Variable {
	return d.inorder
}

// Len returns the number of bound variables.
func (d *varMapping) Len() int {
	return len(d.byNative)
}

// Error returns a single error value that is an aggregation of all
// errors encountered during a varMapping's lifetime, or nil if there
// have been none. A non-nil return value indicates a bug in this
// package.
func (d *varMapping) Error() error {
	if len(d.errs) == 0 {
		return nil
	}
	s := make([]string, len(d.errs))
	for i, err := range d.errs {
		s[i] = err.Error()
	}
	return &InternalInvariantViolation{
		Detail: fmt.Sprintf("%d errors encountered: %s", len(s), strings.Join(s, ", ")),
	}
}
