// Package mpfile reads mathematical programs from YAML or JSON
// documents such as:
//
//	name: production
//	variables:
//	- name: x
//	  kind: real
//	  lower: 0
//	constraints:
//	- name: capacity
//	  terms:
//	  - {coef: 2, var: x}
//	  op: le
//	  rhs: 10
//	objective:
//	  sense: max
//	  terms:
//	  - {coef: 1, var: x}
//
// Missing bounds are infinite. Variables must be declared before use.
// Documents are read as YAML 1.2, so names such as y, n or on stay
// strings.
package mpfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/operator-framework/mpsolver/pkg/mp"
)

type Document struct {
	Name        string       `yaml:"name"`
	Variables   []Variable   `yaml:"variables"`
	Constraints []Constraint `yaml:"constraints,omitempty"`
	Objective   *Objective   `yaml:"objective,omitempty"`
}

type Variable struct {
	Name  string   `yaml:"name"`
	Kind  string   `yaml:"kind,omitempty"`
	Lower *float64 `yaml:"lower,omitempty"`
	Upper *float64 `yaml:"upper,omitempty"`
}

type Term struct {
	Coef float64 `yaml:"coef"`
	Var  string  `yaml:"var"`
}

type Constraint struct {
	Name  string  `yaml:"name,omitempty"`
	Terms []Term  `yaml:"terms"`
	Op    string  `yaml:"op"`
	Rhs   float64 `yaml:"rhs"`
}

type Objective struct {
	Sense string `yaml:"sense"`
	Terms []Term `yaml:"terms"`
}

// Load reads the document at path.
func Load(path string) (*mp.MP, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read model %s", path)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid model %s", path)
	}
	return m, nil
}

// Decode parses a YAML or JSON document into a program.
func Decode(data []byte) (*mp.MP, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

// Parse parses a YAML or JSON document without validating it.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, errors.Wrap(err, "failed to parse model")
	}
	return doc, nil
}

// Build converts the document into a program. Variables appear in the
// program in declaration order.
func (d Document) Build() (*mp.MP, error) {
	byName := make(map[string]*mp.Variable, len(d.Variables))
	vars := make([]*mp.Variable, 0, len(d.Variables))
	for i, v := range d.Variables {
		if v.Name == "" {
			return nil, fmt.Errorf("variable %d has no name", i)
		}
		if _, ok := byName[v.Name]; ok {
			return nil, fmt.Errorf("variable %q declared twice", v.Name)
		}
		kind, err := parseKind(v.Kind)
		if err != nil {
			return nil, errors.Wrapf(err, "variable %q", v.Name)
		}
		bounds := mp.All()
		if v.Lower != nil {
			bounds.Lower = *v.Lower
		}
		if v.Upper != nil {
			bounds.Upper = *v.Upper
		}
		mv := mp.NewVariable(v.Name, kind, bounds)
		byName[v.Name] = mv
		vars = append(vars, mv)
	}

	terms := func(ts []Term) (mp.SumTerms, error) {
		sum := make(mp.SumTerms, 0, len(ts))
		for _, t := range ts {
			v, ok := byName[t.Var]
			if !ok {
				return nil, fmt.Errorf("unknown variable %q", t.Var)
			}
			sum = append(sum, mp.T(t.Coef, v))
		}
		return sum, nil
	}

	constraints := make([]mp.Constraint, 0, len(d.Constraints))
	for i, c := range d.Constraints {
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("c%d", i)
		}
		op, err := parseOperator(c.Op)
		if err != nil {
			return nil, errors.Wrapf(err, "constraint %q", name)
		}
		lhs, err := terms(c.Terms)
		if err != nil {
			return nil, errors.Wrapf(err, "constraint %q", name)
		}
		constraints = append(constraints, mp.NewConstraint(name, lhs, op, c.Rhs))
	}

	var objective mp.Objective
	if d.Objective != nil {
		f, err := terms(d.Objective.Terms)
		if err != nil {
			return nil, errors.Wrap(err, "objective")
		}
		switch strings.ToLower(d.Objective.Sense) {
		case "", "min", "minimize":
			objective = mp.Minimize(f)
		case "max", "maximize":
			objective = mp.Maximize(f)
		default:
			return nil, fmt.Errorf("objective: unknown sense %q", d.Objective.Sense)
		}
	}

	return mp.New(d.Name, vars, constraints, objective), nil
}

func parseKind(s string) (mp.Kind, error) {
	switch strings.ToLower(s) {
	case "", "real", "continuous":
		return mp.Real, nil
	case "int", "integer":
		return mp.Int, nil
	case "bool", "boolean", "binary":
		return mp.Bool, nil
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

func parseOperator(s string) (mp.Operator, error) {
	switch strings.ToLower(s) {
	case "eq", "=", "==":
		return mp.EQ, nil
	case "ge", ">=":
		return mp.GE, nil
	case "le", "<=":
		return mp.LE, nil
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}
