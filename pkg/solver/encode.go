package solver

import (
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/operator-framework/mpsolver/pkg/engine"
	"github.com/operator-framework/mpsolver/pkg/mp"
)

// encode translates m into a freshly created engine. Every reference
// in m is checked before the engine is created.
func (s *solver) encode(m *mp.MP) (*call, error) {
	if m == nil {
		return nil, errors.New("nil program")
	}
	mapping, err := newVarMapping(m.Variables())
	if err != nil {
		return nil, err
	}
	constraints := m.Constraints()
	objective := m.Objective()
	if err := mapping.Check(constraints, objective); err != nil {
		return nil, err
	}

	problemType := engine.LinearProgramming
	if m.IntegerDomainsCount() > 0 {
		problemType = engine.MixedIntegerProgramming
	}
	e, err := s.factory(m.Name(), problemType)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create engine for %q", m.Name())
	}
	s.log.WithFields(logrus.Fields{
		"model":       m.Name(),
		"problemType": problemType,
		"variables":   len(mapping.Variables()),
		"constraints": len(constraints),
	}).Debug("encoding model")

	inf := e.Infinity()
	for _, v := range mapping.Variables() {
		lo, hi := finite(v.Bounds().Lower, inf), finite(v.Bounds().Upper, inf)
		var native engine.Variable
		switch v.Kind() {
		case mp.Bool:
			native = e.MakeBoolVar(v.Description())
		case mp.Int:
			native = e.MakeIntVar(lo, hi, v.Description())
		default:
			native = e.MakeNumVar(lo, hi, v.Description())
		}
		mapping.Bind(v, native)
	}

	for _, c := range constraints {
		r := c.Bounds()
		row := e.MakeConstraint(finite(r.Lower, inf), finite(r.Upper, inf), c.Description())
		for _, t := range c.LHS() {
			if native := mapping.NativeOf(t.Variable); native != nil {
				row.SetCoefficient(native, row.Coefficient(native)+t.Coefficient)
			}
		}
	}

	if !objective.IsZero() {
		o := e.Objective()
		if objective.Sense == mp.Max {
			o.SetMaximization()
		} else {
			o.SetMinimization()
		}
		for _, t := range objective.Function {
			if native := mapping.NativeOf(t.Variable); native != nil {
				o.SetCoefficient(native, o.Coefficient(native)+t.Coefficient)
			}
		}
	}

	if err := mapping.Error(); err != nil {
		return nil, err
	}
	return &call{
		model:       m,
		problemType: problemType,
		engine:      e,
		mapping:     mapping,
	}, nil
}

// finite maps an infinite bound onto the engine's own infinity.
func finite(bound, inf float64) float64 {
	switch {
	case math.IsInf(bound, 1):
		return inf
	case math.IsInf(bound, -1):
		return -inf
	}
	return bound
}
