package solver

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/operator-framework/mpsolver/pkg/engine"
	"github.com/operator-framework/mpsolver/pkg/mp"
	"github.com/operator-framework/mpsolver/pkg/result"
)

// UnsupportedConfiguration is returned when a configuration option
// cannot be honored by the engine binding.
type UnsupportedConfiguration struct {
	Option string
	Reason string
}

func (e *UnsupportedConfiguration) Error() string {
	return fmt.Sprintf("unsupported configuration: %s: %s", e.Option, e.Reason)
}

// UnknownVariable is returned when a constraint or the objective of a
// program references a variable the program does not declare.
type UnknownVariable struct {
	Variable *mp.Variable
	Referrer string
}

func (e UnknownVariable) Error() string {
	name := "<nil>"
	if e.Variable != nil {
		name = e.Variable.Description()
	}
	return fmt.Sprintf("%s references undeclared variable %q", e.Referrer, name)
}

// DidNotConverge is returned when the engine stops without proving
// optimality, infeasibility or unboundedness. The value is the status
// reported by the engine.
type DidNotConverge engine.ResultStatus

func (e DidNotConverge) Error() string {
	return fmt.Sprintf("solver did not converge: engine reported %s", engine.ResultStatus(e))
}

// InternalInvariantViolation indicates a bug, either in this package
// or in the engine binding, such as an engine status outside of the
// known enumeration.
type InternalInvariantViolation struct {
	Detail string
}

func (e *InternalInvariantViolation) Error() string {
	return "internal solver failure: " + e.Detail
}

// Outcome classifies the return values of Solve into a short label
// suitable for reporting.
func Outcome(r *result.Result, err error) string {
	var didNotConverge DidNotConverge
	switch {
	case err == nil && r != nil:
		return r.Status.String()
	case errors.As(err, &didNotConverge):
		return "DID_NOT_CONVERGE"
	default:
		return "ERROR"
	}
}
