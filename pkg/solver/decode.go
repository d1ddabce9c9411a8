package solver

import (
	"fmt"
	"time"

	"github.com/operator-framework/mpsolver/pkg/engine"
	"github.com/operator-framework/mpsolver/pkg/result"
)

// decodeStatus maps a raw engine verdict onto a result status. Verdicts
// that prove nothing are errors.
func decodeStatus(raw engine.ResultStatus) (result.Status, error) {
	switch raw {
	case engine.Optimal:
		return result.Optimal, nil
	case engine.Infeasible:
		return result.Infeasible, nil
	case engine.Unbounded:
		return result.Unbounded, nil
	case engine.Feasible, engine.NotSolved, engine.Abnormal:
		return 0, DidNotConverge(raw)
	default:
		return 0, &InternalInvariantViolation{
			Detail: fmt.Sprintf("unrecognized engine status %d", int(raw)),
		}
	}
}

func (s *solver) decode(c *call, raw engine.ResultStatus, elapsed time.Duration) (*result.Result, error) {
	status, err := decodeStatus(raw)
	if err != nil {
		return nil, err
	}
	if status != result.Optimal {
		return result.NoSolution(status, result.OfWallTime(elapsed), s.config), nil
	}

	objective := c.engine.Objective().Value()
	assignments := make([]result.Assignment, 0, len(c.mapping.Variables()))
	for _, v := range c.mapping.Variables() {
		native := c.mapping.NativeOf(v)
		if native == nil {
			continue
		}
		assignments = append(assignments, result.Assignment{Variable: v, Value: native.SolutionValue()})
	}
	if err := c.mapping.Error(); err != nil {
		return nil, err
	}
	return result.WithSolution(status, result.OfWallTime(elapsed), s.config, result.NewSolution(objective, assignments...)), nil
}
