package solver

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/operator-framework/mpsolver/pkg/engine"
)

// invoke runs the engine of c once under the current configuration and
// returns its raw verdict along with the elapsed wall time.
func (s *solver) invoke(c *call) (engine.ResultStatus, time.Duration) {
	if s.config.HasWallTimeLimit() {
		c.engine.SetTimeLimit(s.config.MaxWallTime)
	}
	start := time.Now()
	status := c.engine.Solve()
	elapsed := time.Since(start)

	if reported := c.engine.WallTime(); elapsed > reported {
		s.log.WithFields(logrus.Fields{
			"measured": elapsed,
			"reported": reported,
		}).Debug("engine reported less wall time than measured")
	}
	s.log.WithFields(logrus.Fields{
		"model":   c.model.Name(),
		"status":  status,
		"elapsed": elapsed,
	}).Debug("engine returned")
	return status, elapsed
}
