package solver

import (
	"github.com/operator-framework/mpsolver/pkg/parameters"
)

func (s *solver) SetConfiguration(c parameters.Configuration) error {
	if c.ForceDeterministic {
		return &UnsupportedConfiguration{
			Option: "forceDeterministic",
			Reason: "the engine does not expose a determinism guarantee",
		}
	}
	if c.HasCPUTimeLimit() {
		return &UnsupportedConfiguration{
			Option: "maxCpuTime",
			Reason: "the engine only supports wall time limits",
		}
	}
	s.config = c
	return nil
}

func (s *solver) Configuration() parameters.Configuration {
	return s.config
}
