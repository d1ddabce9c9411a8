// Package parameters holds the options that control a solve.
package parameters

import (
	"math"
	"os"
	"strings"
	"time"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// Enough is the duration used for limits that are not set.
const Enough time.Duration = math.MaxInt64

// Configuration is the set of options applied to a solve. Whether a
// given configuration is honored depends on the solver it is given
// to.
type Configuration struct {
	// ForceDeterministic requires that the same program always yields
	// the same result.
	ForceDeterministic bool
	// MaxWallTime bounds the elapsed time spent by the engine.
	MaxWallTime time.Duration
	// MaxCPUTime bounds the processor time spent by the engine.
	MaxCPUTime time.Duration
}

// Default returns the configuration with no requirement and no limit.
func Default() Configuration {
	return Configuration{
		MaxWallTime: Enough,
		MaxCPUTime:  Enough,
	}
}

// HasWallTimeLimit reports whether MaxWallTime is a finite limit.
func (c Configuration) HasWallTimeLimit() bool {
	return c.MaxWallTime < Enough
}

// HasCPUTimeLimit reports whether MaxCPUTime is a finite limit.
func (c Configuration) HasCPUTimeLimit() bool {
	return c.MaxCPUTime < Enough
}

func (c Configuration) String() string {
	return "forceDeterministic=" + boolString(c.ForceDeterministic) +
		" maxWallTime=" + FormatLimit(c.MaxWallTime) +
		" maxCpuTime=" + FormatLimit(c.MaxCPUTime)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

const unbounded = "unbounded"

// ParseLimit parses a duration limit. The empty string and
// "unbounded" both yield Enough.
func ParseLimit(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, unbounded) {
		return Enough, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, errors.Errorf("negative limit %q", s)
	}
	return d, nil
}

// FormatLimit is the inverse of ParseLimit.
func FormatLimit(d time.Duration) string {
	if d >= Enough {
		return unbounded
	}
	return d.String()
}

type document struct {
	ForceDeterministic bool   `json:"forceDeterministic"`
	MaxWallTime        string `json:"maxWallTime"`
	MaxCPUTime         string `json:"maxCpuTime"`
}

// Decode reads a configuration from a YAML or JSON document. Limits
// are Go duration strings or "unbounded"; missing limits are
// unbounded.
func Decode(data []byte) (Configuration, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Configuration{}, errors.Wrap(err, "invalid configuration document")
	}
	c := Default()
	c.ForceDeterministic = doc.ForceDeterministic
	var err error
	if c.MaxWallTime, err = ParseLimit(doc.MaxWallTime); err != nil {
		return Configuration{}, errors.Wrap(err, "invalid maxWallTime")
	}
	if c.MaxCPUTime, err = ParseLimit(doc.MaxCPUTime); err != nil {
		return Configuration{}, errors.Wrap(err, "invalid maxCpuTime")
	}
	return c, nil
}

// Load reads the configuration file at path.
func Load(path string) (Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, errors.Wrapf(err, "failed to read configuration %s", path)
	}
	c, err := Decode(data)
	if err != nil {
		return Configuration{}, errors.Wrapf(err, "failed to load configuration %s", path)
	}
	return c, nil
}
