package version

import "fmt"

// MPSolverVersion indicates what version of mpsolver the binary belongs to
var MPSolverVersion string

// GitCommit indicates which git commit the binary was built from
var GitCommit string

// String returns a pretty string concatenation of MPSolverVersion and GitCommit
func String() string {
	return fmt.Sprintf("mpsolver version: %s\n      Git commit: %s\n", orUnknown(MPSolverVersion), orUnknown(GitCommit))
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
