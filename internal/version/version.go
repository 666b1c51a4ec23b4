package version

import (
	"fmt"
	"runtime"
)

// Build information. Populated at build-time via ldflags:
//
//	-X github.com/zgpcy/wallclock/internal/version.Version=v1.0.0
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns version information as metric labels
func Info() map[string]string {
	return map[string]string{
		"version":    Version,
		"git_commit": GitCommit,
		"build_date": BuildDate,
		"go_version": runtime.Version(),
	}
}

// String returns a one-line description of the build
func String() string {
	return fmt.Sprintf("wallclock %s (commit %s, built %s, %s)", Version, GitCommit, BuildDate, runtime.Version())
}
