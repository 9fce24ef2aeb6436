// Package version exposes build metadata stamped in at link time.
package version

import "fmt"

// Set via -ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns the full version line.
func String() string {
	return fmt.Sprintf("tb %s (%s, built %s)", Version, ShortCommit(Commit), Date)
}

// ShortCommit truncates a commit hash for display.
func ShortCommit(c string) string {
	if len(c) > 8 {
		return c[:8]
	}
	return c
}
