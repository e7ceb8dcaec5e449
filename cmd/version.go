// Package cmd holds the build metadata stamped into release binaries.
package cmd

// Overridden with -ldflags "-X github.com/thoreinstein/ersm/cmd.Version=..."
// and friends at release time. The defaults identify a source build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
