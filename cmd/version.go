// Package cmd holds build-time metadata injected via ldflags by the
// release pipeline (-X github.com/thoreinstein/strata/cmd.Version=...).
package cmd

var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
