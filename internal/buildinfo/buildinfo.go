// Package buildinfo carries release metadata injected at build time.
package buildinfo

// Set via -ldflags for release binaries; empty for local builds, in which
// case the version command falls back to module build info.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
