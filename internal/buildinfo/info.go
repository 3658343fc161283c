// Package buildinfo carries version data stamped in by the release build.
package buildinfo

// Set with -ldflags "-X github.com/bankist-dev/bankist/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
