// Package buildinfo carries version metadata injected at link time with
// -ldflags "-X github.com/adam-gaia/howoldami/internal/buildinfo.Version=...".
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("howoldami %s (commit=%s, date=%s)", Version, Commit, Date)
}
