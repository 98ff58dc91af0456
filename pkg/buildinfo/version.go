// Package buildinfo holds the version stamped into the binary.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/ggframe/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/ggframe/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/ggframe/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/ggframe
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns a one-line description, e.g. "ggframe v1.2.0 (abc1234, 2026-01-02T10:00:00Z)".
func String() string {
	return fmt.Sprintf("ggframe %s (%s, %s)", Version, Commit, Date)
}

// Template returns the version template for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
