// Package buildinfo carries the version stamp injected at build time.
//
// Release builds overwrite the defaults with ldflags:
//
//	go build -ldflags "\
//	    -X github.com/matzehuels/draftboard/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/draftboard/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/draftboard/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// A plain `go build` reports "dev", which is how local builds are told
// apart from releases.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the build info for logs and the serve banner.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra --version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
