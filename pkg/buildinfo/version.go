// Package buildinfo holds the version stamped into emojiwall builds.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/emojiwall/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/emojiwall/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/emojiwall/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/emojiwall
//
// `emojiwall --version` and the server's /healthz endpoint report them.
package buildinfo

import "fmt"

// Set by ldflags; the defaults mark a local build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build description served by /healthz.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"built"`
}

// Current returns the stamped build information.
func Current() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Dev reports whether this is an unstamped local build.
func (i Info) Dev() bool {
	return i.Version == "dev"
}

// Template returns the cobra --version template.
func Template() string {
	i := Current()
	if i.Dev() {
		return "{{.Name}} dev build (commit " + i.Commit + ")\n"
	}
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", i.Version, i.Commit, i.Date)
}
