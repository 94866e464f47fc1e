// Package version reports build information for the hiero binary.
package version

import (
	"fmt"
	"runtime"

	"github.com/teranos/hiero/sym"
)

// Build information, set at build time via ldflags:
//
//	go build -ldflags "-X github.com/teranos/hiero/version.Version=v1.0.0"
var (
	CommitHash = "dev"
	BuildTime  = "unknown"
	Version    = "dev"
)

// Info contains version and build information
type Info struct {
	CommitHash   string `json:"commit_hash"`
	BuildTime    string `json:"build_time"`
	Version      string `json:"version"`
	TableVersion string `json:"table_version"`
	GoVersion    string `json:"go_version"`
	Platform     string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash:   CommitHash,
		BuildTime:    BuildTime,
		Version:      Version,
		TableVersion: sym.TableVersion,
		GoVersion:    runtime.Version(),
		Platform:     fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	name := "dev"
	if i.Version != "dev" {
		name = i.Version
	}
	return fmt.Sprintf("hiero %s (commit %s, built %s, tables %s)", name, i.Short(), i.BuildTime, i.TableVersion)
}

// Short returns the commit hash cut to seven characters
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
