// Package version reports how the implgen binary was built and which
// snapshot schema it reads.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/implgen/symbols/snapshot"
)

// Overridden with -ldflags "-X github.com/teranos/implgen/version.Version=...".
var (
	Version    = "dev"
	CommitHash = "dev"
	BuildTime  = "unknown"
)

// Info describes one implgen build.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	// Schema is the snapshot document version this build writes.
	Schema    string `json:"snapshot_schema"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func Get() Info {
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Schema:     snapshot.SchemaVersion,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Semver parses Version. Untagged builds return an error.
func (i Info) Semver() (*semver.Version, error) {
	return semver.NewVersion(i.Version)
}

// IsRelease reports whether the binary was built from a release tag.
func (i Info) IsRelease() bool {
	v, err := i.Semver()
	return err == nil && v.Prerelease() == ""
}

func (i Info) String() string {
	ver := i.Version
	if v, err := i.Semver(); err == nil {
		ver = "v" + v.String()
	}
	return fmt.Sprintf("implgen %s (commit %s, built %s)", ver, i.CommitHash, i.BuildTime)
}

// Short is the abbreviated commit hash.
func (i Info) Short() string {
	const n = 7
	if len(i.CommitHash) > n {
		return i.CommitHash[:n]
	}
	return i.CommitHash
}
