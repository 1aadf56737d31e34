package version

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teranos/implgen/symbols/snapshot"
)

func TestInfo(t *testing.T) {
	tests := []struct {
		name    string
		info    Info
		release bool
		str     string
		short   string
	}{
		{
			name:  "dev build",
			info:  Info{Version: "dev", CommitHash: "dev", BuildTime: "unknown"},
			str:   "implgen dev (commit dev, built unknown)",
			short: "dev",
		},
		{
			name:    "release tag",
			info:    Info{Version: "v1.2.3", CommitHash: "0123456789abcdef", BuildTime: "2026-10-01"},
			release: true,
			str:     "implgen v1.2.3 (commit 0123456789abcdef, built 2026-10-01)",
			short:   "0123456",
		},
		{
			name:  "prerelease",
			info:  Info{Version: "1.3.0-rc.1", CommitHash: "abc", BuildTime: "now"},
			str:   "implgen v1.3.0-rc.1 (commit abc, built now)",
			short: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.release, tt.info.IsRelease())
			assert.Equal(t, tt.str, tt.info.String())
			assert.Equal(t, tt.short, tt.info.Short())
		})
	}
}

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, snapshot.SchemaVersion, info.Schema)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
