package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoString(t *testing.T) {
	info := Info{Version: "dev", CommitHash: "abc1234def", BuildTime: "2026-01-01"}
	assert.Equal(t, "witgen dev (commit abc1234, built 2026-01-01)", info.String())

	info.Version = "v0.3.0"
	info.Modified = true
	assert.Equal(t, "witgen v0.3.0 (commit abc1234-dirty, built 2026-01-01)", info.String())
}

func TestInfoShort(t *testing.T) {
	assert.Equal(t, "abc1234", Info{CommitHash: "abc1234def"}.Short())
	assert.Equal(t, "unknown", Info{CommitHash: "unknown"}.Short())
}

func TestFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.2.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	info := fromBuildInfo(Info{}, bi)
	assert.Equal(t, "v0.2.1", info.Version)
	assert.Equal(t, "0123456789abcdef", info.CommitHash)
	assert.Equal(t, "2026-10-01T12:00:00Z", info.BuildTime)
	assert.True(t, info.Modified)

	// ldflags values win
	info = fromBuildInfo(Info{Version: "v1.0.0", CommitHash: "feedbee"}, bi)
	assert.Equal(t, "v1.0.0", info.Version)
	assert.Equal(t, "feedbee", info.CommitHash)
}

func TestFromBuildInfoDevel(t *testing.T) {
	info := withDefaults(fromBuildInfo(Info{}, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}))
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "unknown", info.CommitHash)
	assert.Equal(t, "unknown", info.BuildTime)
}

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.CommitHash)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
