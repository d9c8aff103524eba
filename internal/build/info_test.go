package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	assert.NotEmpty(t, info.Version)
	assert.Equal(t, GoVersion, info.GoVersion)
	assert.Contains(t, info.String(), "Version: "+info.Version)
}

func TestInfoStringOmitsEmptyFields(t *testing.T) {
	s := Info{Version: "v1", GoVersion: "go1", Platform: "linux/amd64", Uptime: "1s"}.String()

	assert.NotContains(t, s, "Commit:")
	assert.NotContains(t, s, "Build Time:")
	assert.Contains(t, s, "Platform: linux/amd64")
}
