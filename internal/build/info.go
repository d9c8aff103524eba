package build

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	_ "embed"
)

//go:embed VERSION
var rawVersion []byte

// Build information, overridable with -ldflags "-X".
var (
	Version   = ""
	Commit    = ""
	BuildTime = ""
	GoVersion = runtime.Version()
	Platform  = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
	StartTime = time.Now()
)

//nolint:gochecknoinits // fall back to the embedded VERSION file.
func init() {
	if Version == "" {
		Version = strings.TrimSpace(string(rawVersion))
	}
}

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Uptime    string `json:"uptime"`
}

func GetBuildInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		Platform:  Platform,
		Uptime:    time.Since(StartTime).Truncate(time.Second).String(),
	}
}

func (i Info) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Version: %s\n", i.Version)

	if i.Commit != "" {
		fmt.Fprintf(&sb, "Commit: %s\n", i.Commit)
	}

	if i.BuildTime != "" {
		fmt.Fprintf(&sb, "Build Time: %s\n", i.BuildTime)
	}

	fmt.Fprintf(&sb, "Go Version: %s\n", i.GoVersion)
	fmt.Fprintf(&sb, "Platform: %s\n", i.Platform)
	fmt.Fprintf(&sb, "Uptime: %s\n", i.Uptime)

	return sb.String()
}
