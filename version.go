package imagescore

import "runtime"

// Version is the semantic version of the imagescore library.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// VersionInfo contains detailed version information.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"` // set via ldflags
	BuildTime string `json:"build_time"` // set via ldflags
	GoVersion string `json:"go_version"`
}

// GetVersionInfo returns detailed version information.
//
// GitCommit and BuildTime are populated at build time via -ldflags and show
// "unknown" otherwise:
//
//	go build -ldflags="-X github.com/simonhull/imagescore.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/imagescore.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/imagescore
func GetVersionInfo() VersionInfo {
	goVer := goVersion
	if goVer == "unknown" {
		goVer = runtime.Version()
	}
	return VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: goVer,
	}
}

// Variables populated at build time via -ldflags.
var (
	gitCommit = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)
