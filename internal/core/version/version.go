// Package version provides information about the build version of the service.
package version

import "runtime/debug"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go,omitempty"`
}

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'acdat/internal/core/version.version=v0.1.0'
	// -X 'acdat/internal/core/version.commit=abcd' -X 'acdat/internal/core/version.date=2026-10-19'"
	bi := BuildInfo{
		Service: Service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	if info, ok := debug.ReadBuildInfo(); ok && info != nil {
		bi.Go = info.GoVersion
	}
	return bi
}

// Service is the name reported by the api and cli
const Service = "acdat"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
