// Package version provides information about the build version of the service.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information. The service, version, commit, and date
// variables are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'deyimci/internal/core/version.version=v0.1.0'
	// -X 'deyimci/internal/core/version.commit=abcd' -X 'deyimci/internal/core/version.date=2026-08-29'"
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	service = "deyimci"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
