// Package app provides the core application structure for the bigbuf CLI.
// It handles application lifecycle, command dispatching, and version management.
package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version, Commit and BuildDate identify the build. They default to
// development placeholders and are stamped by the release pipeline:
//
//	go build -ldflags="-X github.com/agbru/bigbuf/internal/app.Version=v1.2.3 ..."
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args contain a version flag in any
// position, so "bigbuf -server --version" prints the version instead of
// starting a server.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" || arg == "-V" {
			return true
		}
	}
	return false
}

// PrintVersion writes the build identification, one fact per line.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "bigbuf version %s\n", Version)
	fmt.Fprintf(out, "  commit %s, built %s\n", Commit, BuildDate)
	fmt.Fprintf(out, "  %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// VersionData holds the build identification for programmatic access,
// for instance from a health or status endpoint.
type VersionData struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetVersionInfo returns the current build identification.
func GetVersionInfo() VersionData {
	return VersionData{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
