// Package version exposes the build's version information, combining the
// release number with VCS details picked up from the Go build system.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the release number.
const Version = "1.2.0"

// Short returns the bare version string.
func Short() string {
	return "v" + Version
}

// Detailed returns the version together with commit, build date and
// platform, as far as the build recorded them.
func Detailed() string {
	s := "acadsave " + Short()

	commit, date, modified := vcsInfo()
	if commit != "" {
		if len(commit) > 12 {
			commit = commit[:12]
		}
		if modified {
			commit += "+dirty"
		}
		s += fmt.Sprintf(" (%s)", commit)
	}
	if date != "" {
		s += " built " + date
	}

	return fmt.Sprintf("%s %s/%s %s", s, runtime.GOOS, runtime.GOARCH, runtime.Version())
}

// vcsInfo extracts the commit hash, commit time and modified flag recorded
// by the Go toolchain when the binary was built inside a repository.
func vcsInfo() (commit, date string, modified bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", "", false
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
		case "vcs.time":
			date = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	return commit, date, modified
}
