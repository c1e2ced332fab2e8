// Package version reports the rhom build.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via ldflags. When left unset, the VCS stamp embedded by
// the Go toolchain is used instead.
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info is the resolved build identity.
type Info struct {
	Commit    string
	BuildTime string
	Modified  bool
}

// Resolve merges ldflags values with the embedded build settings.
func Resolve() Info {
	info := Info{Commit: Commit, BuildTime: BuildTime}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = fromSettings(info, bi.Settings)
	}
	return info
}

func fromSettings(info Info, settings []debug.BuildSetting) Info {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "unknown" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String returns the version string (commit-hash based, no semver)
func String() string {
	return Resolve().String()
}

func (i Info) String() string {
	commit := i.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if i.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("rhom dev (commit: %s, built: %s)", commit, i.BuildTime)
}
