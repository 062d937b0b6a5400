// Package version resolves the version string reported by the CLI.
package version

import (
	"runtime/debug"
	"strings"
)

// Resolve returns v, or a version derived from the build info when v is
// empty (for binaries built without ldflags).
func Resolve(v string) string {
	if v != "" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) string {
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return "devel"
	}

	ver := "devel+" + shortRevision(revision)
	if dirty {
		ver += "+dirty"
	}
	return ver
}

// IsDevelopment reports whether v names an unreleased build.
func IsDevelopment(v string) bool {
	return v == "" || v == "unknown" || strings.HasPrefix(v, "devel")
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
