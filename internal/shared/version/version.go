// Package version reports the build version of the binary.
package version

import (
	"runtime/debug"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is set at build time with -ldflags "-X fleetdesk/internal/shared/version.Version=v1.2.3".
var Version = "dev"

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// String returns the release version, or the module version from build info for
// untagged builds. Non-semver values are returned unchanged.
func String() string {
	if v := Normalize(Version); semver.IsValid(v) {
		return semver.Canonical(v)
	}
	if info, ok := debug.ReadBuildInfo(); ok && semver.IsValid(info.Main.Version) {
		return info.Main.Version
	}
	return Version
}
