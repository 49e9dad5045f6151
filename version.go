package geofeed

import "runtime/debug"

// Version is the release version. It is set at build time with
//
//	-ldflags "-X github.com/geofeed/validator.Version=v1.2.3"
var Version = ""

// BuildVersion returns Version, or the module version recorded in the
// binary when Version is not set. It falls back to "devel".
func BuildVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return "devel"
}
