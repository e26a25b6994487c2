package version

import "runtime/debug"

// String reports the module version recorded at build time, or "(devel)"
// for local builds without release metadata.
func String() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "(devel)"
	}
	v := info.Main.Version
	if v == "" {
		return "(devel)"
	}
	return v
}
