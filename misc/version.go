// Package misc holds build identification helpers shared by command line
// front ends.
package misc

import "runtime/debug"

var (
	appName = "dcx"
	version = "development"
)

// GetAppName returns the short program name used for logger naming and
// derived file names.
func GetAppName() string {
	return appName
}

// GetVersion returns program version, set from build info when the binary
// was built from a tagged module.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return version
}

// GetGitHash returns vcs revision recorded in build info, empty string when
// unavailable.
func GetGitHash() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
