// Package misc holds small program-wide helpers which do not belong anywhere
// else: application name and build identification.
package misc

import "runtime/debug"

const appName = "verso"

// set by the linker during release builds
var version = "development"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns VCS revision recorded in the build info, if any.
func GetGitHash() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
