// Package version reports build information for prosecraft
package version

import (
	"runtime"
	"runtime/debug"
)

// Defaults the linker leaves in place when no ldflags are given.
const (
	unsetVersion = "dev"
	unsetValue   = "unknown"
)

// Info holds version information for a build
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
	Modified  bool   `json:"modified,omitempty" yaml:"modified,omitempty"`
}

// Get merges ldflags values with the module build info. Build info only fills
// fields the linker left at their defaults.
func Get(version, commit, buildDate string) Info {
	info := Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = info.merge(bi)
	}
	return info
}

func (v Info) merge(bi *debug.BuildInfo) Info {
	if (v.Version == "" || v.Version == unsetVersion) && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		v.Version = bi.Main.Version
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if (v.Commit == "" || v.Commit == unsetValue) && setting.Value != "" {
				v.Commit = setting.Value
				if len(v.Commit) > 7 {
					v.Commit = v.Commit[:7]
				}
			}
		case "vcs.time":
			if (v.BuildDate == "" || v.BuildDate == unsetValue) && setting.Value != "" {
				v.BuildDate = setting.Value
			}
		case "vcs.modified":
			v.Modified = setting.Value == "true"
		}
	}
	if v.Version == "" {
		v.Version = unsetVersion
	}
	return v
}

// Short is the one-word version, with a -dirty suffix for modified trees.
func (v Info) Short() string {
	if v.Modified {
		return v.Version + "-dirty"
	}
	return v.Version
}
