package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Set at build time with -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info is the build information reported by resourcectl and advertised to
// MCP clients.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit,omitempty" yaml:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty" yaml:"build_time,omitempty"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Dirty     bool   `json:"dirty,omitempty" yaml:"dirty,omitempty"`
}

// Get returns the build information, filling gaps from the module's
// embedded VCS settings.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}
	return info
}

// IsRelease reports whether the version is a tagged, clean build.
func (i Info) IsRelease() bool {
	return i.Version != "dev" && !i.Dirty && !strings.Contains(i.Version, "dirty")
}

// Short returns "<version>[-<commit>][-dirty]".
func (i Info) Short() string {
	s := i.Version
	if i.GitCommit != "" {
		s += "-" + i.GitCommit
	}
	if i.Dirty {
		s += "-dirty"
	}
	return s
}

// String returns the short version followed by the Go version and build time.
func (i Info) String() string {
	s := i.Short()
	if i.GoVersion != "" {
		s += " " + i.GoVersion
	}
	if i.BuildTime != "" {
		s += fmt.Sprintf(" (built %s)", i.BuildTime)
	}
	return s
}
