package buildinfo

import (
	"runtime"
	"runtime/debug"
	"sync"
)

// Set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info contains build information.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Modified  bool   `json:"modified,omitempty" yaml:"modified,omitempty"`
}

var readBuildInfo = debug.ReadBuildInfo

var (
	once   sync.Once
	cached Info
)

// Get returns the build information. The result is computed once.
func Get() Info {
	once.Do(func() {
		cached = resolve(readBuildInfo)
	})
	return cached
}

func resolve(read func() (*debug.BuildInfo, bool)) Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}

	bi, ok := read()
	if !ok {
		return info
	}
	if bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" {
				info.Commit = shortRevision(s.Value)
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

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// String returns a one-line version string.
func String() string {
	info := Get()
	s := info.Version + " (" + info.Commit
	if info.Modified {
		s += ", modified"
	}
	return s + ") built at " + info.BuildTime
}
