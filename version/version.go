package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Version is the release name, overridden with -ldflags.
var Version = "dev"

// Info describes the running build.
type Info struct {
	Version   string    `json:"version"`
	Commit    string    `json:"commit,omitempty"`
	Modified  bool      `json:"modified"`
	CommitAt  time.Time `json:"commit_at,omitzero"`
	GoVersion string    `json:"go_version,omitempty"`
}

// Get returns the build identity of the running binary.
func Get() Info {
	return fromBuildInfo(Version, debug.ReadBuildInfo)
}

func fromBuildInfo(v string, read func() (*debug.BuildInfo, bool)) Info {
	info := Info{Version: v}
	bi, ok := read()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Commit = s.Value
			if len(info.Commit) > 7 {
				info.Commit = info.Commit[:7]
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		case "vcs.time":
			if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
				info.CommitAt = t
			}
		}
	}
	return info
}

// Short returns "version[-commit][-dirty]".
func (i Info) Short() string {
	s := i.Version
	if i.Commit != "" {
		s += "-" + i.Commit
	}
	if i.Modified {
		s += "-dirty"
	}
	return s
}

// String returns Short plus the Go version.
func (i Info) String() string {
	if i.GoVersion == "" {
		return i.Short()
	}
	return fmt.Sprintf("%s (%s)", i.Short(), i.GoVersion)
}
