// Package version identifies the glenum build that produced a file.
package version

import (
	"runtime"
	"runtime/debug"
)

// Tool is the generator name written into output banners.
const Tool = "glenum"

// Set at link time, e.g.
//
//	go build -ldflags "-X github.com/teranos/glenum/version.Version=v0.3.0 \
//	  -X github.com/teranos/glenum/version.Commit=$(git rev-parse HEAD)"
//
// Left empty, Get falls back to the module build info recorded by go install.
var (
	Version   = ""
	Commit    = ""
	BuildDate = ""
)

// Info describes the running binary.
type Info struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get collects build information.
func Get() Info {
	info := Info{
		Tool:      Tool,
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(&info, bi)
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	return info
}

func fillFromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = s.Value
			}
		}
	}
}

// Banner names the generator in output headers: "glenum v0.3.0" or, when
// the commit is known, "glenum v0.3.0 (a1b2c3d)".
func (i Info) Banner() string {
	b := i.Tool + " " + i.Version
	if c := shortCommit(i.Commit); c != "" {
		b += " (" + c + ")"
	}
	return b
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
