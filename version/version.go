// Package version reports the build identity of the running product binary.
package version

import (
	"runtime/debug"
	"strings"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/tenantify/apikit/version.Version=1.4.0 \
//	  -X github.com/tenantify/apikit/version.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/tenantify/apikit/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Fields left empty fall back to the module build info stamped by the Go
// toolchain, so binaries built with a plain `go build` still report their
// VCS revision.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Info is the resolved build identity.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	Dirty     bool   `json:"dirty,omitempty"`
}

// Get resolves build identity from the ldflags variables, filling gaps from
// the embedded module build info.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
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
			if info.Commit == "" {
				info.Commit = shortCommit(s.Value)
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

// Release reports whether this is a tagged, clean release build.
func (i Info) Release() bool {
	return i.Version != "dev" && !i.Dirty
}

// String renders the compact form used in startup logs and probe responses,
// e.g. "1.4.0+3f9c2ab" or "dev+3f9c2ab.dirty".
func (i Info) String() string {
	var b strings.Builder
	b.WriteString(i.Version)
	if i.Commit != "" {
		b.WriteString("+")
		b.WriteString(shortCommit(i.Commit))
	}
	if i.Dirty {
		b.WriteString(".dirty")
	}
	return b.String()
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
