package pack

import "github.com/xyproto/env/v2"

// Mode selects which kind of distribution archive the packager builds.
type Mode int

const (
	// ModeRelease compiles the module into a standalone executable and
	// archives it with the launch script.
	ModeRelease Mode = iota
	// ModeReload archives the module source verbatim for a hot-reload
	// consumer that already has dependencies installed.
	ModeReload
)

func (m Mode) String() string {
	if m == ModeReload {
		return "reload"
	}
	return "release"
}

// ModeFromEnv reads the build mode selector once. MODKIT_RELOAD set to a
// truthy value selects reload mode; anything else means release. Callers
// construct the mode at startup and pass it explicitly so nothing
// re-reads the environment mid-build.
func ModeFromEnv() Mode {
	if env.Bool("MODKIT_RELOAD") {
		return ModeReload
	}
	return ModeRelease
}
