package cli

import (
	"os"
	"path/filepath"
)

// AppPaths determines application specific paths for configuration,
// logging/tracing and saved plotting sessions.
type AppPaths interface {
	ConfigDir() string
	LogDir() string
	SessionDir() string
}

// DefaultAppPaths returns an AppPaths instance with platform-dependent defaults
// set, given appTag. appTag is a string specific to a client's application to identify it.
func DefaultAppPaths(appTag string) (AppPaths, error) {
	return appHome(appTag)
}

type appPaths struct {
	tag  string
	home string
}

var _ AppPaths = appPaths{}

func appHome(appTag string) (a appPaths, err error) {
	a = appPaths{tag: appTag}
	if a.home, err = os.UserHomeDir(); err != nil {
		a.home = ""
	}
	return
}

// sessionPath resolves the name of a session file. Names without a directory
// part live in the session directory, and get a ".yaml" suffix if they have
// none.
func sessionPath(paths AppPaths, name string) string {
	if filepath.Ext(name) == "" {
		name += ".yaml"
	}
	if filepath.Base(name) != name || paths == nil || paths.SessionDir() == "" {
		return name
	}
	dir := paths.SessionDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		tracer().Errorf("cannot create session directory: %v", err)
		return name
	}
	return filepath.Join(dir, name)
}
