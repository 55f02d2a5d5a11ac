//go:build aix || dragonfly || freebsd || (js && wasm) || nacl || linux || netbsd || openbsd || solaris
// +build aix dragonfly freebsd js,wasm nacl linux netbsd openbsd solaris

package cli

import (
	"os"
	"path/filepath"
	"strings"
)

func (a appPaths) ConfigDir() string {
	c, err := os.UserConfigDir()
	if err != nil {
		c = filepath.Join(a.home, ".config")
	}
	return filepath.Join(c, strings.ToLower(a.tag))
}

func (a appPaths) LogDir() string {
	c, err := os.UserCacheDir()
	if err != nil {
		c = a.home
	}
	return filepath.Join(c, "logs", strings.ToLower(a.tag))
}

// SessionDir follows the XDG base directory layout.
func (a appPaths) SessionDir() string {
	d := os.Getenv("XDG_DATA_HOME")
	if d == "" {
		if a.home == "" {
			return ""
		}
		d = filepath.Join(a.home, ".local", "share")
	}
	return filepath.Join(d, strings.ToLower(a.tag), "sessions")
}
