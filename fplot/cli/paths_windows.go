package cli

import (
	"os"
	"path/filepath"
)

func (a appPaths) ConfigDir() string {
	c, err := os.UserConfigDir()
	if err != nil {
		c = a.home
	}
	return filepath.Join(c, a.tag)
}

func (a appPaths) LogDir() string {
	c, err := os.UserCacheDir()
	if err != nil {
		c = a.home
	}
	return filepath.Join(c, "Logs", a.tag)
}

func (a appPaths) SessionDir() string {
	if docs := filepath.Join(a.home, "Documents"); a.home != "" {
		return filepath.Join(docs, a.tag)
	}
	return ""
}
