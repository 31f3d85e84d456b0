package config

import (
	"os"
	"path/filepath"
)

const (
	// AppDirName is the directory under the user config dir holding FileName.
	AppDirName = "emergence"
	// FileName is the config file name.
	FileName = "emergence.conf"
)

// CandidatePaths lists config file locations in lookup order: the platform
// config directory, then %APPDATA%.
func CandidatePaths() []string {
	var paths []string

	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		paths = append(paths, filepath.Join(dir, AppDirName, FileName))
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		p := filepath.Join(appData, AppDirName, FileName)
		if len(paths) == 0 || paths[0] != p {
			paths = append(paths, p)
		}
	}

	return paths
}
