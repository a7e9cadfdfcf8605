// Package config resolves wallmatch settings and filesystem locations.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AppName names the config directory and environment prefix.
const AppName = "wallmatch"

// ExpandPath expands a leading ~ and $VAR references in a path.
func ExpandPath(path string) string {
	switch {
	case path == "":
		return path
	case path == "~", strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}

// Dir returns $HOME/.config/wallmatch.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// LogPath returns the log file used while the terminal UI owns stderr.
func LogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName+".log"), nil
}
