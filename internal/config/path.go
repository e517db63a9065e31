// Package config loads settings from flags, the environment and config files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const appDir = "spice"

// ExpandPath resolves a leading ~ to the home directory, then $VARS.
// A path whose home directory cannot be found keeps its ~.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}
	return os.ExpandEnv(path)
}

// ConfigDir is the directory holding config.yaml and cached tokens:
// $XDG_CONFIG_HOME/spice, or ~/.config/spice.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", appDir), nil
}

// ConfigPath joins name onto ConfigDir.
func ConfigPath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
