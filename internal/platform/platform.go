// Package platform locates the per-user directories prosecraft reads and writes.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDir = "prosecraft"

// ConfigDir returns the per-user config directory, honoring PROSECRAFT_HOME.
func ConfigDir() (string, error) {
	if home := os.Getenv("PROSECRAFT_HOME"); home != "" {
		return home, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// DataDir returns the per-user directory for stored preferences and sessions.
func DataDir() (string, error) {
	if home := os.Getenv("PROSECRAFT_HOME"); home != "" {
		return filepath.Join(home, "data"), nil
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir), nil
	}
	base, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating data directory: %w", err)
	}
	return filepath.Join(base, ".local", "share", appDir), nil
}
