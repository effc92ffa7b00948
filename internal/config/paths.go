package config

import (
	"os"
	"path/filepath"
)

// GetGlobalConfigDir returns the global configuration directory (~/.smarttask).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".smarttask"), nil
}

// ResolveDataDir returns the directory holding the task slot.
// Resolution order (first match wins):
// 1. Explicit storage.dir
// 2. Local project directory ./.smarttask (if it exists)
// 3. $XDG_DATA_HOME/smarttask (if XDG_DATA_HOME is set)
// 4. Global fallback ~/.smarttask
func ResolveDataDir(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if info, err := os.Stat(ProjectDir); err == nil && info.IsDir() {
		return ProjectDir
	}
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "smarttask")
	}
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return ProjectDir
	}
	return dir
}
