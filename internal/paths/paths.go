// SPDX-License-Identifier: AGPL-3.0-or-later

// Package paths resolves where stubgen keeps its generation history.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
)

const (
	appDirName = "stubgen"
	envDataDir = "STUBGEN_DATA_DIR"
)

var override atomic.Pointer[string]

// SetDataDirOverride pins the data directory to an explicit location.
// Passing an empty string clears the override.
func SetDataDirOverride(dir string) {
	if dir == "" {
		override.Store(nil)
		return
	}
	clean := filepath.Clean(dir)
	override.Store(&clean)
}

// DataDir returns the directory holding the history database. Precedence:
// the explicit override, then STUBGEN_DATA_DIR, then a stubgen directory
// under the per-user data root, then the working directory, then temp.
func DataDir() string {
	if ptr := override.Load(); ptr != nil && *ptr != "" {
		return *ptr
	}
	if dir := os.Getenv(envDataDir); dir != "" {
		return filepath.Clean(dir)
	}
	if base := userDataRoot(); base != "" {
		return filepath.Join(base, appDirName)
	}
	if cwd, err := os.Getwd(); err == nil && cwd != "" {
		return filepath.Join(cwd, "."+appDirName)
	}
	return filepath.Join(os.TempDir(), appDirName)
}

// userDataRoot locates the per-user application-data root, honouring
// XDG_DATA_HOME before the platform convention.
func userDataRoot() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return xdg
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Local")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support")
	}
	return filepath.Join(home, ".local", "share")
}
