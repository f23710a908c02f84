// Package testutil provides utilities for testing wdm in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Env holds the isolated directories created by SetupTestEnv.
type Env struct {
	Root       string
	ConfigDir  string
	InstallDir string
	ConfigFile string // WDM_CONFIG, not created
}

// SetupTestEnv creates isolated test directories for each test and points
// the WDM_* variables and the user config directory at them, so tests never
// read the user's real configuration.
//
// The cleanup function is automatically handled by t.TempDir(),
// so callers don't need to manually clean up.
func SetupTestEnv(t *testing.T) Env {
	t.Helper()

	tmpDir := t.TempDir()
	env := Env{
		Root:       tmpDir,
		ConfigDir:  filepath.Join(tmpDir, "config"),
		InstallDir: filepath.Join(tmpDir, "drivers"),
	}
	env.ConfigFile = filepath.Join(env.ConfigDir, "wdm", "wdm.lua")

	t.Setenv("XDG_CONFIG_HOME", env.ConfigDir)
	t.Setenv("WDM_CONFIG", env.ConfigFile)
	t.Setenv("WDM_INSTALL_DIR", "")
	t.Setenv("WDM_MANIFEST_URL", "")

	if err := os.MkdirAll(env.ConfigDir, 0o750); err != nil {
		t.Fatalf("failed to create test directory %s: %v", env.ConfigDir, err)
	}

	return env
}
