package paths

import (
	"path/filepath"
	"testing"
)

func TestDataDirPrecedence(t *testing.T) {
	envDir := filepath.Join(t.TempDir(), "from-env")
	t.Setenv(envDataDir, envDir)

	pinned := filepath.Join(t.TempDir(), "pinned")
	SetDataDirOverride(pinned)
	t.Cleanup(func() { SetDataDirOverride("") })

	if got := DataDir(); got != pinned {
		t.Fatalf("override ignored: got %s, want %s", got, pinned)
	}

	SetDataDirOverride("")
	if got := DataDir(); got != filepath.Clean(envDir) {
		t.Fatalf("env variable ignored: got %s, want %s", got, envDir)
	}
}

func TestDataDirXDG(t *testing.T) {
	t.Setenv(envDataDir, "")
	xdg := t.TempDir()
	t.Setenv("XDG_DATA_HOME", xdg)

	if got, want := DataDir(), filepath.Join(xdg, appDirName); got != want {
		t.Fatalf("DataDir() = %s, want %s", got, want)
	}
}
