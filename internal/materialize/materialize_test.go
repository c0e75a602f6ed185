package materialize

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestWriteProgram(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "frob.go")

	if err := WriteProgram(path, "package main\n"); err != nil {
		t.Fatalf("WriteProgram: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "package main\n" {
		t.Fatalf("unexpected content %q", data)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm()&0o111 == 0 {
			t.Fatalf("program not executable: %v", info.Mode())
		}
	}

	// The temp file must be gone after the rename.
	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".frob.go.") {
			t.Fatalf("leftover temp artifact %s", e.Name())
		}
	}
}

func TestWriteProgramNoPartialArtifact(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "missing", "frob.go")

	if err := WriteProgram(path, "package main\n"); err == nil {
		t.Fatal("expected error for missing directory")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("partial artifact left behind: %v", err)
	}
}

func TestWriteTestStub(t *testing.T) {
	tmp := t.TempDir()
	output := filepath.Join(tmp, "frob.go")

	path, err := WriteTestStub(output, "frob", "package main\n")
	if err != nil {
		t.Fatalf("WriteTestStub: %v", err)
	}
	want := filepath.Join(tmp, "test", "frob_test.go")
	if path != want {
		t.Fatalf("stub path = %s, want %s", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}

func TestWriteConfigTemplate(t *testing.T) {
	tmp := t.TempDir()
	output := filepath.Join(tmp, "frob.go")

	path, err := WriteConfigTemplate(output, "frob", "args:\n")
	if err != nil {
		t.Fatalf("WriteConfigTemplate: %v", err)
	}
	if want := filepath.Join(tmp, "frob_conf.yaml"); path != want {
		t.Fatalf("template path = %s, want %s", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "args:\n" {
		t.Fatalf("unexpected content %q", data)
	}
}
