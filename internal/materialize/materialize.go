// SPDX-License-Identifier: AGPL-3.0-or-later

// Package materialize writes generated artifacts to disk. Every write goes
// through a temp file in the destination directory followed by a rename, so
// a failure mid-write never leaves a partial artifact in place.
package materialize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteProgram writes the generated program to path and marks it executable.
func WriteProgram(path, src string) error {
	return write(path, src, 0o755)
}

// WriteTestStub writes the companion test next to the program, inside a
// test subdirectory, named <prog>_test.go. It returns the written path.
func WriteTestStub(outputPath, progName, src string) (string, error) {
	dir := filepath.Join(filepath.Dir(outputPath), "test")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create test dir: %w", err)
	}
	path := filepath.Join(dir, progName+"_test.go")
	if err := write(path, src, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteConfigTemplate writes <prog>_conf.yaml alongside the program and
// returns the written path.
func WriteConfigTemplate(outputPath, progName, src string) (string, error) {
	path := filepath.Join(filepath.Dir(outputPath), progName+"_conf.yaml")
	if err := write(path, src, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func write(path, content string, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := strings.NewReader(content).WriteTo(tmp); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		cleanup()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
