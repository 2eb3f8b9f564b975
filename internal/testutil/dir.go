// Package testutil provides reusable fixtures for mirror tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDir is a temporary output directory seeded with files.
type TestDir struct {
	Path string
	t    *testing.T
}

// NewTestDir creates an empty temporary directory that is cleaned up with
// the test.
func NewTestDir(t *testing.T) *TestDir {
	t.Helper()
	return &TestDir{Path: t.TempDir(), t: t}
}

// WithFile writes a file into the directory and returns the TestDir for
// chaining. The path is relative to the directory root.
func (d *TestDir) WithFile(relPath, content string) *TestDir {
	d.t.Helper()
	fullPath := filepath.Join(d.Path, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		d.t.Fatalf("create parent dir for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		d.t.Fatalf("write %s: %v", relPath, err)
	}
	return d
}

// ReadFile returns a file's content, failing the test if it cannot be read.
func (d *TestDir) ReadFile(relPath string) string {
	d.t.Helper()
	data, err := os.ReadFile(filepath.Join(d.Path, relPath))
	if err != nil {
		d.t.Fatalf("read %s: %v", relPath, err)
	}
	return string(data)
}

// List returns the names of all regular files in the directory root.
func (d *TestDir) List() []string {
	d.t.Helper()
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		d.t.Fatalf("list %s: %v", d.Path, err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}

// AssertFileExists fails the test if the file does not exist.
func (d *TestDir) AssertFileExists(relPath string) {
	d.t.Helper()
	if _, err := os.Stat(filepath.Join(d.Path, relPath)); os.IsNotExist(err) {
		d.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (d *TestDir) AssertFileNotExists(relPath string) {
	d.t.Helper()
	if _, err := os.Stat(filepath.Join(d.Path, relPath)); err == nil {
		d.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (d *TestDir) AssertFileContains(relPath, substr string) {
	d.t.Helper()
	content := d.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		d.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// Snapshot captures every file's content keyed by name, for byte-for-byte
// comparison across operations.
func (d *TestDir) Snapshot() map[string]string {
	d.t.Helper()
	snap := make(map[string]string)
	for _, name := range d.List() {
		snap[name] = d.ReadFile(name)
	}
	return snap
}
