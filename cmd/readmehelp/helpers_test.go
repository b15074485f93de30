package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// newTestEnv returns an Environment writing to buffers with a fixed clock.
func newTestEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &Environment{
		Now:    func() time.Time { return fixed },
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

// writeFile creates path with content, making parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
