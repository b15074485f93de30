// Package fileutil provides file and path utility functions.
package fileutil

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxFileSize bounds source files read for snippets (2 MB).
const DefaultMaxFileSize int64 = 2 << 20

// Sentinel errors for file utility operations.
var (
	ErrFileTooLarge = errors.New("file exceeds maximum size")
	ErrNotRegular   = errors.New("not a regular file")
	ErrEmptyPath    = errors.New("path cannot be empty")
	ErrPathEscape   = errors.New("path escapes base directory")
)

// ReadLines reads a text file and splits it into lines without terminators.
// Files larger than maxSize bytes are rejected; maxSize <= 0 selects
// DefaultMaxFileSize. A trailing newline does not produce an empty last line,
// and CRLF line endings are stripped.
func ReadLines(path string, maxSize int64) ([]string, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	f, err := os.Open(path) // #nosec G304 -- callers confine path to a module directory
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("%w: %s (%d bytes, max %d)", ErrFileTooLarge, path, info.Size(), maxSize)
	}

	// The limit guards against files growing between Stat and Read.
	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: %s (max %d bytes)", ErrFileTooLarge, path, maxSize)
	}

	return splitLines(string(data)), nil
}

// splitLines splits content on \n, dropping \r before it and the empty
// element a trailing newline would create.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), len(content)+1)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	return lines
}

// WriteFileAtomic writes content to path through a temporary file in the same
// directory, then renames it into place. A failed write leaves no partial file.
func WriteFileAtomic(path, content string) error {
	if path == "" {
		return ErrEmptyPath
	}

	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".readmehelp-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil { // #nosec G302 -- output is a public help page
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ContainedPath resolves filePath and verifies it stays strictly inside
// baseDir. Symlinks are resolved on both sides so a link pointing outside
// baseDir is rejected. A filePath that does not exist yet is checked as given.
// Returns the absolute, resolved path.
func ContainedPath(baseDir, filePath string) (string, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("%w: cannot resolve base: %v", ErrPathEscape, err)
	}
	if resolved, err := filepath.EvalSymlinks(absBase); err == nil {
		absBase = resolved
	}

	absFile, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: cannot resolve path: %v", ErrPathEscape, err)
	}
	if resolved, err := filepath.EvalSymlinks(absFile); err == nil {
		absFile = resolved
	}

	// Separator suffix rejects prefix siblings such as /base/path vs /base/pathevil.
	if !strings.HasPrefix(absFile, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscape, filePath)
	}
	return absFile, nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "readmehelp" -> false (name)
//   - "./site.yaml" -> true (relative path)
//   - "/etc/readmehelp/site.yaml" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like an http or https URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
