package pipeline

import (
	"path/filepath"
	"strings"
)

// resolveImageTarget prefixes a relative image target with the module base URL.
// Absolute URLs, anchors, rooted paths and targets without a base are returned
// unchanged.
//
// Examples with base "https://host/modules/foo":
//   - "images/logo.png"   -> "https://host/modules/foo/images/logo.png"
//   - "./images/logo.png" -> "https://host/modules/foo/images/logo.png"
//   - "https://cdn/x.png" -> unchanged
func resolveImageTarget(target, base string) string {
	if base == "" || !isRelativePath(target) {
		return target
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimPrefix(target, "./")
}

// isRelativePath returns true if the target should be resolved against a base.
func isRelativePath(path string) bool {
	if path == "" {
		return false
	}

	// Skip URLs (http, https, file, data, mailto, protocol-relative)
	if isAbsoluteURL(path) ||
		strings.HasPrefix(path, "file://") ||
		strings.HasPrefix(path, "data:") ||
		strings.HasPrefix(path, "mailto:") ||
		strings.HasPrefix(path, "//") {
		return false
	}

	// Skip anchors and rooted paths
	return !strings.HasPrefix(path, "#") && !strings.HasPrefix(path, "/")
}

// isAbsoluteURL reports whether s is an http or https URL.
func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// isScriptURL reports whether s uses a scheme that executes code when followed.
func isScriptURL(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(v, "javascript:") || strings.HasPrefix(v, "vbscript:")
}

// joinModulePath joins a slash-separated module-relative path onto the module
// directory. Returns false when the result would leave the directory.
func joinModulePath(dir, rel string) (string, bool) {
	if dir == "" || rel == "" || filepath.IsAbs(filepath.FromSlash(rel)) {
		return "", false
	}
	full := filepath.Join(dir, filepath.FromSlash(rel))
	if !isPathUnderDir(full, dir) {
		return "", false
	}
	return full, true
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	// Ensure dir ends with separator for correct prefix matching
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath, cleanDir)
}
