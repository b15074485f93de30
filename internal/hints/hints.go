// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"os"
	"strings"
)

// ConfigEnvVar names the environment variable the CLI reads a config from.
const ConfigEnvVar = "READMEHELP_CONFIG"

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-readmehelp/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-readmehelp") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForModuleNotFound returns hints when a document refers to an unknown module.
// Lists the configured modules, or explains how to declare one.
func ForModuleNotFound(module string, known []string) string {
	if len(known) > 0 {
		return format("configured modules: " + strings.Join(known, ", "))
	}

	hint := fmt.Sprintf("add --module-dir %s=DIR or declare modules.%s in a config file", module, module)
	if os.Getenv(ConfigEnvVar) == "" {
		hint += " (set " + ConfigEnvVar + " to load one automatically)"
	}
	return format(hint)
}

// ForDroppedSnippets returns a hint when snippet directives were removed.
// Nothing is suggested when verbose logging is already on.
func ForDroppedSnippets(count int, verbose bool) string {
	if count == 0 || verbose {
		return ""
	}
	return format(fmt.Sprintf("%d snippet directive(s) could not be resolved; rerun with --verbose for details", count))
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForFileTooLarge returns a hint for snippet files over the size limit.
func ForFileTooLarge() string {
	return format("raise snippets.maxFileSize or pass --max-file-size")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
