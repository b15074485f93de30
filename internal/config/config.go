package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/alnah/go-readmehelp/internal/fileutil"
	"github.com/alnah/go-readmehelp/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidModule   = errors.New("invalid module")
	ErrInvalidValue    = errors.New("invalid value")
)

// Field length limits.
const (
	MaxModuleNameLength = 100  // Machine name
	MaxPathLength       = 4096 // PATH_MAX on Linux
	MaxURLLength        = 2048 // Browser limit
	MaxStyleLength      = 50   // chroma style name
	MaxModules          = 1000
)

// MaxSnippetFileSize caps snippets.maxFileSize (64 MB).
const MaxSnippetFileSize int64 = 64 << 20

// userConfigDirName is the directory searched under os.UserConfigDir.
const userConfigDirName = "go-readmehelp"

// moduleNamePattern restricts names to what the embed directive grammar accepts
// as its first path segment.
var moduleNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Config holds all configuration for README conversion.
type Config struct {
	Modules  map[string]ModuleConfig `yaml:"modules"`
	Snippets SnippetsConfig          `yaml:"snippets"`
	Output   OutputConfig            `yaml:"output"`
	Assets   AssetsConfig            `yaml:"assets"`
}

// ModuleConfig locates one module.
type ModuleConfig struct {
	Dir string `yaml:"dir"` // Source directory; relative paths resolve against the config file
	URL string `yaml:"url"` // Public base URL for relative images (empty = leave targets as is)
}

// SnippetsConfig defines embedded source excerpt options.
type SnippetsConfig struct {
	MaxFileSize int64  `yaml:"maxFileSize"` // bytes, 0 = default (2 MB)
	Style       string `yaml:"style"`       // chroma style for --standalone and css (empty = github)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Standalone bool   `yaml:"standalone"` // Wrap fragments in a full HTML page
}

// AssetsConfig locates site overrides for the stylesheet and page template.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Directory with styles/ and templates/ (empty = embedded only)
}

// Validate checks module names, field lengths and numeric ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if len(c.Modules) > MaxModules {
		return fmt.Errorf("%w: modules: %d entries (max %d)", ErrInvalidValue, len(c.Modules), MaxModules)
	}

	for _, name := range c.ModuleNames() {
		m := c.Modules[name]
		if err := ValidateModuleName(name); err != nil {
			return err
		}
		if m.Dir == "" {
			return fmt.Errorf("%w: modules.%s.dir: required", ErrInvalidModule, name)
		}
		if err := validateFieldLength("modules."+name+".dir", m.Dir, MaxPathLength); err != nil {
			return err
		}
		if err := validateFieldLength("modules."+name+".url", m.URL, MaxURLLength); err != nil {
			return err
		}
		if m.URL != "" && !fileutil.IsURL(m.URL) {
			return fmt.Errorf("%w: modules.%s.url: %q must start with http:// or https://", ErrInvalidModule, name, m.URL)
		}
	}

	if c.Snippets.MaxFileSize < 0 || c.Snippets.MaxFileSize > MaxSnippetFileSize {
		return fmt.Errorf("%w: snippets.maxFileSize: must be between 0 and %d, got %d",
			ErrInvalidValue, MaxSnippetFileSize, c.Snippets.MaxFileSize)
	}
	if err := validateFieldLength("snippets.style", c.Snippets.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	return nil
}

// ValidateModuleName checks that name can appear as the module segment of an
// embed directive.
func ValidateModuleName(name string) error {
	if err := validateFieldLength("module name", name, MaxModuleNameLength); err != nil {
		return err
	}
	if !moduleNamePattern.MatchString(name) || name == "." || name == ".." {
		return fmt.Errorf("%w: name %q (letters, digits, '_', '-', '.')", ErrInvalidModule, name)
	}
	return nil
}

// ModuleNames returns the configured module names in sorted order.
func (c *Config) ModuleNames() []string {
	names := make([]string, 0, len(c.Modules))
	for name := range c.Modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration with no modules and default limits.
func DefaultConfig() *Config {
	return &Config{
		Modules:  map[string]ModuleConfig{},
		Snippets: SnippetsConfig{MaxFileSize: 0, Style: ""},
		Output:   OutputConfig{DefaultDir: "", Standalone: false},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Relative module directories are made absolute against the config file's
// directory. Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}
	if cfg.Modules == nil {
		cfg.Modules = map[string]ModuleConfig{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := filepath.Dir(configPath)
	cfg.resolveModuleDirs(base)
	if cfg.Assets.BasePath != "" {
		cfg.Assets.BasePath = resolveAgainst(base, cfg.Assets.BasePath)
	}
	return cfg, nil
}

// resolveModuleDirs makes relative module directories absolute against base.
func (c *Config) resolveModuleDirs(base string) {
	for name, m := range c.Modules {
		m.Dir = resolveAgainst(base, m.Dir)
		c.Modules[name] = m
	}
}

// resolveAgainst joins a relative path onto base and makes it absolute.
func resolveAgainst(base, path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-readmehelp/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, userConfigDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}
