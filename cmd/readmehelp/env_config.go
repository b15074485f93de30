package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-readmehelp/internal/config"
	"github.com/alnah/go-readmehelp/internal/hints"
)

// envPrefix marks the environment variables read by the CLI.
const envPrefix = "READMEHELP_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string // READMEHELP_CONFIG: config file name or path
	Style       string // READMEHELP_STYLE: chroma style name
	OutputDir   string // READMEHELP_OUTPUT_DIR: default output directory
	AssetPath   string // READMEHELP_ASSET_PATH: asset override directory
	Standalone  bool   // READMEHELP_STANDALONE: wrap output in a page
	Workers     int    // READMEHELP_WORKERS: parallel workers
	MaxFileSize int64  // READMEHELP_MAX_FILE_SIZE: snippet source limit in bytes
}

// knownEnvVars lists valid READMEHELP_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	hints.ConfigEnvVar:         true,
	"READMEHELP_STYLE":         true,
	"READMEHELP_OUTPUT_DIR":    true,
	"READMEHELP_ASSET_PATH":    true,
	"READMEHELP_STANDALONE":    true,
	"READMEHELP_WORKERS":       true,
	"READMEHELP_MAX_FILE_SIZE": true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and booleans are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv(hints.ConfigEnvVar),
		Style:      os.Getenv("READMEHELP_STYLE"),
		OutputDir:  os.Getenv("READMEHELP_OUTPUT_DIR"),
		AssetPath:  os.Getenv("READMEHELP_ASSET_PATH"),
	}

	if v := os.Getenv("READMEHELP_STANDALONE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Standalone = b
		}
	}

	if workers := os.Getenv("READMEHELP_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if size := os.Getenv("READMEHELP_MAX_FILE_SIZE"); size != "" {
		if n, err := strconv.ParseInt(size, 10, 64); err == nil && n > 0 {
			cfg.MaxFileSize = n
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized READMEHELP_* variables.
func warnUnknownEnvVars(logger zerolog.Logger) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				logger.Warn().Str("name", name).Msg("unknown environment variable (typo?)")
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.Snippets.Style == "" {
		cfg.Snippets.Style = env.Style
	}
	if env.MaxFileSize > 0 && cfg.Snippets.MaxFileSize == 0 {
		cfg.Snippets.MaxFileSize = env.MaxFileSize
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Standalone {
		cfg.Output.Standalone = true
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}
