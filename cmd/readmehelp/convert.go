package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	readmehelp "github.com/alnah/go-readmehelp"
	"github.com/alnah/go-readmehelp/internal/config"
	"github.com/alnah/go-readmehelp/internal/fileutil"
	"github.com/alnah/go-readmehelp/internal/hints"
	"github.com/alnah/go-readmehelp/internal/modules"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrWriteHTML      = errors.New("failed to write HTML file")
	ErrUnknownModule  = errors.New("unknown module")
	ErrUnexpectedArgs = errors.New("unexpected arguments")
	ErrInvalidFlags   = errors.New("invalid flags")
)

// File permission constants.
const (
	dirPermissions = 0o750 // rwxr-x---: owner full, group read+execute
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	module     string            // Module given with --module, empty to infer
	standalone bool              // Wrap output in a page
	registry   *modules.Registry // Configured modules
	now        func() time.Time  // Clock for reported durations
}

// runConvertCmd parses convert flags, sets up logging and runs the conversion.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	undo, _ := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug().Msgf(format, args...)
	}))
	defer undo()

	return runConvert(ctx, positional, flags, logger, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, logger zerolog.Logger, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if len(positionalArgs) > 1 {
		return fmt.Errorf("%w: %v", ErrUnexpectedArgs, positionalArgs[1:])
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(logger)

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	registry, err := buildRegistry(cfg, &flags.module)
	if err != nil {
		return err
	}
	if name := flags.module.name; name != "" {
		if _, ok := registry.Lookup(name); !ok {
			return fmt.Errorf("%w: %s%s", ErrUnknownModule, name, hints.ForModuleNotFound(name, registry.Names()))
		}
	}

	if len(positionalArgs) == 0 {
		return ErrNoInput
	}
	inputPath := positionalArgs[0]

	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	conv, err := readmehelp.NewConverter(
		readmehelp.WithResolver(registry),
		readmehelp.WithLineReader(modules.NewFileReader(registry, cfg.Snippets.MaxFileSize, logger)),
		readmehelp.WithLogger(logger),
		readmehelp.WithStyle(cfg.Snippets.Style),
		readmehelp.WithAssetPath(cfg.Assets.BasePath),
	)
	if err != nil {
		if errors.Is(err, readmehelp.ErrStyleNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(readmehelp.StyleNames()))
		}
		return err
	}

	workers := readmehelp.ResolveWorkers(resolveWorkers(flags.workers, envCfg))
	logger.Debug().Int("files", len(files)).Int("workers", workers).Msg("starting conversion")

	params := &conversionParams{
		module:     flags.module.name,
		standalone: cfg.Output.Standalone,
		registry:   registry,
		now:        env.Now,
	}

	results := convertBatch(ctx, conv, workers, files, params)

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if hint := hints.ForDroppedSnippets(countResults(results).Dropped, flags.common.verbose); hint != "" {
		logger.Warn().Msg("some snippets were dropped" + hint)
	}
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}
	return nil
}

// loadConfig loads the config named by the flag, then the environment.
// Without either it returns the defaults.
func loadConfig(flagValue string, env *envConfig) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = env.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(configSearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// configSearchPaths returns the user config location tried for a config name.
func configSearchPaths(name string) []string {
	if fileutil.IsFilePath(name) {
		return nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "go-readmehelp", name+".yaml")}
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.assets.style != "" {
		cfg.Snippets.Style = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.maxFileSize != 0 {
		cfg.Snippets.MaxFileSize = flags.maxFileSize
	}
	if flags.standalone {
		cfg.Output.Standalone = true
	}
}

// buildRegistry creates the module registry from config, then applies
// --module-dir and --module-url overrides. A URL override needs the module to
// exist already, in config or through --module-dir.
func buildRegistry(cfg *config.Config, f *moduleFlags) (*modules.Registry, error) {
	registry, err := modules.NewRegistry(cfg.Modules)
	if err != nil {
		return nil, fmt.Errorf("registering modules: %w", err)
	}

	dirs, err := parseAssignments("module-dir", f.dirs)
	if err != nil {
		return nil, err
	}
	for name, dir := range dirs {
		if err := registry.SetDir(name, dir); err != nil {
			return nil, err
		}
	}

	urls, err := parseAssignments("module-url", f.urls)
	if err != nil {
		return nil, err
	}
	for name, url := range urls {
		if err := registry.SetURL(name, url); err != nil {
			return nil, fmt.Errorf("%w%s", err, hints.ForModuleNotFound(name, registry.Names()))
		}
	}
	return registry, nil
}

// resolveWorkers picks the worker flag, then the environment, 0 for auto.
func resolveWorkers(flagValue int, env *envConfig) int {
	if flagValue > 0 {
		return flagValue
	}
	return env.Workers
}
