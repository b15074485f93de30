package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	readmehelp "github.com/alnah/go-readmehelp"
	"github.com/alnah/go-readmehelp/internal/hints"
)

// runCSSCmd prints the stylesheet embedded in standalone pages, so sites that
// serve fragments can link it once.
func runCSSCmd(args []string, env *Environment) error {
	flags, positional, err := parseCSSFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: %v", ErrUnexpectedArgs, positional)
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	if flags.assets.style != "" {
		cfg.Snippets.Style = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	conv, err := readmehelp.NewConverter(
		readmehelp.WithStyle(cfg.Snippets.Style),
		readmehelp.WithAssetPath(cfg.Assets.BasePath),
		readmehelp.WithLogger(newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)),
	)
	if err != nil {
		if errors.Is(err, readmehelp.ErrStyleNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(readmehelp.StyleNames()))
		}
		return err
	}

	fmt.Fprint(env.Stdout, conv.Stylesheet())
	return nil
}
