package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// ErrInvalidAssignment reports a --module-dir or --module-url value that is
// not of the form name=value.
var ErrInvalidAssignment = errors.New("expected name=value")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// moduleFlags holds module selection and location flags.
type moduleFlags struct {
	name string   // Module of the converted documents
	dirs []string // name=dir overrides
	urls []string // name=url overrides
}

// assetFlags holds page styling flags.
type assetFlags struct {
	style     string // chroma style name
	assetPath string // Override asset directory
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	output      string
	workers     int
	standalone  bool
	maxFileSize int64
	module      moduleFlags
	assets      assetFlags
}

// cssFlags holds flags for the css command.
type cssFlags struct {
	common commonFlags
	assets assetFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addModuleFlags adds module flags to a FlagSet.
func addModuleFlags(fs *flag.FlagSet, f *moduleFlags) {
	fs.StringVarP(&f.name, "module", "m", "", "module of the converted documents")
	fs.StringArrayVar(&f.dirs, "module-dir", nil, "module source directory as name=dir (repeatable)")
	fs.StringArrayVar(&f.urls, "module-url", nil, "module public base URL as name=url (repeatable)")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "chroma highlight style")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding styles/ and templates/")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.standalone, "standalone", false, "wrap output in a full HTML page")
	fs.Int64Var(&f.maxFileSize, "max-file-size", 0, "max snippet source size in bytes (0 = default)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addModuleFlags(fs, &f.module)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printConvertUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCSSFlags parses css command flags and returns positional args.
func parseCSSFlags(args []string, w io.Writer) (*cssFlags, []string, error) {
	fs := flag.NewFlagSet("css", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &cssFlags{}

	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printCSSUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseConfigFlags parses config command flags and returns positional args.
func parseConfigFlags(args []string, w io.Writer) (*commonFlags, []string, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &commonFlags{}

	addCommonFlags(fs, f)

	fs.Usage = func() { printConfigUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseAssignments splits name=value pairs. The last assignment of a name wins.
func parseAssignments(flagName string, values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, v := range values {
		name, value, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" || value == "" {
			return nil, fmt.Errorf("--%s %q: %w", flagName, v, ErrInvalidAssignment)
		}
		out[name] = value
	}
	return out, nil
}
