package readmehelp

import "github.com/rs/zerolog"

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds settings resolved in NewConverter.
type converterConfig struct {
	style       string
	assetPath   string
	maxFileSize int64
	modules     map[string]Module
}

// WithResolver sets the module resolver. It replaces modules given to
// WithModules.
func WithResolver(r Resolver) Option {
	return func(c *Converter) {
		c.resolver = r
	}
}

// WithLineReader sets the source file reader used for embed directives.
func WithLineReader(r LineReader) Option {
	return func(c *Converter) {
		c.reader = r
	}
}

// WithHighlighter replaces the chroma highlighter.
func WithHighlighter(h Highlighter) Option {
	return func(c *Converter) {
		c.highlighter = h
	}
}

// WithModules registers modules on disk. Snippet sources are read only from
// inside these directories, symlinks included.
func WithModules(modules map[string]Module) Option {
	return func(c *Converter) {
		c.cfg.modules = modules
	}
}

// WithLogger sets the logger. Dropped directives log at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithStyle sets the chroma style embedded in standalone pages.
func WithStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.style = name
	}
}

// WithAssetPath overrides the stylesheet and page template from a directory
// holding styles/readmehelp.css and templates/page.html. Missing files fall
// back to the built-in ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithMaxFileSize bounds the size of snippet source files in bytes.
// Panics if n < 0 (programmer error, similar to time.NewTicker).
func WithMaxFileSize(n int64) Option {
	if n < 0 {
		panic("readmehelp: WithMaxFileSize size must not be negative")
	}
	return func(c *Converter) {
		c.cfg.maxFileSize = n
	}
}
