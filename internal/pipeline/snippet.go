package pipeline

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// ModuleResolver locates an installed module.
type ModuleResolver interface {
	// ModulePath returns the directory holding the module's source files.
	ModulePath(module string) (string, bool)
	// ModuleURL returns the public base URL of the module, used for images.
	ModuleURL(module string) (string, bool)
}

// LineReader reads a source file as lines. Returns false when the file cannot
// be read for any reason.
type LineReader interface {
	ReadLines(path string) ([]string, bool)
}

// Highlighter renders source lines as a highlighted-snippet table. name is the
// file name of the excerpt and firstLine the number of lines[0] in that file.
type Highlighter interface {
	Highlight(name string, lines []string, firstLine int) string
}

// SnippetStats counts the directives handled by one injection pass.
type SnippetStats struct {
	Inserted int
	Dropped  int
}

// SnippetInjector defines the contract for replacing embed directives in
// converted HTML.
type SnippetInjector interface {
	InjectSnippets(ctx context.Context, htmlContent string) (string, SnippetStats, error)
}

// SnippetInjection resolves embed directives against module files and splices
// highlighted excerpts in their place.
type SnippetInjection struct {
	resolver    ModuleResolver
	reader      LineReader
	highlighter Highlighter
	logger      zerolog.Logger
}

// NewSnippetInjection creates an injector. A nil resolver or reader makes
// every directive unresolvable.
func NewSnippetInjection(resolver ModuleResolver, reader LineReader, highlighter Highlighter, logger zerolog.Logger) *SnippetInjection {
	return &SnippetInjection{
		resolver:    resolver,
		reader:      reader,
		highlighter: highlighter,
		logger:      logger,
	}
}

// InjectSnippets replaces every sentinel-wrapped directive in document order.
// Unresolvable directives are removed together with their sentinels. The only
// error is a done context.
func (s *SnippetInjection) InjectSnippets(ctx context.Context, htmlContent string) (string, SnippetStats, error) {
	var stats SnippetStats

	if err := ctx.Err(); err != nil {
		return "", stats, err
	}

	matches := directiveToken.FindAllStringSubmatchIndex(htmlContent, -1)
	if len(matches) == 0 {
		return htmlContent, stats, nil
	}

	var b strings.Builder
	b.Grow(len(htmlContent))
	last := 0

	for _, loc := range matches {
		if err := ctx.Err(); err != nil {
			return "", stats, err
		}

		b.WriteString(htmlContent[last:loc[0]])
		last = loc[1]

		d, ok := directiveFromMatch(submatches(htmlContent, loc))
		if !ok {
			stats.Dropped++
			continue
		}

		snippet, reason := s.render(d)
		if reason != "" {
			stats.Dropped++
			s.logger.Debug().
				Str("module", d.Module).
				Str("path", d.Path).
				Int("line", d.Line).
				Int("padding", d.Padding).
				Str("reason", reason).
				Msg("dropping snippet directive")
			continue
		}

		stats.Inserted++
		b.WriteString(snippet)
	}
	b.WriteString(htmlContent[last:])

	return b.String(), stats, nil
}

// render resolves d and returns the highlighted excerpt, or a non-empty reason
// why the directive cannot be honored.
func (s *SnippetInjection) render(d Directive) (string, string) {
	if s.resolver == nil || s.reader == nil || s.highlighter == nil {
		return "", "no collaborators"
	}

	dir, ok := s.resolver.ModulePath(d.Module)
	if !ok {
		return "", "module not found"
	}

	path, ok := joinModulePath(dir, d.Path)
	if !ok {
		return "", "path outside module"
	}

	lines, ok := s.reader.ReadLines(path)
	if !ok {
		return "", "file not readable"
	}

	start, end, ok := d.Window(len(lines))
	if !ok {
		return "", "line out of range"
	}

	return s.highlighter.Highlight(baseName(d.Path), lines[start-1:end], start), ""
}

// submatches expands submatch index pairs into strings. Unmatched groups are empty.
func submatches(s string, loc []int) []string {
	out := make([]string, len(loc)/2)
	for i := range out {
		if loc[2*i] >= 0 {
			out[i] = s[loc[2*i]:loc[2*i+1]]
		}
	}
	return out
}

// baseName returns the last element of a slash-separated path.
func baseName(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}
