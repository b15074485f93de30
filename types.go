package readmehelp

import "github.com/alnah/go-readmehelp/internal/pipeline"

// Resolver locates installed modules. ModulePath gives the directory embed
// directives read from; ModuleURL gives the base for relative image targets.
type Resolver = pipeline.ModuleResolver

// LineReader reads a source file as lines, reporting false when it cannot.
type LineReader = pipeline.LineReader

// Highlighter renders source lines as a table carrying the
// "highlighted-snippet" class.
type Highlighter = pipeline.Highlighter

// Module locates one module for WithModules.
type Module struct {
	Dir string // source directory for embed directives
	URL string // public base URL for relative images (optional)
}

// Input contains conversion parameters.
type Input struct {
	Markdown   string // README text; empty input yields empty output
	Module     string // module the document belongs to, for relative images (optional)
	Standalone bool   // wrap the fragment in a full HTML page with CSS
	Title      string // page title when Standalone is set
}

// Result holds the output of one conversion.
type Result struct {
	HTML            string // fragment, or full page when Input.Standalone is set
	RawHTML         int    // tags or attributes in the fragment the converter did not generate
	Snippets        int    // embed directives replaced by a highlighted table
	DroppedSnippets int    // embed directives removed as unresolvable
}

// Safe reports whether no raw HTML reached the fragment.
func (r *Result) Safe() bool {
	return r != nil && r.RawHTML == 0
}
