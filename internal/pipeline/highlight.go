package pipeline

import (
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrStyleNotFound indicates the requested chroma style does not exist.
var ErrStyleNotFound = errors.New("highlight style not found")

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// SnippetClass is the class every snippet table carries.
const SnippetClass = "highlighted-snippet"

// extensionLexers maps module file extensions chroma does not know to a lexer.
var extensionLexers = map[string]string{
	".module":  "php",
	".install": "php",
	".inc":     "php",
	".theme":   "php",
	".profile": "php",
	".engine":  "php",
	".test":    "php",
}

// Compile-time interface check.
var _ Highlighter = (*ChromaHighlighter)(nil)

// ChromaHighlighter renders source excerpts through the chroma HTML formatter,
// line numbers in their own column, wrapped in a highlighted-snippet table.
type ChromaHighlighter struct{}

// NewChromaHighlighter creates a highlighter.
func NewChromaHighlighter() *ChromaHighlighter {
	return &ChromaHighlighter{}
}

// Highlight tokenizes lines with the lexer matching name and formats them with
// class-tagged spans, numbering from firstLine. If tokenizing or formatting
// fails, the lines are written as escaped text.
func (h *ChromaHighlighter) Highlight(name string, lines []string, firstLine int) string {
	source := strings.Join(lines, "\n") + "\n"

	var b strings.Builder
	b.WriteString(`<table class="` + SnippetClass + `" data-first-line="` + strconv.Itoa(firstLine) + `"><tbody><tr><td>`)
	if body, err := formatSource(name, source, firstLine); err == nil {
		b.WriteString(body)
	} else {
		b.WriteString(`<pre class="chroma"><code>` + escapeText(source) + `</code></pre>`)
	}
	b.WriteString("</td></tr></tbody></table>")
	return b.String()
}

// formatSource renders source with the chroma HTML formatter.
func formatSource(name, source string, firstLine int) (string, error) {
	iterator, err := lexerFor(name, source).Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("tokenising %s: %w", name, err)
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.WithLineNumbers(true),
		chromahtml.LineNumbersInTable(true),
		chromahtml.BaseLineNumber(firstLine),
	)

	var b strings.Builder
	if err := formatter.Format(&b, styles.Fallback, iterator); err != nil {
		return "", fmt.Errorf("formatting %s: %w", name, err)
	}
	return b.String(), nil
}

// lexerFor picks a lexer by extension alias, then file name, then content.
func lexerFor(name, source string) chroma.Lexer {
	var lexer chroma.Lexer
	if alias, ok := extensionLexers[strings.ToLower(path.Ext(name))]; ok {
		lexer = lexers.Get(alias)
	}
	if lexer == nil {
		lexer = lexers.Match(name)
	}
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// HighlightCSS returns the stylesheet for the token classes of the named style.
func HighlightCSS(style string) (string, error) {
	if style == "" {
		style = DefaultStyle
	}
	s, ok := styles.Registry[strings.ToLower(style)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, style)
	}

	var b strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&b, s); err != nil {
		return "", fmt.Errorf("writing CSS for style %q: %w", style, err)
	}
	return b.String(), nil
}

// StyleNames lists the registered chroma styles.
func StyleNames() []string {
	return styles.Names()
}
