package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Directive placeholders use Unicode Private Use Area characters.
// The converter wraps every directive it honors in this pair so the snippet
// injector never touches directive text shown inside code.
const (
	DirectiveStart = "\uE002" // U+E002: opens an honored directive
	DirectiveEnd   = "\uE003" // U+E003: closes an honored directive
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Private Use Area characters reserved by the pipeline
	reservedRunes = regexp.MustCompile(`[\x{E000}-\x{E003}]`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// ReadmePreprocessor prepares README text for the line classifier.
type ReadmePreprocessor struct{}

// PreprocessMarkdown replaces invalid UTF-8, normalizes line endings and
// removes reserved placeholder characters so input text can never forge a
// directive sentinel.
func (p *ReadmePreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.ToValidUTF8(content, "\uFFFD")
	content = normalizeLineEndings(content)
	content = stripReserved(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// stripReserved removes U+E000..U+E003 from content.
func stripReserved(content string) string {
	return reservedRunes.ReplaceAllString(content, "")
}
