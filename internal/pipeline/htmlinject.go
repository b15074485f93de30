package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrPageRender indicates the standalone page template failed to render.
var ErrPageRender = errors.New("page template rendering failed")

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized so it cannot close the style element.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	if ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// PageData holds what a standalone page wraps around a converted fragment.
type PageData struct {
	Title string
	Body  string // already converted HTML, inserted verbatim
}

// PageWrapper defines the contract for wrapping a fragment in a full document.
type PageWrapper interface {
	WrapPage(ctx context.Context, data *PageData) (string, error)
}

// defaultPageTemplate is the document shell for standalone output.
const defaultPageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<main class="readmehelp">
{{.Body}}</main>
</body>
</html>
`

// PageWrapping renders a fragment into a complete HTML document.
type PageWrapping struct {
	tmpl *template.Template
}

// NewPageWrapping creates a PageWrapping from template content. An empty
// tmplContent selects the built-in document shell.
// Returns error if the template cannot be parsed.
func NewPageWrapping(tmplContent string) (*PageWrapping, error) {
	if tmplContent == "" {
		tmplContent = defaultPageTemplate
	}
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &PageWrapping{tmpl: tmpl}, nil
}

// WrapPage renders the page template around data.Body. The title is escaped by
// html/template; the body is trusted converter output.
func (w *PageWrapping) WrapPage(ctx context.Context, data *PageData) (string, error) {
	if data == nil {
		return "", fmt.Errorf("%w: nil page data", ErrPageRender)
	}

	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	view := struct {
		Title string
		Body  template.HTML
	}{
		Title: data.Title,
		Body:  template.HTML(data.Body), // #nosec G203 -- converter output is escaped at generation
	}

	var buf bytes.Buffer
	if err := w.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}
