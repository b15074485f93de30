package readmehelp

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/alnah/go-readmehelp/internal/assets"
	"github.com/alnah/go-readmehelp/internal/config"
	"github.com/alnah/go-readmehelp/internal/fileutil"
	"github.com/alnah/go-readmehelp/internal/modules"
	"github.com/alnah/go-readmehelp/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.ReadmePreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.ReadmeConverter)(nil)
	_ pipeline.SnippetInjector      = (*pipeline.SnippetInjection)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ pipeline.PageWrapper          = (*pipeline.PageWrapping)(nil)
	_ LineReader                    = fileLineReader{}
)

// Converter turns README documents into HTML fragments or standalone pages.
// A Converter is immutable after NewConverter and safe for concurrent use.
type Converter struct {
	cfg         converterConfig
	logger      zerolog.Logger
	resolver    Resolver
	reader      LineReader
	highlighter Highlighter

	assetLoader  assets.AssetLoader
	preprocessor pipeline.MarkdownPreprocessor
	snippets     pipeline.SnippetInjector
	cssInjector  pipeline.CSSInjector
	pageWrapper  pipeline.PageWrapper
	pageCSS      string
}

// NewConverter creates a Converter. Without options it knows no modules, so
// every embed directive is dropped, and highlights with the default style.
// Returns ErrStyleNotFound for an unknown style and ErrInvalidAssetPath for an
// unusable asset directory.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		logger:       zerolog.Nop(),
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.ReadmePreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.resolveModules(); err != nil {
		return nil, err
	}
	if c.resolver != nil && c.reader == nil {
		c.reader = fileLineReader{maxSize: c.cfg.maxFileSize}
	}
	if c.highlighter == nil {
		c.highlighter = pipeline.NewChromaHighlighter()
	}
	c.snippets = pipeline.NewSnippetInjection(c.resolver, c.reader, c.highlighter, c.logger)

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if err := c.loadPageAssets(); err != nil {
		return nil, err
	}
	return c, nil
}

// resolveModules turns WithModules entries into a confined registry unless a
// resolver was given explicitly.
func (c *Converter) resolveModules() error {
	if c.resolver != nil || len(c.cfg.modules) == 0 {
		return nil
	}

	entries := make(map[string]config.ModuleConfig, len(c.cfg.modules))
	for name, m := range c.cfg.modules {
		entries[name] = config.ModuleConfig{Dir: m.Dir, URL: m.URL}
	}
	registry, err := modules.NewRegistry(entries)
	if err != nil {
		return fmt.Errorf("registering modules: %w", err)
	}

	c.resolver = registry
	if c.reader == nil {
		c.reader = modules.NewFileReader(registry, c.cfg.maxFileSize, c.logger)
	}
	return nil
}

// loadPageAssets prepares the stylesheet and template for standalone pages.
func (c *Converter) loadPageAssets() error {
	highlightCSS, err := pipeline.HighlightCSS(c.cfg.style)
	if err != nil {
		return err
	}

	baseCSS, err := c.assetLoader.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}
	c.pageCSS = baseCSS + "\n" + highlightCSS

	tmpl, err := c.assetLoader.LoadTemplate(assets.PageTemplateName)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}
	c.pageWrapper, err = pipeline.NewPageWrapping(tmpl)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}
	return nil
}

// Convert runs the pipeline on one document. Malformed Markdown never fails;
// errors come from the context, the page template, or a recovered panic
// (ErrInternal).
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	htmlConverter := pipeline.NewReadmeConverter(c.imageBase(input.Module))
	htmlContent, err := htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	htmlContent, stats, err := c.snippets.InjectSnippets(ctx, htmlContent)
	if err != nil {
		return nil, fmt.Errorf("injecting snippets: %w", err)
	}

	// The safety count covers the fragment only; the page shell is ours.
	res := &Result{
		RawHTML:         pipeline.CountRawHTML(htmlContent),
		Snippets:        stats.Inserted,
		DroppedSnippets: stats.Dropped,
	}

	if input.Standalone {
		htmlContent, err = c.pageWrapper.WrapPage(ctx, &pipeline.PageData{Title: input.Title, Body: htmlContent})
		if err != nil {
			return nil, fmt.Errorf("wrapping page: %w", err)
		}
		htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, c.pageCSS)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	res.HTML = htmlContent

	c.logger.Debug().
		Str("module", input.Module).
		Int("snippets", res.Snippets).
		Int("dropped", res.DroppedSnippets).
		Int("raw_html", res.RawHTML).
		Msg("converted")

	return res, nil
}

// Stylesheet returns the CSS embedded in standalone pages: the base stylesheet
// followed by the token classes of the configured highlight style.
func (c *Converter) Stylesheet() string {
	return c.pageCSS
}

// imageBase returns the public URL relative images of module resolve against.
func (c *Converter) imageBase(module string) string {
	if module == "" || c.resolver == nil {
		return ""
	}
	base, ok := c.resolver.ModuleURL(module)
	if !ok {
		return ""
	}
	return base
}

// StyleNames lists the highlight styles accepted by WithStyle.
func StyleNames() []string {
	return pipeline.StyleNames()
}

// fileLineReader reads files with a size bound. Path confinement to the module
// directory is done by the snippet injector.
type fileLineReader struct {
	maxSize int64
}

func (r fileLineReader) ReadLines(path string) ([]string, bool) {
	lines, err := fileutil.ReadLines(path, r.maxSize)
	if err != nil {
		return nil, false
	}
	return lines, true
}
