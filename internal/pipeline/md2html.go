package pipeline

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// ctxCheckInterval is the number of lines converted between context checks.
const ctxCheckInterval = 512

var (
	atxHeading  = regexp.MustCompile(`^(#{1,6})[ \t]+(.*?)(?:[ \t]+#+)?[ \t]*$`)
	headingRule = regexp.MustCompile(`^#{1,6}$`)
	unordered   = regexp.MustCompile(`^([-+*])[ \t]+(.*)$`)
	ordered     = regexp.MustCompile(`^(\d{1,9})\.[ \t]+(.*)$`)
	fenceOpen   = regexp.MustCompile("^(`{3,}|~{3,})")
)

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// ReadmeConverter converts the README dialect of Markdown to an HTML fragment.
// A ReadmeConverter holds no per-document state and is safe for concurrent use.
type ReadmeConverter struct {
	imageBase string
}

// NewReadmeConverter creates a converter resolving relative image targets
// against imageBase. An empty imageBase leaves image targets untouched.
func NewReadmeConverter(imageBase string) *ReadmeConverter {
	return &ReadmeConverter{imageBase: imageBase}
}

// ToHTML converts content to HTML. Every line lands in exactly one block and
// unrecognized syntax renders as escaped text, so the only error is a done
// context.
func (c *ReadmeConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p := &blockParser{inline: &inlineRenderer{imageBase: c.imageBase}}
	lines := strings.Split(content, "\n")

	for i := 0; i < len(lines); {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return "", err
			}
		}
		i += p.line(lines, i)
	}
	p.flush()

	return p.out.String(), nil
}

// blockKind tags the block currently being accumulated.
type blockKind int

const (
	blockNone blockKind = iota
	blockParagraph
	blockUnordered
	blockOrdered
	blockQuote
	blockCite
	blockFence
)

// blockParser is the running state of one conversion.
type blockParser struct {
	inline *inlineRenderer
	out    strings.Builder

	kind   blockKind
	marker string   // list marker for unordered lists, open fence run for code
	start  int      // first number of an ordered list
	text   []string // lines of the open paragraph, quote or list item
	items  []string // finished items of the open list
}

// line classifies lines[i] and returns how many lines it consumed.
func (p *blockParser) line(lines []string, i int) int {
	raw := lines[i]

	if p.kind == blockFence {
		if strings.HasPrefix(strings.TrimSpace(raw), p.marker) && strings.Trim(strings.TrimSpace(raw), p.marker[:1]) == "" {
			p.flush()
			return 1
		}
		p.out.WriteString(escapeText(raw) + "\n")
		return 1
	}

	line := strings.TrimLeft(raw, " \t")
	if line == "" {
		p.flush()
		return 1
	}

	if m := fenceOpen.FindString(line); m != "" {
		p.flush()
		p.kind = blockFence
		p.marker = m
		p.out.WriteString(`<pre><code class="code--multiline">` + "\n")
		return 1
	}

	if style, ok := ruleStyle(line); ok {
		p.flush()
		p.out.WriteString(`<hr class="hr-` + style + `" />` + "\n")
		return 1
	}

	if m := atxHeading.FindStringSubmatch(line); m != nil {
		p.flush()
		p.heading(len(m[1]), m[2], false)
		return 1
	}

	if i+1 < len(lines) && !hasBlockMarker(line) && headingRule.MatchString(strings.TrimSpace(lines[i+1])) {
		p.flush()
		p.heading(len(strings.TrimSpace(lines[i+1])), strings.TrimSpace(line), true)
		return 2
	}

	if strings.HasPrefix(line, ">>") {
		p.quote(blockCite, strings.TrimPrefix(line, ">>"))
		return 1
	}
	if strings.HasPrefix(line, ">") {
		p.quote(blockQuote, strings.TrimPrefix(line, ">"))
		return 1
	}

	if m := unordered.FindStringSubmatch(line); m != nil {
		p.listItem(blockUnordered, m[1], 0, m[2])
		return 1
	}
	if m := ordered.FindStringSubmatch(line); m != nil {
		n, _ := strconv.Atoi(m[1])
		p.listItem(blockOrdered, ".", n, m[2])
		return 1
	}

	if directiveLine.MatchString(strings.TrimSpace(line)) {
		p.flush()
		p.out.WriteString(p.inline.render(strings.TrimSpace(line)) + "\n")
		return 1
	}

	switch p.kind {
	case blockParagraph, blockQuote, blockCite, blockUnordered, blockOrdered:
		p.text = append(p.text, strings.TrimRight(line, " \t"))
	default:
		p.kind = blockParagraph
		p.text = []string{strings.TrimRight(line, " \t")}
	}
	return 1
}

// hasBlockMarker reports whether line opens a quote, cite or list item. Such
// lines never start an alternative heading.
func hasBlockMarker(line string) bool {
	return strings.HasPrefix(line, ">") || unordered.MatchString(line) || ordered.MatchString(line)
}

// heading writes an h1-h6 element. The alternative syntax (text line over a
// line of hashes) puts the space inside the anchor instead of after it.
func (p *blockParser) heading(level int, text string, alternative bool) {
	rendered := p.inline.render(text)
	id := AnchorID(rendered)
	tag := "h" + strconv.Itoa(level)

	marker := `#</a> `
	if alternative {
		marker = `# </a>`
	}
	p.out.WriteString("<" + tag + ">" + anchorOpen(id) + marker + rendered + "</" + tag + ">\n")
}

// quote appends a blockquote or cite line, opening a new element when the
// kind changes.
func (p *blockParser) quote(kind blockKind, text string) {
	text = strings.TrimPrefix(text, " ")
	if p.kind != kind {
		p.flush()
		p.kind = kind
	}
	p.text = append(p.text, strings.TrimRight(text, " \t"))
}

// listItem starts a new item, closing the open list when the marker style differs.
func (p *blockParser) listItem(kind blockKind, marker string, number int, text string) {
	if p.kind != kind || p.marker != marker {
		p.flush()
		p.kind = kind
		p.marker = marker
		p.start = number
	} else {
		p.finishItem()
	}
	p.text = []string{strings.TrimRight(text, " \t")}
}

// finishItem moves the open item text into the item list.
func (p *blockParser) finishItem() {
	if len(p.text) > 0 {
		p.items = append(p.items, p.inline.render(strings.Join(p.text, "\n")))
	}
	p.text = nil
}

// flush writes the open block and resets the accumulator.
func (p *blockParser) flush() {
	switch p.kind {
	case blockParagraph:
		p.out.WriteString("<p>" + p.inline.render(strings.Join(p.text, "\n")) + "</p>\n")
	case blockQuote:
		p.quoteElement("blockquote", "&gt; ")
	case blockCite:
		p.quoteElement("cite", "&gt;&gt; ")
	case blockUnordered:
		p.listElement(`<ul class="ul">`, "</ul>")
	case blockOrdered:
		open := `<ol class="ol">`
		if p.start != 1 {
			open = `<ol class="ol" start="` + strconv.Itoa(p.start) + `">`
		}
		p.listElement(open, "</ol>")
	case blockFence:
		p.out.WriteString("</code></pre>\n")
	}

	p.kind = blockNone
	p.marker = ""
	p.start = 0
	p.text = nil
	p.items = nil
}

// quoteElement writes the open blockquote or cite with its anchor.
func (p *blockParser) quoteElement(tag, marker string) {
	rendered := p.inline.render(strings.Join(p.text, "\n"))
	p.out.WriteString("<" + tag + ">" + anchorOpen(AnchorID(rendered)) + marker + "</a>" + rendered + "</" + tag + ">\n")
}

// listElement writes the open list, one item per line.
func (p *blockParser) listElement(open, closeTag string) {
	p.finishItem()
	p.out.WriteString(open)
	for _, item := range p.items {
		p.out.WriteString("<li>" + item + "</li>\n")
	}
	p.out.WriteString(closeTag + "\n")
}

// anchorOpen returns the opening self-link tag for id.
func anchorOpen(id string) string {
	return `<a id="` + id + `" href="#` + id + `" class="anchor">`
}

// ruleStyle reports whether line is a horizontal rule: three or more of the
// same character among _ * -, optionally separated by whitespace.
func ruleStyle(line string) (string, bool) {
	var c byte
	count := 0
	for i := 0; i < len(line); i++ {
		switch ch := line[i]; ch {
		case ' ', '\t':
			continue
		case '_', '*', '-':
			if c != 0 && ch != c {
				return "", false
			}
			c = ch
			count++
		default:
			return "", false
		}
	}
	if count < 3 {
		return "", false
	}

	switch c {
	case '_':
		return "underscore", true
	case '*':
		return "asterisk", true
	default:
		return "dash", true
	}
}
