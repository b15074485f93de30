package pipeline

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark/util"
)

// escapable lists the characters a backslash turns into literals.
const escapable = "\\`*_{}[]()#+-.!<>~|"

// Inline span classes that may appear at a given nesting level.
type spanSet uint8

const (
	spanEmphasis spanSet = 1 << iota
	spanLinks

	spanAll = spanEmphasis | spanLinks
)

// textEscaper escapes element content. Quotes are left alone, they are only
// significant inside attribute values.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeText escapes s for use as element content.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// escapeAttr escapes s for use inside a double-quoted attribute value.
func escapeAttr(s string) string {
	return html.EscapeString(s)
}

// escapeURL percent-encodes a link or image target and escapes it for an attribute.
func escapeURL(target string) string {
	return escapeAttr(string(util.URLEscape([]byte(target), false)))
}

// inlineRenderer renders the inline spans of a single block.
type inlineRenderer struct {
	imageBase string // base URL prepended to relative image targets
}

// render converts block text to HTML, honoring every span class.
func (r *inlineRenderer) render(text string) string {
	var b strings.Builder
	r.renderSpans(&b, text, spanAll)
	return b.String()
}

// renderSpans scans text left to right. At each position the first span that
// matches consumes its text; anything else is written as an escaped literal.
func (r *inlineRenderer) renderSpans(b *strings.Builder, text string, allowed spanSet) {
	for i := 0; i < len(text); {
		n := 0
		switch c := text[i]; {
		case c == '\\':
			n = r.escaped(b, text[i:])
		case c == '`':
			n = r.codeSpan(b, text[i:])
		case c == '@':
			n = r.directive(b, text[i:])
		case c == '<' && allowed&spanLinks != 0:
			n = r.autolink(b, text[i:])
		case c == '!' && allowed&spanLinks != 0:
			n = r.image(b, text[i:])
		case c == '[' && allowed&spanLinks != 0:
			n = r.link(b, text[i:], allowed)
		case (c == '*' || c == '_') && allowed&spanEmphasis != 0:
			n = r.emphasis(b, text, i, allowed)
		}
		if n > 0 {
			i += n
			continue
		}

		c, size := utf8.DecodeRuneInString(text[i:])
		if c == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
		} else {
			b.WriteString(escapeText(text[i : i+size]))
		}
		i += size
	}
}

// escaped writes the character following a backslash as a literal.
func (r *inlineRenderer) escaped(b *strings.Builder, s string) int {
	if len(s) < 2 || !strings.ContainsRune(escapable, rune(s[1])) {
		return 0
	}
	b.WriteString(escapeText(s[1:2]))
	return 2
}

// codeSpan renders `code`. The closing run must have the same length as the
// opening run. Content is escaped but never reinterpreted.
func (r *inlineRenderer) codeSpan(b *strings.Builder, s string) int {
	run := len(s) - len(strings.TrimLeft(s, "`"))
	fence := s[:run]

	end := strings.Index(s[run:], fence)
	if end < 0 {
		b.WriteString(fence)
		return run
	}

	content := s[run : run+end]
	b.WriteString(`<code class="code--singleline">`)
	b.WriteString(escapeText(content))
	b.WriteString(`</code>`)
	return run + end + run
}

// directive wraps an embed directive in its sentinel pair for the snippet injector.
func (r *inlineRenderer) directive(b *strings.Builder, s string) int {
	loc := directiveAt.FindStringIndex(s)
	if loc == nil {
		return 0
	}
	b.WriteString(DirectiveStart)
	b.WriteString(s[:loc[1]])
	b.WriteString(DirectiveEnd)
	return loc[1]
}

// autolink renders <https://example.com> as a link to itself.
func (r *inlineRenderer) autolink(b *strings.Builder, s string) int {
	end := strings.IndexByte(s, '>')
	if end < 0 {
		return 0
	}
	target := s[1:end]
	if !isAbsoluteURL(target) || strings.ContainsAny(target, " \t<") {
		return 0
	}
	b.WriteString(`<a href="` + escapeURL(target) + `">` + escapeText(target) + `</a>`)
	return end + 1
}

// image renders ![alt](target "title").
func (r *inlineRenderer) image(b *strings.Builder, s string) int {
	if !strings.HasPrefix(s, "![") {
		return 0
	}
	ref, n, ok := parseReference(s[1:])
	if !ok || ref.target == "" || isScriptURL(ref.target) {
		return 0
	}

	src := resolveImageTarget(ref.target, r.imageBase)
	b.WriteString(`<img src="` + escapeURL(src) + `" alt="` + escapeAttr(unescapeLiterals(ref.text)) + `"`)
	if ref.title != "" {
		b.WriteString(` title="` + escapeAttr(ref.title) + `"`)
	}
	b.WriteString(` class="markdown-image" />`)
	return n + 1
}

// link renders [text](target). Link text may carry emphasis and code but not
// another link.
func (r *inlineRenderer) link(b *strings.Builder, s string, allowed spanSet) int {
	ref, n, ok := parseReference(s)
	if !ok || ref.text == "" || ref.target == "" || isScriptURL(ref.target) {
		return 0
	}

	b.WriteString(`<a href="` + escapeURL(ref.target) + `"`)
	if ref.title != "" {
		b.WriteString(` title="` + escapeAttr(ref.title) + `"`)
	}
	b.WriteString(`>`)
	r.renderSpans(b, ref.text, allowed&^spanLinks)
	b.WriteString(`</a>`)
	return n
}

// emphasis renders **strong**, __strong__, *em* and _em_. The delimiter
// position is i within text so word boundaries can be checked. Spans inside
// emphasis never open a second emphasis.
func (r *inlineRenderer) emphasis(b *strings.Builder, text string, i int, allowed spanSet) int {
	delim := text[i]
	if delim == '_' && i > 0 && isWordByte(text[i-1]) {
		return 0
	}

	for _, width := range []int{2, 1} {
		marker := strings.Repeat(string(delim), width)
		if !strings.HasPrefix(text[i:], marker) {
			continue
		}
		// An unclosed double delimiter is not retried as a single one; its
		// first character stays literal and the scan resumes after it.
		if width == 1 && i+1 < len(text) && text[i+1] == delim {
			return 0
		}
		open := i + width
		inner, ok := findEmphasisClose(text, open, marker)
		if !ok {
			continue
		}

		tag := "em"
		if width == 2 {
			tag = "strong"
		}
		b.WriteString("<" + tag + ">")
		r.renderSpans(b, text[open:open+inner], allowed&^spanEmphasis)
		b.WriteString("</" + tag + ">")
		return width + inner + width
	}
	return 0
}

// findEmphasisClose returns the length of the emphasized text starting at open,
// or false if marker is never closed. Content must not start or end with
// whitespace. An underscore closer must not be followed by a word character.
func findEmphasisClose(text string, open int, marker string) (int, bool) {
	if open >= len(text) || isSpaceByte(text[open]) {
		return 0, false
	}

	for from := open; from < len(text); {
		idx := strings.Index(text[from:], marker)
		if idx < 0 {
			return 0, false
		}
		closeAt := from + idx
		after := closeAt + len(marker)

		switch {
		case closeAt == open:
			// empty content
		case text[closeAt-1] == '\\':
			// escaped delimiter
		case isSpaceByte(text[closeAt-1]):
			// content ends with whitespace
		case len(marker) == 1 && after < len(text) && text[after] == marker[0]:
			// single marker that is really the start of a double one
			after++
		case marker[0] == '_' && after < len(text) && isWordByte(text[after]):
			// intraword underscore
		default:
			return closeAt - open, true
		}
		from = after
	}
	return 0, false
}

// reference is the parsed content of [text](target "title").
type reference struct {
	text   string
	target string
	title  string
}

// parseReference parses a bracketed reference at the start of s and returns it
// with the number of bytes consumed.
func parseReference(s string) (reference, int, bool) {
	if !strings.HasPrefix(s, "[") {
		return reference{}, 0, false
	}
	closeText := indexUnescaped(s, 1, ']')
	if closeText < 0 || closeText+1 >= len(s) || s[closeText+1] != '(' {
		return reference{}, 0, false
	}
	closeDest := indexUnescaped(s, closeText+2, ')')
	if closeDest < 0 {
		return reference{}, 0, false
	}

	ref := reference{text: s[1:closeText]}
	dest := strings.TrimSpace(s[closeText+2 : closeDest])
	if sp := strings.IndexAny(dest, " \t"); sp >= 0 {
		title := strings.TrimSpace(dest[sp:])
		if len(title) < 2 || title[0] != '"' || title[len(title)-1] != '"' {
			return reference{}, 0, false
		}
		ref.title = title[1 : len(title)-1]
		dest = dest[:sp]
	}
	ref.target = dest
	return ref, closeDest + 1, true
}

// indexUnescaped returns the index of the first c in s at or after from that is
// not preceded by a backslash.
func indexUnescaped(s string, from int, c byte) int {
	for i := from; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case c:
			return i
		}
	}
	return -1
}

// unescapeLiterals drops the backslash in front of escapable characters.
func unescapeLiterals(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && strings.ContainsRune(escapable, rune(s[i+1])) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isWordByte(c byte) bool {
	if c >= utf8.RuneSelf {
		return true
	}
	return unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}
