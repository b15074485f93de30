package pipeline

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/shurcooL/sanitized_anchor_name"
)

// MaxAnchorTextLength is the number of characters of block text an anchor id
// is derived from. A word cut by the limit is dropped entirely.
const MaxAnchorTextLength = 32

// fallbackAnchorID is used when the block text has no letters or digits.
const fallbackAnchorID = "section"

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// AnchorID derives the id of a heading, blockquote or cite from its rendered
// HTML. Embed directives and tags are stripped and entities decoded, the text
// is cut to
// MaxAnchorTextLength at a word boundary, then lower-cased with every run
// of non-alphanumeric characters collapsed to one hyphen.
//
// Equal text always yields equal ids. Ids are not made unique across a page.
func AnchorID(rendered string) string {
	text := directiveToken.ReplaceAllString(rendered, "")
	text = html.UnescapeString(tagPattern.ReplaceAllString(text, ""))
	id := sanitized_anchor_name.Create(truncateWords(text, MaxAnchorTextLength))
	if id == "" {
		return fallbackAnchorID
	}
	return id
}

// truncateWords returns at most limit runes of s without splitting a word.
// A single word longer than limit is cut hard.
func truncateWords(s string, limit int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}

	head := runes[:limit]
	if unicode.IsSpace(runes[limit]) {
		return string(head)
	}
	for i := len(head) - 1; i > 0; i-- {
		if unicode.IsSpace(head[i]) {
			return string(head[:i])
		}
	}
	return string(head)
}
