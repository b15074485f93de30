package pipeline

import (
	"strings"

	"golang.org/x/net/html"
)

// structuralTags are the elements the converter and default highlighter emit.
var structuralTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "a": true, "strong": true, "em": true, "code": true, "pre": true,
	"blockquote": true, "cite": true, "ul": true, "ol": true, "li": true,
	"hr": true, "img": true,
	"table": true, "tbody": true, "tr": true, "td": true, "span": true, "div": true,
}

// structuralAttrs are the attributes the converter and highlighter emit.
var structuralAttrs = map[string]bool{
	"id": true, "href": true, "class": true, "title": true, "src": true,
	"alt": true, "start": true, "data-first-line": true, "tabindex": true,
}

// CountRawHTML returns how many tags, attributes, comments or doctypes in
// fragment fall outside the structural markup the converter generates. Escaped
// text never counts. A zero result means no raw HTML reached the output.
func CountRawHTML(fragment string) int {
	z := html.NewTokenizer(strings.NewReader(fragment))
	count := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return count
		case html.CommentToken, html.DoctypeToken:
			count++
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if !structuralTags[tok.Data] {
				count++
				continue
			}
			for _, attr := range tok.Attr {
				if !structuralAttrs[attr.Key] || unsafeURL(attr) {
					count++
				}
			}
		}
	}
}

// unsafeURL reports whether a link or image attribute carries a script URL.
func unsafeURL(attr html.Attribute) bool {
	return (attr.Key == "href" || attr.Key == "src") && isScriptURL(attr.Val)
}
