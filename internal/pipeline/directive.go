package pipeline

import (
	"regexp"
	"strconv"
)

// directiveExpr matches one embed directive:
//
//	@SOURCEFILE: <module>/<relative-path> LINE:<n> PADD:<p> :SOURCEFILE@
//	@SOURCEFILE: <module>/<relative-path> :SOURCEFILE@
//
// Tokens are separated by exactly one space. PADD is only valid after LINE.
const directiveExpr = `@SOURCEFILE: ([^\s/]+)/(\S+)(?: LINE:(\d+)(?: PADD:(\d+))?)? :SOURCEFILE@`

var (
	// directiveAt matches a directive at the start of a string.
	directiveAt = regexp.MustCompile(`^` + directiveExpr)

	// directiveLine matches a line made only of directives.
	directiveLine = regexp.MustCompile(`^` + directiveExpr + `(?: ` + directiveExpr + `)*$`)

	// directiveToken matches a directive inside its sentinel pair.
	directiveToken = regexp.MustCompile(DirectiveStart + directiveExpr + DirectiveEnd)
)

// Directive is a parsed @SOURCEFILE reference.
type Directive struct {
	Module  string // module name, first path segment
	Path    string // path relative to the module directory, slash separated
	HasLine bool   // a LINE token was given; false selects the whole file
	Line    int    // 1-based target line
	Padding int    // lines of context on each side of Line
}

// ParseDirective parses a bare directive token (without sentinels).
// Returns false if the token does not follow the directive grammar exactly.
func ParseDirective(token string) (Directive, bool) {
	m := directiveAt.FindStringSubmatch(token)
	if m == nil || len(m[0]) != len(token) {
		return Directive{}, false
	}
	return directiveFromMatch(m)
}

// directiveFromMatch builds a Directive from directiveExpr submatches.
func directiveFromMatch(m []string) (Directive, bool) {
	d := Directive{Module: m[1], Path: m[2]}

	if m[3] != "" {
		line, err := strconv.Atoi(m[3])
		if err != nil {
			return Directive{}, false
		}
		d.HasLine = true
		d.Line = line
	}
	if m[4] != "" {
		padd, err := strconv.Atoi(m[4])
		if err != nil {
			return Directive{}, false
		}
		d.Padding = padd
	}
	return d, true
}

// Window returns the 1-based inclusive line range selected from a file of
// total lines. Returns false when the file is empty or the target line lies
// outside it, LINE:0 included.
func (d Directive) Window(total int) (start, end int, ok bool) {
	if total < 1 {
		return 0, 0, false
	}
	if !d.HasLine {
		return 1, total, true
	}
	if d.Line < 1 || d.Line > total {
		return 0, 0, false
	}

	pad := min(d.Padding, total)
	start = max(1, d.Line-pad)
	end = min(total, d.Line+pad)
	return start, end, true
}
