package pipeline

import "testing"

func TestParseDirective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		token  string
		want   Directive
		wantOK bool
	}{
		{
			name:   "line and padding",
			token:  "@SOURCEFILE: mod/mod.module LINE:19 PADD:1 :SOURCEFILE@",
			want:   Directive{Module: "mod", Path: "mod.module", HasLine: true, Line: 19, Padding: 1},
			wantOK: true,
		},
		{
			name:   "whole file",
			token:  "@SOURCEFILE: mod/src/lib/util.go :SOURCEFILE@",
			want:   Directive{Module: "mod", Path: "src/lib/util.go"},
			wantOK: true,
		},
		{
			name:   "line without padding",
			token:  "@SOURCEFILE: mod/a.php LINE:3 :SOURCEFILE@",
			want:   Directive{Module: "mod", Path: "a.php", HasLine: true, Line: 3},
			wantOK: true,
		},
		{
			name:   "line zero parses",
			token:  "@SOURCEFILE: mod/a.php LINE:0 PADD:2 :SOURCEFILE@",
			want:   Directive{Module: "mod", Path: "a.php", HasLine: true, Padding: 2},
			wantOK: true,
		},
		{name: "padding without line", token: "@SOURCEFILE: mod/a.php PADD:3 :SOURCEFILE@"},
		{name: "double space", token: "@SOURCEFILE:  mod/a.php :SOURCEFILE@"},
		{name: "missing module segment", token: "@SOURCEFILE: a.php :SOURCEFILE@"},
		{name: "missing closing sentinel", token: "@SOURCEFILE: mod/a.php"},
		{name: "trailing text", token: "@SOURCEFILE: mod/a.php :SOURCEFILE@ x"},
		{name: "lowercase keyword", token: "@SOURCEFILE: mod/a.php line:3 :SOURCEFILE@"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseDirective(tt.token)
			if ok != tt.wantOK {
				t.Fatalf("ParseDirective(%q) ok = %v, want %v", tt.token, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseDirective(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
		})
	}
}

func TestDirective_Window(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		directive Directive
		total     int
		wantStart int
		wantEnd   int
		wantOK    bool
	}{
		{"whole file", Directive{}, 30, 1, 30, true},
		{"line with padding", Directive{HasLine: true, Line: 19, Padding: 1}, 30, 18, 20, true},
		{"single line", Directive{HasLine: true, Line: 5}, 30, 5, 5, true},
		{"clamped at start", Directive{HasLine: true, Line: 2, Padding: 5}, 30, 1, 7, true},
		{"clamped at end", Directive{HasLine: true, Line: 29, Padding: 5}, 30, 24, 30, true},
		{"huge padding", Directive{HasLine: true, Line: 3, Padding: 1 << 30}, 10, 1, 10, true},
		{"last line", Directive{HasLine: true, Line: 30}, 30, 30, 30, true},
		{"line past end", Directive{HasLine: true, Line: 31}, 30, 0, 0, false},
		{"line zero", Directive{HasLine: true, Line: 0}, 30, 0, 0, false},
		{"line zero with padding", Directive{HasLine: true, Line: 0, Padding: 2}, 30, 0, 0, false},
		{"empty file", Directive{}, 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start, end, ok := tt.directive.Window(tt.total)
			if start != tt.wantStart || end != tt.wantEnd || ok != tt.wantOK {
				t.Errorf("Window(%d) = (%d, %d, %v), want (%d, %d, %v)",
					tt.total, start, end, ok, tt.wantStart, tt.wantEnd, tt.wantOK)
			}
		})
	}
}
