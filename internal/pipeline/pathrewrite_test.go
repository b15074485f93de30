package pipeline

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestResolveImageTarget(t *testing.T) {
	t.Parallel()

	const base = "https://host/modules/foo"

	tests := []struct {
		name   string
		target string
		base   string
		want   string
	}{
		{"relative", "images/logo.png", base, base + "/images/logo.png"},
		{"dot slash", "./images/logo.png", base, base + "/images/logo.png"},
		{"base with trailing slash", "logo.png", base + "/", base + "/logo.png"},
		{"absolute URL unchanged", "https://cdn.example.com/x.png", base, "https://cdn.example.com/x.png"},
		{"rooted path unchanged", "/abs/logo.png", base, "/abs/logo.png"},
		{"anchor unchanged", "#top", base, "#top"},
		{"data URI unchanged", "data:image/png;base64,AAA", base, "data:image/png;base64,AAA"},
		{"protocol relative unchanged", "//cdn/x.png", base, "//cdn/x.png"},
		{"no base", "images/logo.png", "", "images/logo.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveImageTarget(tt.target, tt.base); got != tt.want {
				t.Errorf("resolveImageTarget(%q, %q) = %q, want %q", tt.target, tt.base, got, tt.want)
			}
		})
	}
}

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"images/logo.png", true},
		{"./logo.png", true},
		{"../logo.png", true},
		{"", false},
		{"http://example.com/x.png", false},
		{"https://example.com/x.png", false},
		{"file:///tmp/x.png", false},
		{"mailto:a@b.c", false},
		{"#section", false},
		{"/rooted", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := isRelativePath(tt.path); got != tt.want {
				t.Errorf("isRelativePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsScriptURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want bool
	}{
		{"javascript:alert(1)", true},
		{"  JavaScript:alert(1)", true},
		{"vbscript:msgbox", true},
		{"https://example.com", false},
		{"#javascript", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()

			if got := isScriptURL(tt.url); got != tt.want {
				t.Errorf("isScriptURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestJoinModulePath(t *testing.T) {
	t.Parallel()

	dir := "/srv/modules/foo"
	if runtime.GOOS == "windows" {
		dir = `C:\srv\modules\foo`
	}

	tests := []struct {
		name   string
		rel    string
		want   string
		wantOK bool
	}{
		{"file in module", "foo.module", filepath.Join(dir, "foo.module"), true},
		{"nested file", "src/lib/a.go", filepath.Join(dir, "src", "lib", "a.go"), true},
		{"inner dot dot stays inside", "src/../foo.module", filepath.Join(dir, "foo.module"), true},
		{"traversal", "../bar/secret", "", false},
		{"deep traversal", "a/../../../etc/passwd", "", false},
		{"module dir itself", ".", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := joinModulePath(dir, tt.rel)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("joinModulePath(%q, %q) = (%q, %v), want (%q, %v)", dir, tt.rel, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestJoinModulePath_NoDir(t *testing.T) {
	t.Parallel()

	if _, ok := joinModulePath("", "a.go"); ok {
		t.Error("joinModulePath() with empty dir should fail")
	}
}

func TestIsPathUnderDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		dir  string
		want bool
	}{
		{"child", "/a/b/c", "/a/b", true},
		{"sibling with shared prefix", "/a/bc/d", "/a/b", false},
		{"dir itself", "/a/b", "/a/b", false},
		{"unclean child", "/a/b/./c", "/a/b/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isPathUnderDir(filepath.FromSlash(tt.path), filepath.FromSlash(tt.dir)); got != tt.want {
				t.Errorf("isPathUnderDir(%q, %q) = %v, want %v", tt.path, tt.dir, got, tt.want)
			}
		})
	}
}
