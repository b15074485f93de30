package assets

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if r.HasCustomLoader() {
			t.Error("HasCustomLoader() = true, want false")
		}
	})

	t.Run("custom path", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !r.HasCustomLoader() {
			t.Error("HasCustomLoader() = false, want true")
		}
	})

	t.Run("invalid custom path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_Fallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles", "readmehelp.css", "/* site override */")

	r, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("custom style wins", func(t *testing.T) {
		t.Parallel()

		got, err := r.LoadStyle(DefaultStyleName)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if got != "/* site override */" {
			t.Errorf("LoadStyle() = %q, want the custom override", got)
		}
	})

	t.Run("template falls back to embedded", func(t *testing.T) {
		t.Parallel()

		got, err := r.LoadTemplate(PageTemplateName)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if !strings.Contains(got, "{{.Body}}") {
			t.Errorf("LoadTemplate() = %q, want the embedded page template", got)
		}
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Parallel()

		if _, err := r.LoadStyle("nonexistent"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle(nonexistent) error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("validation errors do not fall back", func(t *testing.T) {
		t.Parallel()

		if _, err := r.LoadTemplate("a.b"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadTemplate(a.b) error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want bool
	}{
		{ErrStyleNotFound, true},
		{ErrTemplateNotFound, true},
		{ErrInvalidAssetName, false},
		{ErrAssetRead, false},
		{ErrPathTraversal, false},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			t.Parallel()

			if got := isNotFoundError(tt.err); got != tt.want {
				t.Errorf("isNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
