package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeAsset creates {dir}/{subdir}/{name} with content.
func writeAsset(t *testing.T, dir, subdir, name, content string) {
	t.Helper()

	target := filepath.Join(dir, subdir)
	if err := os.MkdirAll(target, 0o750); err != nil {
		t.Fatalf("failed to create %s: %v", subdir, err)
	}
	if err := os.WriteFile(filepath.Join(target, name), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		loader, err := NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		if loader == nil {
			t.Fatal("NewFilesystemLoader() returned nil")
		}
	})

	t.Run("empty path returns error", func(t *testing.T) {
		t.Parallel()

		if _, err := NewFilesystemLoader(""); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(\"\") error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent directory returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory returns error", func(t *testing.T) {
		t.Parallel()

		filePath := filepath.Join(t.TempDir(), "file.txt")
		if err := os.WriteFile(filePath, []byte("test"), 0o600); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}
		if _, err := NewFilesystemLoader(filePath); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles", "site.css", "body { color: red; }")
	writeAsset(t, dir, "templates", "page.html", "<html>{{.Body}}</html>")

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	t.Run("style", func(t *testing.T) {
		t.Parallel()

		got, err := loader.LoadStyle("site")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if got != "body { color: red; }" {
			t.Errorf("LoadStyle() = %q", got)
		}
	})

	t.Run("template", func(t *testing.T) {
		t.Parallel()

		got, err := loader.LoadTemplate("page")
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if got != "<html>{{.Body}}</html>" {
			t.Errorf("LoadTemplate() = %q", got)
		}
	})

	t.Run("missing style", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadStyle("other"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle(other) error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("missing template", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadTemplate("other"); !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate(other) error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadStyle("../site"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle(../site) error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.css")
	if err := os.WriteFile(secret, []byte("secret"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.Symlink(secret, filepath.Join(dir, "styles", "evil.css")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}
	if _, err := loader.LoadStyle("evil"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadStyle(evil) error = %v, want ErrPathTraversal", err)
	}
}
