package main

import (
	"errors"
	"path/filepath"
	"sort"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDiscoverFiles - Markdown discovery
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "README.md"), "a")
	writeFile(t, filepath.Join(root, "guide.markdown"), "b")
	writeFile(t, filepath.Join(root, "mod", "README"), "c")
	writeFile(t, filepath.Join(root, "mod", "main.go"), "package main")
	writeFile(t, filepath.Join(root, "NOTES.txt"), "d")

	files, err := discoverFiles(root, "")
	if err != nil {
		t.Fatalf("discoverFiles() unexpected error: %v", err)
	}

	var got []string
	for _, f := range files {
		rel, _ := filepath.Rel(root, f.OutputPath)
		got = append(got, rel)
	}
	sort.Strings(got)
	want := []string{"README.html", "guide.html", filepath.Join("mod", "README.html")}
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("outputs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("outputs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDiscoverFiles_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	md := filepath.Join(dir, "README.md")
	writeFile(t, md, "a")
	txt := filepath.Join(dir, "notes.txt")
	writeFile(t, txt, "b")

	files, err := discoverFiles(md, "")
	if err != nil {
		t.Fatalf("discoverFiles() unexpected error: %v", err)
	}
	if len(files) != 1 || files[0].OutputPath != filepath.Join(dir, "README.html") {
		t.Errorf("files = %+v, want README.html next to the input", files)
	}

	if _, err := discoverFiles(txt, ""); !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("discoverFiles(txt) error = %v, want ErrInvalidExtension", err)
	}
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		want      string
	}{
		{"next to input", filepath.Join("docs", "README.md"), "", "", filepath.Join("docs", "README.html")},
		{"extensionless readme", filepath.Join("mod", "README"), "", "", filepath.Join("mod", "README.html")},
		{"explicit html file", "README.md", filepath.Join("out", "index.html"), "", filepath.Join("out", "index.html")},
		{"output dir", "README.md", "out", "", filepath.Join("out", "README.html")},
		{"mirrors tree", filepath.Join("docs", "a", "b.md"), "out", "docs", filepath.Join("out", "a", "b.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveOutputPath(tt.input, tt.outputDir, tt.baseDir); got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateWorkers / TestDocumentTitle
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{8, false},
		{9, true},
		{-1, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", tt.n, err)
		}
	}
}

func TestDocumentTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		path     string
		want     string
	}{
		{"first h1", "intro\n# Main Title\n# Second", "README.md", "Main Title"},
		{"closing hashes", "# Title ##\r\n", "README.md", "Title"},
		{"h2 ignored", "## Sub\n", "guide.md", "guide"},
		{"empty heading", "# \n", "README", "README"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := documentTitle(tt.markdown, tt.path); got != tt.want {
				t.Errorf("documentTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
