package assets

import (
	"errors"
	"html/template"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr bool
	}{
		{"readmehelp", false},
		{"my-style", false},
		{"my_style", false},
		{"Style123", false},
		{"", true},
		{"path/to/style", true},
		{`path\to\style`, true},
		{"../secret", true},
		{"style.css", true},
		{".hidden", true},
		{".", true},
		{"..", true},
		{"/etc/passwd", true},
		{`C:\Windows`, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAssetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("ValidateAssetName(%q) error = %v, want ErrInvalidAssetName", tt.input, err)
			}
		})
	}
}

func TestLoadStyle_Default(t *testing.T) {
	t.Parallel()

	css, err := LoadStyle(DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle(%q) unexpected error: %v", DefaultStyleName, err)
	}

	// Every class the converter emits needs a rule.
	for _, selector := range []string{
		"a.anchor", "ul.ul", "ol.ol", "hr.hr-dash", "hr.hr-asterisk", "hr.hr-underscore",
		"code.code--singleline", "code.code--multiline", "img.markdown-image",
		"table.highlighted-snippet", "td.lntd", "span.lnt",
	} {
		if !strings.Contains(css, selector) {
			t.Errorf("default style missing selector %q", selector)
		}
	}
}

func TestLoadTemplate_Page(t *testing.T) {
	t.Parallel()

	content, err := LoadTemplate(PageTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate(%q) unexpected error: %v", PageTemplateName, err)
	}
	for _, part := range []string{"<!DOCTYPE html>", "</head>", "{{.Title}}", "{{.Body}}"} {
		if !strings.Contains(content, part) {
			t.Errorf("page template missing %q", part)
		}
	}
	if _, err := template.New("page").Parse(content); err != nil {
		t.Errorf("page template does not parse: %v", err)
	}
}

func TestLoadStyle_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		styleName string
		wantErr   error
	}{
		{"nonexistent", "nonexistent", ErrStyleNotFound},
		{"empty", "", ErrInvalidAssetName},
		{"traversal", "../secret", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := LoadStyle(tt.styleName); !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
			}
		})
	}
}
