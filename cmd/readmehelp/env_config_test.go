package main

// Notes:
// - These tests use t.Setenv, so they cannot run in parallel.

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/alnah/go-readmehelp/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("READMEHELP_CONFIG", "site")
	t.Setenv("READMEHELP_STYLE", "monokai")
	t.Setenv("READMEHELP_OUTPUT_DIR", "public")
	t.Setenv("READMEHELP_ASSET_PATH", "theme")
	t.Setenv("READMEHELP_STANDALONE", "true")
	t.Setenv("READMEHELP_WORKERS", "3")
	t.Setenv("READMEHELP_MAX_FILE_SIZE", "4096")

	env := loadEnvConfig()

	want := envConfig{
		ConfigPath:  "site",
		Style:       "monokai",
		OutputDir:   "public",
		AssetPath:   "theme",
		Standalone:  true,
		Workers:     3,
		MaxFileSize: 4096,
	}
	if *env != want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", *env, want)
	}
}

func TestLoadEnvConfig_InvalidNumbers(t *testing.T) {
	t.Setenv("READMEHELP_STANDALONE", "maybe")
	t.Setenv("READMEHELP_WORKERS", "-2")
	t.Setenv("READMEHELP_MAX_FILE_SIZE", "big")

	env := loadEnvConfig()
	if env.Standalone || env.Workers != 0 || env.MaxFileSize != 0 {
		t.Errorf("loadEnvConfig() = %+v, want malformed values ignored", *env)
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("READMEHELP_STYL", "typo")
	t.Setenv("READMEHELP_STYLE", "github")

	var buf bytes.Buffer
	warnUnknownEnvVars(zerolog.New(&buf))

	out := buf.String()
	if !strings.Contains(out, "READMEHELP_STYL\"") {
		t.Errorf("log = %q, want warning for READMEHELP_STYL", out)
	}
	if strings.Contains(out, "READMEHELP_STYLE") {
		t.Errorf("log = %q, known variable should not warn", out)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	env := &envConfig{
		Style:       "monokai",
		OutputDir:   "public",
		AssetPath:   "theme",
		Standalone:  true,
		MaxFileSize: 99,
	}

	t.Run("fills empty values", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)
		if cfg.Snippets.Style != "monokai" || cfg.Snippets.MaxFileSize != 99 {
			t.Errorf("Snippets = %+v", cfg.Snippets)
		}
		if cfg.Output.DefaultDir != "public" || !cfg.Output.Standalone {
			t.Errorf("Output = %+v", cfg.Output)
		}
		if cfg.Assets.BasePath != "theme" {
			t.Errorf("Assets.BasePath = %q", cfg.Assets.BasePath)
		}
	})

	t.Run("config values win", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Snippets.Style = "github"
		cfg.Output.DefaultDir = "site"
		applyEnvConfig(env, cfg)
		if cfg.Snippets.Style != "github" || cfg.Output.DefaultDir != "site" {
			t.Errorf("config overwritten: %+v %+v", cfg.Snippets, cfg.Output)
		}
	})
}

func TestRunMain_EnvConfig(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "README.md")
	writeFile(t, input, "# Env\n")
	out := t.TempDir()
	t.Setenv("READMEHELP_OUTPUT_DIR", out)
	t.Setenv("READMEHELP_STANDALONE", "1")

	env, _, stderr := newTestEnv()
	if code := runMain([]string{"readmehelp", "convert", input}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
	}
	if page := readFile(t, filepath.Join(out, "README.html")); !strings.Contains(page, "<title>Env</title>") {
		t.Errorf("page = %q, want standalone page in env output dir", page)
	}
}
