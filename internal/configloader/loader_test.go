package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/gozen/pkg/config"
	"github.com/yaklabco/gozen/pkg/profile"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Syntax != config.DefaultSyntax {
		t.Errorf("expected syntax %q, got %q", config.DefaultSyntax, result.Config.Syntax)
	}
	if result.Config.Profile != config.DefaultProfile {
		t.Errorf("expected profile %q, got %q", config.DefaultProfile, result.Config.Profile)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "snippets.yaml"), "html:\n  snippets:\n    hi: \"<b>hi</b>\"\n")
	writeFile(t, filepath.Join(tmpDir, ".gozen.yml"), `
syntax: css
profile: mine
vocabulary:
  - snippets.yaml
profiles:
  mine:
    extends: html
    tag_case: upper
`)

	sub := filepath.Join(tmpDir, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolated(sub))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Syntax != "css" {
		t.Errorf("expected syntax css, got %q", cfg.Syntax)
	}
	if got := cfg.Profiles["mine"].TagCase; got == nil || *got != profile.CaseUpper {
		t.Errorf("expected mine.tag_case upper, got %v", got)
	}
	if len(cfg.Vocabulary) != 1 || cfg.Vocabulary[0] != filepath.Join(tmpDir, "snippets.yaml") {
		t.Errorf("expected vocabulary resolved against the config dir, got %v", cfg.Vocabulary)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestLoad_ExplicitTOMLConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gozen.yml"), "syntax: css\nprofile: html\n")
	customPath := filepath.Join(tmpDir, "custom.toml")
	writeFile(t, customPath, `
profile = "xml"

[variables]
lang = "de"
`)

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Profile != "xml" {
		t.Errorf("expected explicit profile xml, got %q", result.Config.Profile)
	}
	if result.Config.Syntax != "css" {
		t.Errorf("expected project syntax css to survive, got %q", result.Config.Syntax)
	}
	if result.Config.Variables["lang"] != "de" {
		t.Errorf("expected lang de, got %q", result.Config.Variables["lang"])
	}
	if result.Paths.Explicit != customPath {
		t.Errorf("expected explicit path recorded, got %q", result.Paths.Explicit)
	}
	if len(result.LoadedFrom) != 2 {
		t.Errorf("expected 2 loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gozen.yml"), "syntax: css\nprofile: plain\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{Syntax: "xsl", Format: config.FormatJSON, DryRun: true}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Syntax != "xsl" {
		t.Errorf("expected syntax xsl (CLI override), got %q", result.Config.Syntax)
	}
	if result.Config.Profile != "plain" {
		t.Errorf("expected profile plain from file, got %q", result.Config.Profile)
	}
	if result.Config.Format != config.FormatJSON || !result.Config.DryRun {
		t.Errorf("expected CLI-only fields applied, got %+v", result.Config)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "log level", content: "log_level: loud\n", want: "log_level"},
		{name: "backup mode", content: "backups:\n  mode: xdg\n", want: "backups.mode"},
		{name: "missing vocabulary", content: "vocabulary: [nope.yaml]\n", want: "vocabulary[0]"},
		{name: "bad profile value", content: "profiles:\n  x:\n    tag_case: shout\n", want: "profiles.x"},
		{name: "bad yaml", content: "profiles: [\n", want: "parse yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeFile(t, filepath.Join(tmpDir, ".gozen.yml"), tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gozen.yml"), "profile: missing\nprofiles:\n  x:\n    extends: ghost\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", result.Warnings)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolated(t.TempDir())); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("GOZEN_SYNTAX", "haml")
	t.Setenv("GOZEN_VOCABULARY", "")
	t.Setenv("GOZEN_DRY_RUN", "1")

	opts := isolated(t.TempDir())
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Syntax != "haml" {
		t.Errorf("expected syntax from env, got %q", result.Config.Syntax)
	}
	if !result.Config.DryRun {
		t.Error("expected dry run from env")
	}

	t.Setenv("GOZEN_NO_BACKUPS", "maybe")
	if _, err := Load(context.Background(), opts); err == nil {
		t.Fatal("expected error for invalid boolean")
	}
}
