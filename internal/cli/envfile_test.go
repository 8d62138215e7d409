package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvironmentLayersDotEnvFiles(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, ".env"), []byte("CAST2GIF_THEME=/tmp/themes/a.yaml\nCAST2GIF_PADDING=4\nOTHER=x\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmp, ".env.local"), []byte("CAST2GIF_THEME=/tmp/themes/b.yaml\n"), 0o644); err != nil {
		t.Fatalf("write .env.local: %v", err)
	}

	env, err := loadEnvironment(tmp, []string{"HOME=/home/test"})
	if err != nil {
		t.Fatalf("load environment: %v", err)
	}
	if env["CAST2GIF_THEME"] != "/tmp/themes/b.yaml" {
		t.Fatalf("expected .env.local to override .env, got %q", env["CAST2GIF_THEME"])
	}
	if env["CAST2GIF_PADDING"] != "4" {
		t.Fatalf("expected CAST2GIF_PADDING from .env, got %q", env["CAST2GIF_PADDING"])
	}
	if _, exists := env["OTHER"]; exists {
		t.Fatalf("expected unprefixed dotenv keys to be ignored")
	}
	if env["HOME"] != "/home/test" {
		t.Fatalf("expected process environment to be kept")
	}
}

func TestLoadEnvironmentDoesNotOverrideProcessEnv(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, ".env"), []byte("CAST2GIF_FOREGROUND=#ffffff\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	env, err := loadEnvironment(tmp, []string{"CAST2GIF_FOREGROUND=#000000"})
	if err != nil {
		t.Fatalf("load environment: %v", err)
	}
	if env["CAST2GIF_FOREGROUND"] != "#000000" {
		t.Fatalf("expected process env to win, got %q", env["CAST2GIF_FOREGROUND"])
	}
}

func TestLoadEnvironmentReportsBadLine(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, ".env"), []byte("not a pair\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	if _, err := loadEnvironment(tmp, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestParseDotEnvLineSupportsExportAndQuotedValues(t *testing.T) {
	key, value, ok, err := parseDotEnvLine("export CAST2GIF_THEME=\"/Users/test/.config/cast2gif/dark.yaml\"")
	if err != nil {
		t.Fatalf("parse line: %v", err)
	}
	if !ok || key != "CAST2GIF_THEME" || value != "/Users/test/.config/cast2gif/dark.yaml" {
		t.Fatalf("unexpected parse result: ok=%v key=%q value=%q", ok, key, value)
	}

	key, value, ok, err = parseDotEnvLine("CAST2GIF_BACKGROUND='#101010'")
	if err != nil {
		t.Fatalf("parse single-quoted line: %v", err)
	}
	if !ok || key != "CAST2GIF_BACKGROUND" || value != "#101010" {
		t.Fatalf("unexpected single-quoted parse result: ok=%v key=%q value=%q", ok, key, value)
	}

	if _, _, ok, err := parseDotEnvLine("# comment"); ok || err != nil {
		t.Fatalf("expected comment to be skipped, ok=%v err=%v", ok, err)
	}
}
