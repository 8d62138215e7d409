package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadThemeDefaultsWithoutFile(t *testing.T) {
	theme, err := LoadTheme(LoadOptions{Env: map[string]string{}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if theme != DefaultTheme() {
		t.Fatalf("expected default theme, got %+v", theme)
	}
}

func TestLoadThemePrecedence(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "theme.yaml")
	payload := `foreground: "#ffffff"
background: "#000"
padding: 2
columns: 100
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write theme: %v", err)
	}

	theme, err := LoadTheme(LoadOptions{
		ExplicitPath: path,
		Env:          map[string]string{"CAST2GIF_PADDING": "12"},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if theme.Foreground != "#ffffff" || theme.Background != "#000" {
		t.Fatalf("expected colors from file, got %+v", theme)
	}
	if theme.Padding != 12 {
		t.Fatalf("expected env padding override, got %d", theme.Padding)
	}
	if theme.Columns != 100 || theme.Rows != 0 {
		t.Fatalf("expected columns from file and default rows, got %+v", theme)
	}
}

func TestLoadThemeMissingFile(t *testing.T) {
	_, err := LoadTheme(LoadOptions{ExplicitPath: filepath.Join(t.TempDir(), "nope.yaml"), Env: map[string]string{}})
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestLoadThemeRejectsInvalidColor(t *testing.T) {
	_, err := LoadTheme(LoadOptions{Env: map[string]string{"CAST2GIF_FOREGROUND": "teal"}})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDefaultThemeTemplateRoundTripsDefaults(t *testing.T) {
	var theme Theme
	if err := yaml.Unmarshal([]byte(DefaultThemeTemplate()), &theme); err != nil {
		t.Fatalf("unmarshal template: %v", err)
	}
	if theme != DefaultTheme() {
		t.Fatalf("template drifted from defaults: %+v", theme)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
		wantR   uint8
	}{
		{raw: "#ff0000", wantR: 0xff},
		{raw: "#f00", wantR: 0xff},
		{raw: "102030", wantR: 0x10},
		{raw: "#12", wantErr: true},
		{raw: "#gggggg", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseColor(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got.R != tc.wantR || got.A != 0xff {
				t.Fatalf("unexpected color: %+v", got)
			}
		})
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	tests := map[string]string{
		"~":                  home,
		"~/themes/dark.yaml": filepath.Join(home, "themes", "dark.yaml"),
		"/tmp/../tmp/a.yaml": "/tmp/a.yaml",
		"":                   "",
	}
	for raw, want := range tests {
		got, err := ExpandPath(raw)
		if err != nil {
			t.Fatalf("ExpandPath(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("ExpandPath(%q) = %q, want %q", raw, got, want)
		}
	}
}
