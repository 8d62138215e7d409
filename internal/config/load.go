package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	EnvTheme      = "CAST2GIF_THEME"
	envForeground = "CAST2GIF_FOREGROUND"
	envBackground = "CAST2GIF_BACKGROUND"
	envPadding    = "CAST2GIF_PADDING"
)

type LoadOptions struct {
	ExplicitPath string
	Env          map[string]string
}

type fileTheme struct {
	Foreground *string `yaml:"foreground"`
	Background *string `yaml:"background"`
	Padding    *int    `yaml:"padding"`
	Columns    *int    `yaml:"columns"`
	Rows       *int    `yaml:"rows"`
	Loop       *int    `yaml:"loop"`
}

// LoadTheme layers the default theme, the optional theme file and the
// CAST2GIF_* environment overrides, then validates the result.
func LoadTheme(opts LoadOptions) (Theme, error) {
	theme := DefaultTheme()

	env := opts.Env
	if env == nil {
		env = osEnvMap()
	}

	if explicit := strings.TrimSpace(opts.ExplicitPath); explicit != "" {
		path, err := ExpandPath(explicit)
		if err != nil {
			return Theme{}, err
		}
		if err := mergeFile(&theme, path); err != nil {
			return Theme{}, err
		}
	}

	if err := applyEnvOverrides(&theme, env); err != nil {
		return Theme{}, err
	}

	if err := Validate(theme); err != nil {
		return Theme{}, err
	}
	return theme, nil
}

func mergeFile(theme *Theme, path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("theme file does not exist: %s", path)
		}
		return fmt.Errorf("read theme file %s: %w", path, err)
	}

	var ft fileTheme
	if err := yaml.Unmarshal(payload, &ft); err != nil {
		return fmt.Errorf("parse theme file %s: %w", path, err)
	}

	if ft.Foreground != nil {
		theme.Foreground = strings.TrimSpace(*ft.Foreground)
	}
	if ft.Background != nil {
		theme.Background = strings.TrimSpace(*ft.Background)
	}
	if ft.Padding != nil {
		theme.Padding = *ft.Padding
	}
	if ft.Columns != nil {
		theme.Columns = *ft.Columns
	}
	if ft.Rows != nil {
		theme.Rows = *ft.Rows
	}
	if ft.Loop != nil {
		theme.Loop = *ft.Loop
	}
	return nil
}

func applyEnvOverrides(theme *Theme, env map[string]string) error {
	if value := strings.TrimSpace(env[envForeground]); value != "" {
		theme.Foreground = value
	}
	if value := strings.TrimSpace(env[envBackground]); value != "" {
		theme.Background = value
	}
	if value := strings.TrimSpace(env[envPadding]); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", envPadding, value, err)
		}
		theme.Padding = parsed
	}
	return nil
}

func osEnvMap() map[string]string {
	result := map[string]string{}
	for _, pair := range os.Environ() {
		pieces := strings.SplitN(pair, "=", 2)
		if len(pieces) == 2 {
			result[pieces[0]] = pieces[1]
		}
	}
	return result
}
