package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "invalid theme"
	}
	return fmt.Sprintf("invalid theme: %s", strings.Join(e.Problems, "; "))
}

func Validate(theme Theme) error {
	problems := []string{}

	if _, err := ParseColor(theme.Foreground); err != nil {
		problems = append(problems, fmt.Sprintf("foreground: %v", err))
	}
	if _, err := ParseColor(theme.Background); err != nil {
		problems = append(problems, fmt.Sprintf("background: %v", err))
	}
	if theme.Padding < 0 {
		problems = append(problems, "padding must be >= 0")
	}
	if theme.Columns < 0 || theme.Rows < 0 {
		problems = append(problems, "columns and rows must be >= 0")
	}
	if theme.Loop < -1 {
		problems = append(problems, "loop must be >= -1")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ParseColor accepts #rgb and #rrggbb.
func ParseColor(raw string) (color.RGBA, error) {
	value := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(value) == 3 {
		value = string([]byte{value[0], value[0], value[1], value[1], value[2], value[2]})
	}
	if len(value) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q (expected #rrggbb)", raw)
	}
	parsed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q (expected #rrggbb)", raw)
	}
	return color.RGBA{
		R: uint8(parsed >> 16),
		G: uint8(parsed >> 8),
		B: uint8(parsed),
		A: 0xff,
	}, nil
}
