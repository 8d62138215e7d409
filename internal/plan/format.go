package plan

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatGIF Format = "gif"
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

var formats = []Format{FormatGIF, FormatPNG, FormatSVG}

func Formats() []Format {
	return append([]Format{}, formats...)
}

// ParseFormat accepts a --format value, case-insensitively.
func ParseFormat(raw string) (Format, error) {
	value := Format(strings.ToLower(strings.TrimSpace(raw)))
	for _, f := range formats {
		if value == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid --format %q (expected: gif, png, svg)", raw)
}

// FormatFromPath infers the format from the path extension.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", false
	}
	return f, true
}
