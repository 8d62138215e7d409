package plan

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jaa/cast2gif/internal/config"
	"github.com/jaa/cast2gif/internal/fileops"
)

const DefaultFrameInterval = "0.1"

// MinFrameInterval is one GIF delay unit; shorter frames cannot be shown.
const MinFrameInterval = 0.01

// Request carries the raw CLI values for one run.
type Request struct {
	CastPath      string
	OutPath       string
	Format        string
	FrameInterval string
	Force         bool
	ThemePath     string
	Env           map[string]string
	// CheckFormat, when set, vetoes the resolved format before the output
	// file is touched. Its error is returned unchanged.
	CheckFormat   func(Format) error
}

// Plan is the validated description of one run. It is built once by
// Resolve and handed to the pipeline as is.
type Plan struct {
	Input         *os.File
	Output        *os.File
	CastPath      string
	OutputPath    string
	Format        Format
	FrameInterval float64
	Overwrite     bool
	Theme         config.Theme
}

// Close releases both handles. Safe to call after the output was closed.
func (p *Plan) Close() error {
	var errs []error
	for _, f := range []*os.File{p.Input, p.Output} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

const formatFallbackWarning = "Could not detect output format from file extension, assuming gif format. Use --format to specify otherwise."

// Resolve validates req and opens both files. It either returns a complete
// plan or an *ArgumentError / *PathError with nothing left open.
func Resolve(req Request, logger *slog.Logger) (*Plan, error) {
	if logger == nil {
		logger = slog.Default()
	}

	interval, err := ParseFrameInterval(req.FrameInterval)
	if err != nil {
		return nil, &ArgumentError{Flag: "--frame-interval", Err: err}
	}

	input, err := fileops.OpenInput(req.CastPath)
	if err != nil {
		return nil, &PathError{Op: "open cast file", Path: req.CastPath, Err: err}
	}

	format, err := resolveFormat(req, logger)
	if err == nil && req.CheckFormat != nil {
		err = req.CheckFormat(format)
	}
	if err != nil {
		input.Close()
		return nil, err
	}

	theme, err := config.LoadTheme(config.LoadOptions{ExplicitPath: req.ThemePath, Env: req.Env})
	if err != nil {
		input.Close()
		return nil, &ArgumentError{Flag: "--theme", Err: err}
	}

	output, err := fileops.OpenOutput(req.OutPath, req.Force)
	if err != nil {
		input.Close()
		return nil, &PathError{Op: "open output file", Path: req.OutPath, Err: err}
	}

	return &Plan{
		Input:         input,
		Output:        output,
		CastPath:      req.CastPath,
		OutputPath:    req.OutPath,
		Format:        format,
		FrameInterval: interval,
		Overwrite:     req.Force,
		Theme:         theme,
	}, nil
}

// ParseFrameInterval accepts a finite decimal number of seconds no smaller
// than MinFrameInterval.
func ParseFrameInterval(raw string) (float64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		value = DefaultFrameInterval
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse frame interval %q", raw)
	}
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed <= 0 {
		return 0, fmt.Errorf("frame interval must be a positive number of seconds, got %q", raw)
	}
	if parsed < MinFrameInterval {
		return 0, fmt.Errorf("frame interval must be at least %gs, got %q", MinFrameInterval, raw)
	}
	return parsed, nil
}

func resolveFormat(req Request, logger *slog.Logger) (Format, error) {
	if strings.TrimSpace(req.Format) != "" {
		format, err := ParseFormat(req.Format)
		if err != nil {
			return "", &ArgumentError{Err: err}
		}
		return format, nil
	}
	if format, ok := FormatFromPath(req.OutPath); ok {
		return format, nil
	}
	logger.Warn(formatFallbackWarning, "path", req.OutPath)
	return FormatGIF, nil
}
