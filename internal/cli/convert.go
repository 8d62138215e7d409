package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jaa/cast2gif/internal/config"
	"github.com/jaa/cast2gif/internal/fileops"
	"github.com/jaa/cast2gif/internal/output"
	"github.com/jaa/cast2gif/internal/pipeline"
	"github.com/jaa/cast2gif/internal/plan"
	"github.com/jaa/cast2gif/internal/render"
)

// newConverters is replaced in tests.
var newConverters = func(theme config.Theme) map[plan.Format]pipeline.Converter {
	return map[plan.Format]pipeline.Converter{
		plan.FormatGIF: render.NewGIF(theme),
		plan.FormatPNG: render.NewPNG(theme),
	}
}

func runConversion(app *AppContext, castPath, outPath string) (err error) {
	display, err := selectDisplay(app)
	if err != nil {
		return err
	}

	p, err := plan.Resolve(plan.Request{
		CastPath:      castPath,
		OutPath:       outPath,
		Format:        app.Opts.Format,
		FrameInterval: app.Opts.FrameInterval,
		Force:         app.Opts.Force,
		ThemePath:     app.Opts.ThemePath,
		Env:           app.Env,
		CheckFormat:   checkFormat,
	}, app.Logger)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if discardErr := fileops.Discard(p.Output); discardErr != nil {
				app.Logger.Warn("could not remove partial output", "path", p.OutputPath, "error", discardErr)
			}
		}
		_ = p.Close()
	}()

	orchestrator := pipeline.New(newConverters(p.Theme), app.Logger)
	if err := orchestrator.Run(p, display); err != nil {
		return err
	}
	if err := p.Output.Close(); err != nil {
		return &plan.PathError{Op: "write output file", Path: p.OutputPath, Err: err}
	}
	committed = true
	app.Logger.Debug("wrote output", "path", p.OutputPath, "format", string(p.Format))
	return nil
}

// checkFormat rejects formats without a converter while the output file is
// still untouched.
func checkFormat(format plan.Format) error {
	if _, ok := newConverters(config.DefaultTheme())[format]; !ok {
		return &pipeline.NotImplementedError{Format: format}
	}
	return nil
}

func selectDisplay(app *AppContext) (pipeline.Display, error) {
	mode, err := parseProgressMode(app.Opts.Progress)
	if err != nil {
		return nil, &plan.ArgumentError{Flag: "--progress", Err: err}
	}
	switch {
	case app.Opts.JSON:
		return output.NewJSONDisplay(app.IO.Out), nil
	case app.Opts.Quiet:
		return output.NewLineDisplay(io.Discard), nil
	}

	interactive := output.IsTerminal(app.IO.ErrOut)
	switch mode {
	case "always":
		interactive = true
	case "never":
		interactive = false
	}
	if interactive {
		return output.NewTeaDisplay(app.IO.ErrOut), nil
	}
	return output.NewLineDisplay(app.IO.ErrOut), nil
}

func parseProgressMode(raw string) (string, error) {
	mode := strings.TrimSpace(strings.ToLower(raw))
	switch mode {
	case "", "auto", "always", "never":
		if mode == "" {
			return "auto", nil
		}
		return mode, nil
	default:
		return "", fmt.Errorf("invalid mode %q (expected: auto, always, never)", raw)
	}
}
