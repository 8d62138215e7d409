package render

import (
	"fmt"
	"image/png"
	"io"

	"github.com/jaa/cast2gif/internal/config"
	"github.com/jaa/cast2gif/internal/progress"
)

// PNG renders the final terminal state of a recording as a single image.
type PNG struct {
	Theme config.Theme
}

func NewPNG(theme config.Theme) *PNG {
	return &PNG{Theme: theme}
}

func (p *PNG) Convert(in io.Reader, out io.Writer, _ float64, reporter progress.Reporter) error {
	reporter.Accept(progress.Snapshot{})

	rec, cols, rows, err := readRecording(in, p.Theme)
	if err != nil {
		return err
	}
	reporter.Accept(progress.Snapshot{Total: 1})

	screen := NewScreen(cols, rows)
	for _, event := range rec.Output() {
		screen.Write(event.Data)
	}
	img, err := Rasterize(screen, p.Theme)
	if err != nil {
		return err
	}
	reporter.Accept(progress.Snapshot{Rasterized: 1, Total: 1})

	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	reporter.Accept(progress.Snapshot{Rasterized: 1, Sequenced: 1, Total: 1})
	return nil
}
