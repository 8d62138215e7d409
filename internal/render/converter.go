package render

import (
	"fmt"
	"io"
	"math"

	"github.com/jaa/cast2gif/internal/cast"
	"github.com/jaa/cast2gif/internal/config"
)

func readRecording(in io.Reader, theme config.Theme) (*cast.Recording, int, int, error) {
	rec, err := cast.Read(in)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("read recording: %w", err)
	}
	cols, rows := rec.Header.Width, rec.Header.Height
	if theme.Columns > 0 {
		cols = theme.Columns
	}
	if theme.Rows > 0 {
		rows = theme.Rows
	}
	return rec, cols, rows, nil
}

// MaxFrames bounds a single animation so that a long recording sampled at a
// short interval fails cleanly instead of exhausting memory.
const MaxFrames = 100_000

// frameCount is the number of frames sampled at t = i*interval that cover
// the whole recording; there is always at least one.
func frameCount(duration, interval float64) (int, error) {
	if interval <= 0 || duration <= 0 {
		return 1, nil
	}
	n := math.Floor(duration/interval) + 1
	if math.IsNaN(n) || n > MaxFrames {
		return 0, fmt.Errorf("%.2fs recording at %gs per frame needs more than %d frames; use a larger --frame-interval", duration, interval, MaxFrames)
	}
	return int(n), nil
}
