package render

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"io"
	"math"

	"github.com/jaa/cast2gif/internal/config"
	"github.com/jaa/cast2gif/internal/progress"
)

// GIF renders a recording as an animated GIF with one frame per interval.
// Rasterizing is phase A; appending frames to the animation is phase B,
// whose last step is reported once the file is fully encoded.
const maxGIFDelay = math.MaxUint16

type GIF struct {
	Theme config.Theme
}

func NewGIF(theme config.Theme) *GIF {
	return &GIF{Theme: theme}
}

func (g *GIF) Convert(in io.Reader, out io.Writer, interval float64, reporter progress.Reporter) error {
	reporter.Accept(progress.Snapshot{})

	rec, cols, rows, err := readRecording(in, g.Theme)
	if err != nil {
		return err
	}
	raster, err := newRasterizer(g.Theme, cols, rows)
	if err != nil {
		return err
	}

	total, err := frameCount(rec.Duration(), interval)
	if err != nil {
		return err
	}
	reporter.Accept(progress.Snapshot{Total: total})

	screen := NewScreen(cols, rows)
	events := rec.Output()
	next := 0
	frames := make([]*image.Paletted, 0, total)
	var lastVersion uint64
	for i := 0; i < total; i++ {
		at := float64(i) * interval
		for next < len(events) && (events[next].Time <= at || i == total-1) {
			screen.Write(events[next].Data)
			next++
		}
		if i > 0 && screen.Version() == lastVersion {
			frames = append(frames, frames[i-1])
		} else {
			frames = append(frames, raster.frame(screen))
			lastVersion = screen.Version()
		}
		reporter.Accept(progress.Snapshot{Rasterized: i + 1, Total: total})
	}

	delay := min(max(int(math.Round(interval*100)), 1), maxGIFDelay)
	anim := &gif.GIF{LoopCount: g.Theme.Loop}
	for i, frame := range frames {
		// GIF delays are uint16 centiseconds; a longer pause repeats the frame.
		if i > 0 && samePixels(frame, frames[i-1]) && anim.Delay[len(anim.Delay)-1]+delay <= maxGIFDelay {
			anim.Delay[len(anim.Delay)-1] += delay
		} else {
			anim.Image = append(anim.Image, frame)
			anim.Delay = append(anim.Delay, delay)
		}
		if i+1 < total {
			reporter.Accept(progress.Snapshot{Rasterized: total, Sequenced: i + 1, Total: total})
		}
	}

	if err := gif.EncodeAll(out, anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	reporter.Accept(progress.Snapshot{Rasterized: total, Sequenced: total, Total: total})
	return nil
}

func samePixels(a, b *image.Paletted) bool {
	return a == b || (a.Rect == b.Rect && bytes.Equal(a.Pix, b.Pix))
}
