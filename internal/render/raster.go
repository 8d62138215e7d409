package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/jaa/cast2gif/internal/config"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

const (
	cellWidth  = 7
	cellHeight = 13
)

type rasterizer struct {
	palette color.Palette
	fg      *image.Uniform
	padding int
	bounds  image.Rectangle
	ascent  int
}

func newRasterizer(theme config.Theme, cols, rows int) (*rasterizer, error) {
	bg, err := config.ParseColor(theme.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	fg, err := config.ParseColor(theme.Foreground)
	if err != nil {
		return nil, fmt.Errorf("foreground: %w", err)
	}
	padding := max(theme.Padding, 0)
	return &rasterizer{
		palette: color.Palette{bg, fg},
		fg:      image.NewUniform(fg),
		padding: padding,
		bounds:  image.Rect(0, 0, cols*cellWidth+2*padding, rows*cellHeight+2*padding),
		ascent:  face.Metrics().Ascent.Ceil(),
	}, nil
}

func (r *rasterizer) frame(s *Screen) *image.Paletted {
	img := image.NewPaletted(r.bounds, r.palette)
	drawer := &font.Drawer{Dst: img, Src: r.fg, Face: face}
	for row, line := range s.cells {
		for col, ch := range line {
			if ch == blank || ch == continuation || ch == ' ' {
				continue
			}
			x := r.padding + col*cellWidth
			y := r.padding + row*cellHeight + r.ascent
			drawer.Dot = fixed.P(x, y)
			drawer.DrawString(string(ch))
		}
	}
	return img
}

// Rasterize draws the current screen with theme colors. Palette index 0
// is the background and index 1 the foreground.
func Rasterize(s *Screen, theme config.Theme) (*image.Paletted, error) {
	cols, rows := s.Size()
	r, err := newRasterizer(theme, cols, rows)
	if err != nil {
		return nil, err
	}
	return r.frame(s), nil
}

