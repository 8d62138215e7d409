package compact

import (
	"fmt"
	"strings"

	"github.com/jaa/cast2gif/internal/progress"
)

// RenderPhaseLine is the persistent line printed when a phase changes
// state in non-interactive mode.
func RenderPhaseLine(ind progress.Indicator) string {
	tag := fmt.Sprintf("[%s]", ind.State)
	if ind.Capacity <= 0 {
		return fmt.Sprintf("%s %s", tag, ind.Name)
	}
	return fmt.Sprintf("%s %s %s (%d/%d)", tag, ind.Name, RenderProgress(ind.Fraction()*100, 16), ind.Position, ind.Capacity)
}

func RenderProgress(percent float64, width int) string {
	clamped := ClampPercent(percent)
	if width <= 0 {
		width = 16
	}
	filled := int((clamped / 100) * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
	return fmt.Sprintf("[%s] %5.1f%%", bar, clamped)
}

func ClampPercent(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
