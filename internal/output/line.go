package output

import (
	"fmt"
	"io"
	"time"

	"github.com/jaa/cast2gif/internal/output/compact"
	"github.com/jaa/cast2gif/internal/progress"
)

// LineDisplay prints one persistent line each time a phase changes state.
// It is used when stderr is not a terminal.
type LineDisplay struct {
	Out  io.Writer
	Tick time.Duration
}

func NewLineDisplay(w io.Writer) *LineDisplay {
	return &LineDisplay{Out: w, Tick: progress.DefaultTick}
}

func (d *LineDisplay) Show(follower *progress.Follower) error {
	var seen [2]progress.State
	return follower.Run(d.Tick, func(board *progress.Board) error {
		for i, ind := range board.Indicators() {
			if ind.State == seen[i] || ind.State == progress.StateWaiting {
				continue
			}
			seen[i] = ind.State
			if _, err := fmt.Fprintln(d.Out, compact.RenderPhaseLine(ind)); err != nil {
				return err
			}
		}
		return nil
	})
}
