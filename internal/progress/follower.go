package progress

import "time"

// DefaultTick is the redraw cadence shared by every display.
const DefaultTick = 100 * time.Millisecond

// Follower is the foreground side of a run: it samples the tracker and
// keeps a Board in sync with the most recent snapshot.
type Follower struct {
	tracker  *Tracker
	finished <-chan struct{}
	board    *Board
	err      error
}

// NewFollower watches tracker until both phases are Done or finished is
// closed by the worker.
func NewFollower(tracker *Tracker, finished <-chan struct{}) *Follower {
	return &Follower{tracker: tracker, finished: finished, board: NewBoard()}
}

func (f *Follower) Board() *Board {
	return f.board
}

// Step applies the latest snapshot and reports whether the foreground
// may stop waiting. The worker always stores its final snapshot before
// closing finished, so a read after observing finished sees it.
func (f *Follower) Step() (stop bool, err error) {
	if f.err != nil {
		return true, f.err
	}
	workerDone := false
	select {
	case <-f.finished:
		workerDone = true
	default:
	}
	if snapshot, ok := f.tracker.Latest(); ok {
		if err := f.board.Apply(snapshot); err != nil {
			f.err = err
			return true, err
		}
	}
	return workerDone || f.board.Done(), nil
}

// Run drives the follower on a fixed tick, calling render whenever the
// board may have changed, until Step says to stop.
func (f *Follower) Run(tick time.Duration, render func(*Board) error) error {
	if tick <= 0 {
		tick = DefaultTick
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		stop, err := f.Step()
		if err != nil {
			return err
		}
		if renderErr := render(f.board); renderErr != nil {
			return renderErr
		}
		if stop {
			return nil
		}
		select {
		case <-ticker.C:
		case <-f.tracker.Updated():
		case <-f.finished:
		}
	}
}
