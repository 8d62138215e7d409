package output

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jaa/cast2gif/internal/progress"
)

// JSONDisplay writes newline-delimited progress events for machines.
// run_progress is emitted only when the applied snapshot changed.
type JSONDisplay struct {
	RunID   string
	Tick    time.Duration
	emitter EventEmitter
	now     func() time.Time
}

func NewJSONDisplay(w io.Writer) *JSONDisplay {
	return &JSONDisplay{
		RunID:   uuid.NewString(),
		Tick:    progress.DefaultTick,
		emitter: NewJSONEmitter(w),
		now:     time.Now,
	}
}

func (d *JSONDisplay) emit(level Level, name EventName, message string, details map[string]any) error {
	return d.emitter.Emit(Event{
		Timestamp: d.now().UTC(),
		Level:     level,
		Event:     name,
		RunID:     d.RunID,
		Message:   message,
		Details:   details,
	})
}

func (d *JSONDisplay) Show(follower *progress.Follower) error {
	if err := d.emit(LevelInfo, EventRunStarted, "conversion started", nil); err != nil {
		return err
	}

	var seen [2]progress.State
	var last progress.Snapshot
	reported := false
	runErr := follower.Run(d.Tick, func(board *progress.Board) error {
		for i, ind := range board.Indicators() {
			if ind.State == seen[i] {
				continue
			}
			seen[i] = ind.State
			if err := d.emit(LevelInfo, EventPhaseChanged, ind.Name, map[string]any{
				"phase":    ind.Name,
				"state":    string(ind.State),
				"position": ind.Position,
				"total":    ind.Capacity,
			}); err != nil {
				return err
			}
		}
		current := board.Last()
		if reported && current == last {
			return nil
		}
		reported = true
		last = current
		return d.emit(LevelInfo, EventRunProgress, "progress", map[string]any{
			"rasterized": current.Rasterized,
			"sequenced":  current.Sequenced,
			"total":      current.Total,
		})
	})

	level, message := LevelInfo, "conversion finished"
	details := map[string]any{"complete": follower.Board().Done()}
	if runErr != nil {
		level, message = LevelError, "progress stopped"
		details["error"] = runErr.Error()
	}
	if err := d.emit(level, EventRunFinished, message, details); err != nil && runErr == nil {
		return err
	}
	return runErr
}
