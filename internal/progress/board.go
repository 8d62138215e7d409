package progress

import "fmt"

type State string

const (
	StateWaiting State = "waiting"
	StateActive  State = "active"
	StateDone    State = "done"
)

const (
	LabelRasterizing = "Rasterizing"
	LabelSequencing  = "Sequencing"
)

// Indicator is the display state of one pipeline phase.
type Indicator struct {
	Name     string
	State    State
	Position int
	Capacity int
}

// Update applies one phase position. Done is latched: once position
// reached a positive capacity the indicator never leaves Done.
func (i *Indicator) Update(position int, total int) {
	if i.Capacity != total {
		i.Capacity = total
	}
	switch {
	case i.State == StateDone:
	case position > 0:
		i.State = StateActive
	default:
		i.State = StateWaiting
	}
	i.Position = position
	if position == total && total > 0 {
		i.State = StateDone
	}
}

// Label is what the display prints in front of the bar.
func (i Indicator) Label() string {
	switch i.State {
	case StateActive:
		return i.Name
	case StateDone:
		return "Done"
	default:
		return "Waiting"
	}
}

// Fraction is the completed share in [0, 1]; unknown totals count as 0.
func (i Indicator) Fraction() float64 {
	if i.Capacity <= 0 {
		return 0
	}
	return float64(i.Position) / float64(i.Capacity)
}

// ContractError means a producer emitted a snapshot that breaks the
// progress invariants. It is an internal defect, never a user error.
type ContractError struct {
	Previous Snapshot
	Received Snapshot
	Reason   string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("progress contract violated: %s (previous %s, received %s)", e.Reason, e.Previous, e.Received)
}

// Board holds both phase indicators and the last accepted snapshot.
type Board struct {
	Raster   Indicator
	Sequence Indicator

	last    Snapshot
	applied bool
}

func NewBoard() *Board {
	return &Board{
		Raster:   Indicator{Name: LabelRasterizing, State: StateWaiting},
		Sequence: Indicator{Name: LabelSequencing, State: StateWaiting},
	}
}

// Apply validates snapshot against the previous one and updates both
// indicators. An invalid snapshot is rejected and leaves the board as is.
func (b *Board) Apply(snapshot Snapshot) error {
	if err := b.check(snapshot); err != nil {
		return err
	}
	b.Raster.Update(snapshot.Rasterized, snapshot.Total)
	b.Sequence.Update(snapshot.Sequenced, snapshot.Total)
	b.last = snapshot
	b.applied = true
	return nil
}

func (b *Board) check(s Snapshot) error {
	violation := func(reason string) error {
		return &ContractError{Previous: b.last, Received: s, Reason: reason}
	}
	if s.Rasterized < 0 || s.Sequenced < 0 || s.Total < 0 {
		return violation("negative field")
	}
	if s.Total > 0 && (s.Rasterized > s.Total || s.Sequenced > s.Total) {
		return violation("position exceeds total")
	}
	if s.Total == 0 && (s.Rasterized > 0 || s.Sequenced > 0) {
		return violation("position reported before total")
	}
	if !b.applied {
		return nil
	}
	if b.last.Total > 0 && s.Total != b.last.Total {
		return violation("total changed after it was set")
	}
	if s.Rasterized < b.last.Rasterized || s.Sequenced < b.last.Sequenced {
		return violation("position decreased")
	}
	return nil
}

// Done reports whether both phases are latched.
func (b *Board) Done() bool {
	return b.Raster.State == StateDone && b.Sequence.State == StateDone
}

// Last is the most recently applied snapshot.
func (b *Board) Last() Snapshot {
	return b.last
}

func (b *Board) Indicators() []Indicator {
	return []Indicator{b.Raster, b.Sequence}
}
