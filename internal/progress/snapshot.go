package progress

import (
	"fmt"
	"sync/atomic"
)

// Snapshot is a point-in-time measurement of both pipeline phases.
// Rasterized and Sequenced never exceed Total once Total is known.
type Snapshot struct {
	Rasterized int
	Sequenced  int
	Total      int
}

// Complete reports whether both phases reached a known, positive total.
func (s Snapshot) Complete() bool {
	return s.Total > 0 && s.Rasterized == s.Total && s.Sequenced == s.Total
}

func (s Snapshot) String() string {
	return fmt.Sprintf("rasterized=%d sequenced=%d total=%d", s.Rasterized, s.Sequenced, s.Total)
}

// Reporter is the write-only capability handed to a conversion worker.
type Reporter interface {
	Accept(snapshot Snapshot)
}

// Tracker hands snapshots from the worker to the display. The latest
// snapshot replaces the previous one as a whole; readers never observe a
// partially updated value.
type Tracker struct {
	latest atomic.Pointer[Snapshot]
	notify chan struct{}
}

func NewTracker() *Tracker {
	return &Tracker{notify: make(chan struct{}, 1)}
}

// Accept never blocks: a pending notification already covers the new value.
func (t *Tracker) Accept(snapshot Snapshot) {
	s := snapshot
	t.latest.Store(&s)
	select {
	case t.notify <- struct{}{}:
	default:
	}
}

func (t *Tracker) Latest() (Snapshot, bool) {
	s := t.latest.Load()
	if s == nil {
		return Snapshot{}, false
	}
	return *s, true
}

// Updated fires at least once after every Accept.
func (t *Tracker) Updated() <-chan struct{} {
	return t.notify
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(Snapshot)

func (f ReporterFunc) Accept(snapshot Snapshot) {
	f(snapshot)
}
