package pipeline

import (
	"errors"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/jaa/cast2gif/internal/plan"
	"github.com/jaa/cast2gif/internal/progress"
)

// Converter turns a recording into an artifact, reporting progress as it
// goes. Implementations must finish a successful run with a snapshot where
// both positions equal the total.
type Converter interface {
	Convert(in io.Reader, out io.Writer, interval float64, reporter progress.Reporter) error
}

type ConverterFunc func(in io.Reader, out io.Writer, interval float64, reporter progress.Reporter) error

func (f ConverterFunc) Convert(in io.Reader, out io.Writer, interval float64, reporter progress.Reporter) error {
	return f(in, out, interval, reporter)
}

// Display owns the foreground while the worker runs. Show must return
// once the follower reports it may stop.
type Display interface {
	Show(follower *progress.Follower) error
}

type State string

const (
	StateInit         State = "init"
	StatePlanResolved State = "plan_resolved"
	StateConverting   State = "converting"
	StateSucceeded    State = "succeeded"
	StateFailed       State = "failed"
)

type Orchestrator struct {
	converters map[plan.Format]Converter
	logger     *slog.Logger
}

func New(converters map[plan.Format]Converter, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	registry := make(map[plan.Format]Converter, len(converters))
	for format, converter := range converters {
		if converter != nil {
			registry[format] = converter
		}
	}
	return &Orchestrator{converters: registry, logger: logger}
}

// Supports reports whether format has a conversion path.
func (o *Orchestrator) Supports(format plan.Format) bool {
	_, ok := o.converters[format]
	return ok
}

// Run converts p on a single worker goroutine while display renders
// progress on the calling goroutine. The worker outcome is always
// collected: a failed conversion is a *ConversionError, a worker panic or
// broken progress contract a *DefectError.
func (o *Orchestrator) Run(p *plan.Plan, display Display) error {
	o.transition(StatePlanResolved, p.Format)
	converter, ok := o.converters[p.Format]
	if !ok {
		o.transition(StateFailed, p.Format)
		return &NotImplementedError{Format: p.Format}
	}

	tracker := progress.NewTracker()
	result := make(chan error, 1)
	finished := make(chan struct{})

	o.transition(StateConverting, p.Format)
	go func() {
		defer close(finished)
		result <- convert(converter, p, tracker)
	}()

	follower := progress.NewFollower(tracker, finished)
	displayErr := display.Show(follower)
	workerErr := <-result

	err := o.outcome(p, follower, displayErr, workerErr)
	if err != nil {
		o.transition(StateFailed, p.Format)
		return err
	}
	o.transition(StateSucceeded, p.Format)
	return nil
}

func convert(converter Converter, p *plan.Plan, reporter progress.Reporter) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Recovered(r, debug.Stack())
		}
	}()
	if err := converter.Convert(p.Input, p.Output, p.FrameInterval, reporter); err != nil {
		return &ConversionError{Format: p.Format, Err: err}
	}
	return nil
}

func (o *Orchestrator) outcome(p *plan.Plan, follower *progress.Follower, displayErr, workerErr error) error {
	var defect *DefectError
	if errors.As(workerErr, &defect) {
		return workerErr
	}
	var contract *progress.ContractError
	if errors.As(displayErr, &contract) {
		return &DefectError{Err: displayErr}
	}
	if workerErr != nil {
		return workerErr
	}
	if displayErr != nil {
		return displayErr
	}
	if !follower.Board().Done() {
		return &DefectError{Err: &progress.ContractError{
			Previous: follower.Board().Last(),
			Received: follower.Board().Last(),
			Reason:   "conversion finished without completing both phases",
		}}
	}
	o.logger.Debug("conversion complete", "format", string(p.Format), "output", p.OutputPath, "frames", follower.Board().Last().Total)
	return nil
}

func (o *Orchestrator) transition(state State, format plan.Format) {
	o.logger.Debug("pipeline state", "state", string(state), "format", string(format))
}
