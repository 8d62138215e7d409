// Package cast reads asciinema recordings in the asciicast v2 format: a
// JSON header line followed by one JSON array per event.
package cast

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

type Header struct {
	Version   int               `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Timestamp int64             `json:"timestamp,omitempty"`
	Duration  float64           `json:"duration,omitempty"`
	Title     string            `json:"title,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

type EventCode string

const (
	EventOutput EventCode = "o"
	EventInput  EventCode = "i"
	EventMarker EventCode = "m"
	EventResize EventCode = "r"
)

type Event struct {
	Time float64
	Code EventCode
	Data string
}

type Recording struct {
	Header Header
	Events []Event
}

// Duration is the time of the last event, or the header duration when it
// is longer.
func (r *Recording) Duration() float64 {
	duration := r.Header.Duration
	if n := len(r.Events); n > 0 && r.Events[n-1].Time > duration {
		duration = r.Events[n-1].Time
	}
	return duration
}

// Output returns only the events that write to the terminal.
func (r *Recording) Output() []Event {
	out := make([]Event, 0, len(r.Events))
	for _, event := range r.Events {
		if event.Code == EventOutput {
			out = append(out, event)
		}
	}
	return out
}

// ErrUnsupportedVersion is returned for anything but asciicast v2.
var ErrUnsupportedVersion = errors.New("unsupported asciicast version")

// Read parses a complete recording. Event times must not go backwards.
func Read(r io.Reader) (*Recording, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	rec := &Recording{}
	lineNo := 0
	headerSeen := false
	last := 0.0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !headerSeen {
			if err := json.Unmarshal([]byte(line), &rec.Header); err != nil {
				return nil, fmt.Errorf("parse header (line %d): %w", lineNo, err)
			}
			if rec.Header.Version != 2 {
				return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, rec.Header.Version)
			}
			if rec.Header.Width <= 0 {
				rec.Header.Width = DefaultWidth
			}
			if rec.Header.Height <= 0 {
				rec.Header.Height = DefaultHeight
			}
			headerSeen = true
			continue
		}

		event, err := parseEvent(line)
		if err != nil {
			return nil, fmt.Errorf("parse event (line %d): %w", lineNo, err)
		}
		if event.Time < last {
			return nil, fmt.Errorf("parse event (line %d): time %.6f goes backwards", lineNo, event.Time)
		}
		last = event.Time
		rec.Events = append(rec.Events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	if !headerSeen {
		return nil, errors.New("recording is empty")
	}
	return rec, nil
}

func parseEvent(line string) (Event, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Event{}, err
	}
	if len(raw) != 3 {
		return Event{}, fmt.Errorf("expected [time, code, data], got %d fields", len(raw))
	}

	var event Event
	if err := json.Unmarshal(raw[0], &event.Time); err != nil {
		return Event{}, fmt.Errorf("time: %w", err)
	}
	if event.Time < 0 {
		return Event{}, fmt.Errorf("time: negative value %.6f", event.Time)
	}
	var code string
	if err := json.Unmarshal(raw[1], &code); err != nil {
		return Event{}, fmt.Errorf("code: %w", err)
	}
	event.Code = EventCode(code)
	if err := json.Unmarshal(raw[2], &event.Data); err != nil {
		return Event{}, fmt.Errorf("data: %w", err)
	}
	return event, nil
}
