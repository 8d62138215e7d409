package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const (
	blank        rune = 0
	continuation rune = -1
	tabWidth          = 8
)

// Screen is a fixed-size character grid fed with raw terminal output.
// Escape sequences are dropped except for the few that clear the screen
// or home the cursor.
type Screen struct {
	cols, rows int
	cells      [][]rune
	col, row   int
	pending    string
	version    uint64
}

func NewScreen(cols, rows int) *Screen {
	if cols <= 0 {
		cols = 1
	}
	if rows <= 0 {
		rows = 1
	}
	s := &Screen{cols: cols, rows: rows, cells: make([][]rune, rows)}
	for i := range s.cells {
		s.cells[i] = make([]rune, cols)
	}
	return s
}

func (s *Screen) Size() (cols, rows int) {
	return s.cols, s.rows
}

// Version changes whenever the grid content or cursor may have changed.
func (s *Screen) Version() uint64 {
	return s.version
}

var screenControls = []struct {
	seq   string
	apply func(*Screen)
}{
	{seq: "\x1b[2J", apply: (*Screen).clear},
	{seq: "\x1b[3J", apply: (*Screen).clear},
	{seq: "\x1bc", apply: func(s *Screen) { s.clear(); s.home() }},
	{seq: "\x1b[H", apply: (*Screen).home},
	{seq: "\x1b[1;1H", apply: (*Screen).home},
}

func (s *Screen) Write(data string) {
	data = s.pending + data
	s.pending = ""
	if cut := incompleteEscape(data); cut >= 0 {
		s.pending = data[cut:]
		data = data[:cut]
	}
	if data == "" {
		return
	}
	s.version++

	for data != "" {
		at, match := -1, -1
		for i, control := range screenControls {
			if idx := strings.Index(data, control.seq); idx >= 0 && (at < 0 || idx < at) {
				at, match = idx, i
			}
		}
		if at < 0 {
			s.writeText(data)
			return
		}
		s.writeText(data[:at])
		screenControls[match].apply(s)
		data = data[at+len(screenControls[match].seq):]
	}
}

func (s *Screen) writeText(text string) {
	for _, r := range ansi.Strip(text) {
		s.put(r)
	}
}

func (s *Screen) put(r rune) {
	switch r {
	case '\r':
		s.col = 0
		return
	case '\n':
		s.lineFeed()
		return
	case '\b':
		if s.col > 0 {
			s.col--
		}
		return
	case '\t':
		s.col = min((s.col/tabWidth+1)*tabWidth, s.cols-1)
		return
	}
	if r < 0x20 || r == 0x7f {
		return
	}

	width := runewidth.RuneWidth(r)
	if width == 0 {
		return
	}
	if width > s.cols {
		width = s.cols
	}
	if s.col+width > s.cols {
		s.col = 0
		s.lineFeed()
	}
	s.cells[s.row][s.col] = r
	for i := 1; i < width; i++ {
		s.cells[s.row][s.col+i] = continuation
	}
	s.col += width
}

func (s *Screen) lineFeed() {
	if s.row+1 < s.rows {
		s.row++
		return
	}
	first := s.cells[0]
	copy(s.cells, s.cells[1:])
	for i := range first {
		first[i] = blank
	}
	s.cells[s.rows-1] = first
}

func (s *Screen) clear() {
	for _, line := range s.cells {
		for i := range line {
			line[i] = blank
		}
	}
}

func (s *Screen) home() {
	s.col, s.row = 0, 0
}

// Lines renders the grid as text, right-trimmed.
func (s *Screen) Lines() []string {
	lines := make([]string, 0, s.rows)
	for _, line := range s.cells {
		var b strings.Builder
		for _, r := range line {
			switch r {
			case continuation:
			case blank:
				b.WriteByte(' ')
			default:
				b.WriteRune(r)
			}
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines
}

// incompleteEscape returns the index of a trailing escape sequence that
// continues in a later write, or -1.
func incompleteEscape(data string) int {
	idx := strings.LastIndexByte(data, 0x1b)
	if idx < 0 {
		return -1
	}
	tail := data[idx+1:]
	if tail == "" {
		return idx
	}
	switch tail[0] {
	case '[':
		for i := 1; i < len(tail); i++ {
			if tail[i] >= 0x40 && tail[i] <= 0x7e {
				return -1
			}
		}
		return idx
	case ']':
		if strings.ContainsRune(tail, '\a') {
			return -1
		}
		return idx
	}
	return -1
}
