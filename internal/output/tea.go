package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jaa/cast2gif/internal/progress"
)

const barWidth = 40

var (
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	waitingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true)
)

// TeaDisplay is the interactive two-bar view for terminals.
type TeaDisplay struct {
	Out  io.Writer
	Tick time.Duration
	now  func() time.Time
}

func NewTeaDisplay(w io.Writer) *TeaDisplay {
	return &TeaDisplay{Out: w, Tick: progress.DefaultTick, now: time.Now}
}

func (d *TeaDisplay) Show(follower *progress.Follower) error {
	m := newTeaModel(follower, d.Tick, d.now)
	p := tea.NewProgram(m,
		tea.WithOutput(d.Out),
		tea.WithInput(nil),
		tea.WithoutCatchPanics(),
		tea.WithoutSignalHandler(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("progress display: %w", err)
	}
	return m.err
}

type tickMsg time.Time

type teaModel struct {
	follower *progress.Follower
	tick     time.Duration
	now      func() time.Time
	started  time.Time
	bars     [2]bubblesprogress.Model
	err      error
	done     bool

	// when each phase first left Waiting
	phaseStart [2]time.Time
}

func newTeaModel(follower *progress.Follower, tick time.Duration, now func() time.Time) *teaModel {
	if tick <= 0 {
		tick = progress.DefaultTick
	}
	if now == nil {
		now = time.Now
	}
	m := &teaModel{follower: follower, tick: tick, now: now, started: now()}
	for i := range m.bars {
		m.bars[i] = bubblesprogress.New(
			bubblesprogress.WithDefaultGradient(),
			bubblesprogress.WithWidth(barWidth),
		)
	}
	return m
}

func (m *teaModel) schedule() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *teaModel) Init() tea.Cmd {
	return m.step()
}

func (m *teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		return m, m.step()
	}
	return m, nil
}

func (m *teaModel) step() tea.Cmd {
	stop, err := m.follower.Step()
	if err != nil {
		m.err = err
		m.done = true
		return tea.Quit
	}
	for i, ind := range m.follower.Board().Indicators() {
		if ind.State != progress.StateWaiting && m.phaseStart[i].IsZero() {
			m.phaseStart[i] = m.now()
		}
	}
	if stop {
		m.done = true
		return tea.Quit
	}
	return m.schedule()
}

// View is also rendered once after Quit, leaving the final board on screen.
func (m *teaModel) View() string {
	if m.err != nil {
		return ""
	}
	var b strings.Builder
	now := m.now()
	elapsed := formatElapsed(now.Sub(m.started))
	for i, ind := range m.follower.Board().Indicators() {
		label := fmt.Sprintf("%-12s", ind.Label())
		switch ind.State {
		case progress.StateDone:
			label = doneStyle.Render(label)
		case progress.StateActive:
			label = labelStyle.Render(label)
		default:
			label = waitingStyle.Render(label)
		}
		eta := formatElapsed(remaining(ind, now.Sub(m.phaseStart[i])))
		fmt.Fprintf(&b, "%s [%s] %s %d/%d (eta %s)\n", label, elapsed, m.bars[i].ViewAs(ind.Fraction()), ind.Position, ind.Capacity, eta)
	}
	return b.String()
}

// remaining extrapolates the phase's average rate so far; it is zero until
// the phase has made progress and once it is done.
func remaining(ind progress.Indicator, spent time.Duration) time.Duration {
	f := ind.Fraction()
	if ind.State != progress.StateActive || f <= 0 || f >= 1 {
		return 0
	}
	return time.Duration(float64(spent) * (1 - f) / f)
}

func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
