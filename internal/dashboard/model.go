package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/patternd/patternd/internal/learn"
	"github.com/patternd/patternd/internal/monitor"
)

// BreakpointWide is the terminal width at which the metrics and pattern
// panels sit side by side instead of stacked.
const BreakpointWide = 100

// maxPatternRows bounds the recent-patterns panel.
const maxPatternRows = 8

// MetricsSource is the slice of the monitor the dashboard reads.
type MetricsSource interface {
	Current() *monitor.Snapshot
}

// Model is the Bubble Tea model for the live dashboard.
type Model struct {
	source       MetricsSource
	patternsPath string
	interval     time.Duration
	history      *History

	snap        *monitor.Snapshot
	patterns    []learn.Pattern
	patternsErr string

	width      int
	height     int
	startTime  time.Time
	lastUpdate time.Time
	spin       spinner.Model
	quitting   bool
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// patternsMsg carries a fresh read of the persisted pattern file.
type patternsMsg struct {
	patterns []learn.Pattern
	err      error
}

// NewModel creates a dashboard refreshing from source every interval and
// reading recent patterns from patternsPath.
func NewModel(source MetricsSource, patternsPath string, interval time.Duration) Model {
	if interval <= 0 {
		interval = time.Second
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = TitleStyle

	return Model{
		source:       source,
		patternsPath: patternsPath,
		interval:     interval,
		history:      NewHistory(DefaultHistorySize),
		startTime:    time.Now(),
		spin:         sp,
	}
}

// Init starts the refresh timer and the waiting spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.loadPatternsCmd(),
		m.spin.Tick,
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			m.refresh()
			return m, m.loadPatternsCmd()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.refresh()
		return m, tea.Batch(m.tickCmd(), m.loadPatternsCmd())

	case patternsMsg:
		if msg.err != nil {
			m.patternsErr = msg.err.Error()
		} else {
			m.patterns = msg.patterns
			m.patternsErr = ""
		}

	case spinner.TickMsg:
		// Keep the spinner animated only while waiting for data.
		if m.snap == nil {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// refresh pulls the latest snapshot and records it in the history.
func (m *Model) refresh() {
	snap := m.source.Current()
	if snap != nil {
		m.history.Push(snap)
		m.lastUpdate = time.Now()
	}
	m.snap = snap
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadPatternsCmd re-reads the pattern file off the update loop.
func (m Model) loadPatternsCmd() tea.Cmd {
	path := m.patternsPath
	return func() tea.Msg {
		patterns, err := learn.ReadFile(path)
		return patternsMsg{patterns: patterns, err: err}
	}
}
