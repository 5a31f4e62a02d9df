// Package tui implements the live dashboard: a Bubble Tea program that runs
// full monitoring rounds on an interval and renders the latest report next to
// a rolling activity log.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kubemon/internal/config"
	"kubemon/internal/monitor"
	"kubemon/pkg/logging"
)

const subsystem = "Dashboard"

// Checker runs monitoring rounds for the dashboard.
type Checker interface {
	Config() config.Config
	FullCheck(ctx context.Context) monitor.Report
}

// statusKind colors the transient status bar message.
type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

const (
	maxLogLines      = 200
	statusClearAfter = 3 * time.Second
)

type model struct {
	checker  Checker
	interval time.Duration

	// roundCtx bounds every FullCheck the dashboard starts; stopRounds
	// cancels it when the program shuts down so no in-flight round can
	// leave kubectl children behind.
	roundCtx   context.Context
	stopRounds context.CancelFunc

	width  int
	height int

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	checking    bool
	checkSeq    int
	rounds      int
	report      *monitor.Report
	lastChecked time.Time

	logCh <-chan logging.LogEntry
	logs  []logging.LogEntry

	statusMessage string
	statusKind    statusKind
	statusSeq     int

	quitting bool
}

// newModel constructs the initial dashboard model.
func newModel(checker Checker, interval time.Duration, logCh <-chan logging.LogEntry) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	h := help.New()

	ctx, cancel := context.WithCancel(context.Background())

	return model{
		checker:    checker,
		interval:   interval,
		roundCtx:   ctx,
		stopRounds: cancel,
		keys:       DefaultKeyMap(),
		help:       h,
		spinner:    s,
		logCh:      logCh,
	}
}

// Init starts the first round, the spinner, and the log channel reader.
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		func() tea.Msg { return checkDueMsg{} },
		m.spinner.Tick,
	}
	if m.logCh != nil {
		cmds = append(cmds, waitForLogEntry(m.logCh))
	}
	return tea.Batch(cmds...)
}
