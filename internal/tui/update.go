package tui

import (
	"context"
	"encoding/json"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"kubemon/pkg/logging"
)

// For mocking in tests
var clipboardWriteFn = clipboard.WriteAll

// Update handles all incoming messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case checkDueMsg:
		if msg.seq != m.checkSeq {
			// A timer armed before a manual refresh; the newer chain owns
			// the cadence now.
			return m, nil
		}
		return m.startCheck()

	case reportMsg:
		m.checking = false
		if m.quitting {
			// The quit key waited for this round to unwind; exit now.
			return m, tea.Quit
		}
		m.rounds++
		report := msg.report
		m.report = &report
		m.lastChecked = report.Timestamp
		cmd := m.scheduleNextCheck()
		return m, cmd

	case logEntryMsg:
		m.logs = append(m.logs, msg.entry)
		if len(m.logs) > maxLogLines {
			m.logs = m.logs[len(m.logs)-maxLogLines:]
		}
		return m, waitForLogEntry(m.logCh)

	case logClosedMsg:
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
		}
		return m, nil

	case spinner.TickMsg:
		if !m.checking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.stopRounds()
		if m.checking {
			// The cancelled round still has to close its tunnel; exit
			// once its reportMsg arrives.
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		return m.startCheck()

	case key.Matches(msg, m.keys.CopyReport):
		return m.copyReport()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

// startCheck kicks off a round unless one is already in flight or the
// program is shutting down.
func (m model) startCheck() (tea.Model, tea.Cmd) {
	if m.checking || m.quitting {
		return m, nil
	}
	m.checking = true
	return m, tea.Batch(runCheck(m.roundCtx, m.checker), m.spinner.Tick)
}

func (m model) copyReport() (tea.Model, tea.Cmd) {
	if m.report == nil {
		return m, m.setStatus("No report to copy yet", statusInfo)
	}
	summary, err := json.MarshalIndent(m.report, "", "  ")
	if err != nil {
		return m, m.setStatus("Copy failed", statusError)
	}
	if err := clipboardWriteFn(string(summary)); err != nil {
		logging.Error(subsystem, err, "Failed to copy report to clipboard")
		return m, m.setStatus("Copy failed", statusError)
	}
	return m, m.setStatus("Report copied to clipboard", statusSuccess)
}

// setStatus shows a transient status bar message and schedules its expiry.
func (m *model) setStatus(text string, kind statusKind) tea.Cmd {
	m.statusMessage = text
	m.statusKind = kind
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusClearAfter, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// scheduleNextCheck arms the interval timer for the following round and
// advances the sequence number, retiring any timer armed earlier.
func (m *model) scheduleNextCheck() tea.Cmd {
	m.checkSeq++
	seq := m.checkSeq
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return checkDueMsg{seq: seq}
	})
}

// runCheck executes one full round off the update loop.
func runCheck(ctx context.Context, checker Checker) tea.Cmd {
	return func() tea.Msg {
		return reportMsg{report: checker.FullCheck(ctx)}
	}
}

// waitForLogEntry forwards the next entry from the logging channel.
func waitForLogEntry(ch <-chan logging.LogEntry) tea.Cmd {
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return logClosedMsg{}
		}
		return logEntryMsg{entry: entry}
	}
}
