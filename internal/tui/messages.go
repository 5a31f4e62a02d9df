package tui

import (
	"kubemon/internal/monitor"
	"kubemon/pkg/logging"
)

// checkDueMsg asks for a new monitoring round. Emitted on startup and by the
// interval ticker. Only the message carrying the current sequence number
// starts anything: a timer armed before a manual refresh would otherwise
// fire late and spawn a second interval chain next to the new one.
type checkDueMsg struct {
	seq int
}

// reportMsg carries the outcome of a finished round.
type reportMsg struct {
	report monitor.Report
}

// logEntryMsg forwards one entry from the logging channel.
type logEntryMsg struct {
	entry logging.LogEntry
}

// logClosedMsg signals that the logging channel was closed.
type logClosedMsg struct{}

// clearStatusMsg expires a transient status bar message. Only the message
// matching the current sequence number clears anything, so a newer status is
// never wiped by an older timer.
type clearStatusMsg struct {
	seq int
}
