package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kubemon/pkg/logging"
)

// Run starts the dashboard and blocks until the user quits. The log channel
// comes from logging.InitForDashboard so that log output feeds the activity
// panel instead of corrupting the alternate screen. The round context is
// cancelled on the way out, so no kubectl child outlives the program even
// when it ends through an error path.
func Run(checker Checker, interval time.Duration, logCh <-chan logging.LogEntry) error {
	m := newModel(checker, interval, logCh)
	defer m.stopRounds()

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
