package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"kubemon/pkg/logging"
)

func sizedModel(t *testing.T, checker Checker) model {
	t.Helper()
	m := testModel(checker)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func TestView_InitializingWithoutWindowSize(t *testing.T) {
	m := testModel(newFakeChecker())

	assert.Contains(t, m.View(), "Initializing")
}

func TestView_Quitting(t *testing.T) {
	m := sizedModel(t, newFakeChecker())
	m.quitting = true

	assert.Contains(t, m.View(), "Monitoring stopped by user")
}

func TestView_QuittingWaitsForRunningCheck(t *testing.T) {
	m := sizedModel(t, newFakeChecker())
	m.quitting = true
	m.checking = true

	assert.Contains(t, m.View(), "Shutting down")
}

func TestView_WaitingForFirstCheck(t *testing.T) {
	m := sizedModel(t, newFakeChecker())

	out := m.View()

	assert.Contains(t, out, "Waiting for first check")
	assert.Contains(t, out, "No data yet")
}

func TestView_HealthyReport(t *testing.T) {
	checker := newFakeChecker()
	m := sizedModel(t, checker)
	m, _ = update(t, m, reportMsg{report: checker.report})

	out := m.View()

	assert.Contains(t, out, "Kubernetes Application Monitor")
	assert.Contains(t, out, "Pod Health")
	assert.Contains(t, out, "Service Connectivity")
	assert.Contains(t, out, "frontend-7d8f9c6b5-x2j4k")
	assert.Contains(t, out, "HTTP 200")
	assert.Contains(t, out, "Healthy")
	assert.Contains(t, out, "round 1")
}

func TestView_SkippedConnectivity(t *testing.T) {
	checker := newFakeChecker()
	report := checker.report
	report.PodsHealthy = false
	report.ConnectivityTested = false
	report.Connectivity = nil
	report.Healthy = false
	m := sizedModel(t, checker)
	m, _ = update(t, m, reportMsg{report: report})

	out := m.View()

	assert.Contains(t, out, "Skipped due to unhealthy pods")
	assert.Contains(t, out, "Unhealthy")
}

func TestView_CredentialsFailure(t *testing.T) {
	checker := newFakeChecker()
	report := checker.report
	report.Error = "kubeconfig file not found: kind-kubeconfig.yaml"
	report.PodsChecked = false
	report.Pods = nil
	report.Healthy = false
	m := sizedModel(t, checker)
	m, _ = update(t, m, reportMsg{report: report})

	assert.Contains(t, m.View(), "kubeconfig file not found")
}

func TestView_SpinnerWhileChecking(t *testing.T) {
	m := sizedModel(t, newFakeChecker())
	m, _ = update(t, m, checkDueMsg{})

	assert.Contains(t, m.View(), "Running health check")
}

func TestView_ActivityLog(t *testing.T) {
	checker := newFakeChecker()
	m := sizedModel(t, checker)
	entry := logging.LogEntry{
		Timestamp: time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC),
		Level:     logging.LevelWarn,
		Subsystem: "Monitor",
		Message:   "Pod fleet unhealthy, skipping connectivity tests",
	}
	m, _ = update(t, m, logEntryMsg{entry: entry})

	out := m.View()

	assert.Contains(t, out, "Activity Log")
	assert.Contains(t, out, "12:30:45")
	assert.Contains(t, out, "[Monitor]")
}

func TestView_StatusBarShowsTransientMessage(t *testing.T) {
	m := sizedModel(t, newFakeChecker())
	m.setStatus("Report copied to clipboard", statusSuccess)

	assert.Contains(t, m.View(), "Report copied to clipboard")
}
