package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"k8s.io/apimachinery/pkg/util/duration"

	"kubemon/internal/kube"
	"kubemon/internal/monitor"
	"kubemon/internal/reporting"
	"kubemon/pkg/logging"
)

// View renders the dashboard according to the current model state.
func (m model) View() string {
	if m.quitting {
		if m.checking {
			return statusTextStyle.Render("Shutting down, waiting for the running check to finish...") + "\n"
		}
		return statusTextStyle.Render("Monitoring stopped by user") + "\n"
	}
	if m.width == 0 || m.height == 0 {
		return statusTextStyle.Render("Initializing... (waiting for window size)")
	}

	contentWidth := m.width - appStyle.GetHorizontalFrameSize()

	header := m.renderHeader(contentWidth)
	statusLine := m.renderStatusLine()

	var panels string
	if contentWidth >= wideLayoutMinWidth {
		half := contentWidth / 2
		panels = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderPodPanel(half),
			m.renderConnectivityPanel(contentWidth-half),
		)
	} else {
		panels = lipgloss.JoinVertical(lipgloss.Left,
			m.renderPodPanel(contentWidth),
			m.renderConnectivityPanel(contentWidth),
		)
	}

	statusBar := m.renderStatusBar()

	parts := []string{header, statusLine, panels}
	if m.height >= minHeightForLogPanel {
		used := 0
		for _, p := range parts {
			used += lipgloss.Height(p)
		}
		logHeight := m.height - used - lipgloss.Height(statusBar) - 1
		if logHeight >= 4 {
			parts = append(parts, m.renderLogPanel(contentWidth, logHeight))
		}
	}
	parts = append(parts, statusBar)

	return appStyle.Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m model) renderHeader(width int) string {
	cfg := m.checker.Config()
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "default"
	}
	line := fmt.Sprintf("%s %s  namespace %s",
		reporting.IconText(reporting.IconChart, "Kubernetes Application Monitor"),
		cfg.Kubeconfig, namespace)
	return headerStyle.Width(width).Render(line)
}

// renderStatusLine shows the spinner while a round runs, otherwise the
// verdict of the last round and how long ago it finished.
func (m model) renderStatusLine() string {
	if m.checking {
		return fmt.Sprintf("%s Running health check...", m.spinner.View())
	}
	if m.report == nil {
		return subtleTextStyle.Render("Waiting for first check...")
	}

	var verdict string
	switch {
	case m.report.Error != "":
		verdict = unhealthyTextStyle.Render(reporting.IconText(reporting.IconCross, m.report.Error))
	case m.report.Healthy:
		verdict = healthyTextStyle.Render(reporting.IconText(reporting.IconCheck, "Healthy"))
	default:
		verdict = unhealthyTextStyle.Render(reporting.IconText(reporting.IconCross, "Unhealthy"))
	}

	age := duration.HumanDuration(time.Since(m.lastChecked))
	detail := subtleTextStyle.Render(fmt.Sprintf("checked %s ago, round %d, every %s",
		age, m.rounds, duration.HumanDuration(m.interval)))
	return fmt.Sprintf("%s  %s", verdict, detail)
}

func (m model) renderPodPanel(width int) string {
	innerWidth := width - panelStyle.GetHorizontalFrameSize()
	title := panelTitleStyle.Render(reporting.IconText(reporting.IconSearch, "Pod Health"))

	var lines []string
	switch {
	case m.report == nil || !m.report.PodsChecked:
		lines = append(lines, subtleTextStyle.Render("No data yet"))
	case len(m.report.Pods) == 0:
		lines = append(lines, unhealthyTextStyle.Render("No pods found"))
	default:
		for _, pod := range m.report.Pods {
			lines = append(lines, podLine(pod, innerWidth))
		}
		lines = append(lines, "", podSummary(*m.report))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, append([]string{title, ""}, lines...)...)
	return panelStyle.Width(innerWidth).Render(content)
}

func podLine(pod kube.PodStatus, width int) string {
	icon := reporting.IconCross
	style := unhealthyTextStyle
	if pod.Healthy() {
		icon = reporting.IconCheck
		style = healthyTextStyle
	}

	nameWidth := width - 32
	if nameWidth < 10 {
		nameWidth = 10
	}
	name := runewidth.Truncate(pod.Name, nameWidth, "…")

	restarts := fmt.Sprintf("%d restarts", pod.Restarts)
	switch pod.RestartSeverity() {
	case kube.SeverityCritical:
		restarts = cautionTextStyle.Render(reporting.IconText(reporting.IconAlarm, restarts))
	case kube.SeverityWarning:
		restarts = cautionTextStyle.Render(reporting.IconText(reporting.IconWarning, restarts))
	default:
		restarts = subtleTextStyle.Render(restarts)
	}

	return fmt.Sprintf("%s%s %-12s %-7s %s",
		reporting.SafeIcon(icon),
		style.Render(runewidth.FillRight(name, nameWidth)),
		pod.Phase, pod.Ready, restarts)
}

func podSummary(report monitor.Report) string {
	if report.PodsHealthy {
		return healthyTextStyle.Render(fmt.Sprintf("All %d pods are healthy and running!", len(report.Pods)))
	}
	return unhealthyTextStyle.Render("Some pods are not healthy")
}

func (m model) renderConnectivityPanel(width int) string {
	innerWidth := width - panelStyle.GetHorizontalFrameSize()
	title := panelTitleStyle.Render(reporting.IconText(reporting.IconTestTube, "Service Connectivity"))

	var lines []string
	switch {
	case m.report == nil:
		lines = append(lines, subtleTextStyle.Render("No data yet"))
	case !m.report.ConnectivityTested:
		if m.report.PodsChecked && !m.report.PodsHealthy {
			lines = append(lines, cautionTextStyle.Render(
				reporting.IconText(reporting.IconSkip, "Skipped due to unhealthy pods")))
		} else {
			lines = append(lines, subtleTextStyle.Render("Not tested"))
		}
	default:
		for _, record := range m.report.Connectivity {
			lines = append(lines, connectivityLine(record, innerWidth))
		}
		lines = append(lines, "", connectivitySummary(*m.report))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, append([]string{title, ""}, lines...)...)
	return panelStyle.Width(innerWidth).Render(content)
}

func connectivityLine(record monitor.ConnectivityRecord, width int) string {
	icon := reporting.IconCross
	style := unhealthyTextStyle
	if record.Success {
		icon = reporting.IconCheck
		style = healthyTextStyle
	}

	nameWidth := width - 34
	if nameWidth < 10 {
		nameWidth = 10
	}
	name := runewidth.Truncate(record.Service, nameWidth, "…")

	return fmt.Sprintf("%s%s %-18s %s",
		reporting.SafeIcon(icon),
		style.Render(runewidth.FillRight(name, nameWidth)),
		record.Message,
		subtleTextStyle.Render(fmt.Sprintf("%.2fs", record.Seconds)))
}

func connectivitySummary(report monitor.Report) string {
	if report.ConnectivityPassed {
		return healthyTextStyle.Render("All connectivity tests passed!")
	}
	return unhealthyTextStyle.Render("Some connectivity tests failed")
}

func (m model) renderLogPanel(width, height int) string {
	innerWidth := width - panelStyle.GetHorizontalFrameSize()
	title := panelTitleStyle.Render(reporting.IconText(reporting.IconClipboard, "Activity Log"))

	visible := height - 3
	if visible < 1 {
		visible = 1
	}
	start := len(m.logs) - visible
	if start < 0 {
		start = 0
	}

	lines := []string{title, ""}
	if len(m.logs) == 0 {
		lines = append(lines, subtleTextStyle.Render("No activity yet"))
	}
	for _, entry := range m.logs[start:] {
		lines = append(lines, logLine(entry, innerWidth))
	}

	return panelStyle.Width(innerWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func logLine(entry logging.LogEntry, width int) string {
	text := fmt.Sprintf("%s [%s] %s", entry.Timestamp.Format("15:04:05"), entry.Subsystem, entry.Message)
	if entry.Err != nil {
		text = fmt.Sprintf("%s: %v", text, entry.Err)
	}
	text = runewidth.Truncate(text, width, "…")

	switch entry.Level {
	case logging.LevelError:
		return logErrorStyle.Render(text)
	case logging.LevelWarn:
		return logWarnStyle.Render(text)
	case logging.LevelDebug:
		return logDebugStyle.Render(text)
	default:
		return logInfoStyle.Render(text)
	}
}

func (m model) renderStatusBar() string {
	if m.statusMessage != "" {
		switch m.statusKind {
		case statusSuccess:
			return statusSuccessStyle.Render(m.statusMessage)
		case statusError:
			return statusErrorStyle.Render(m.statusMessage)
		default:
			return statusTextStyle.Render(m.statusMessage)
		}
	}
	return m.help.View(m.keys)
}
