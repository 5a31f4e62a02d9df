// Package reporting renders monitoring reports for humans: colored glyph
// tables per section plus banner and summary blocks.
package reporting

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"kubemon/internal/kube"
	"kubemon/internal/monitor"
)

const bannerWidth = 80

// Renderer writes report sections to a single output stream.
type Renderer struct {
	out io.Writer
}

// NewRenderer returns a Renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Banner prints the run header with a timestamp.
func (r *Renderer) Banner(title string, ts time.Time) {
	line := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(r.out, BannerStyle.Render(line))
	fmt.Fprintln(r.out, BannerStyle.Render(IconText(IconRocket, title)))
	fmt.Fprintln(r.out, BannerStyle.Render(IconText(IconCalendar, ts.Format("2006-01-02 15:04:05"))))
	fmt.Fprintln(r.out, BannerStyle.Render(line))
}

// Section prints a section heading followed by a rule.
func (r *Renderer) Section(icon, title string) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, SectionStyle.Render(IconText(icon, title)))
	fmt.Fprintln(r.out, strings.Repeat("=", bannerWidth))
}

// Failure prints a fatal check failure.
func (r *Renderer) Failure(msg string) {
	fmt.Fprintln(r.out, UnhealthyStyle.Render(IconText(IconCross, msg)))
}

// ServiceSection renders the cluster service inventory.
func (r *Renderer) ServiceSection(services []kube.ServiceInfo) {
	r.Section(IconClipboard, "Service Information...")
	if len(services) == 0 {
		fmt.Fprintln(r.out, SubtleStyle.Render("No services found"))
		return
	}

	t := r.newTable()
	t.AppendHeader(headerRow("Service Name", "Kind", "Type", "Cluster-IP", "External-IP", "Port(s)"))
	for _, svc := range services {
		t.AppendRow(table.Row{
			svc.Name,
			IconText(KindIcon(string(svc.Kind)), string(svc.Kind)),
			svc.Type,
			svc.ClusterIP,
			svc.ExternalIP,
			svc.Ports,
		})
	}
	t.Render()
}

// PodSection renders pod health with per-pod status and restart indicators.
func (r *Renderer) PodSection(pods []kube.PodStatus, healthy bool) {
	r.Section(IconSearch, "Checking Pod Status...")
	if len(pods) == 0 {
		fmt.Fprintln(r.out, UnhealthyStyle.Render(IconText(IconCross, "No pods found")))
		return
	}

	t := r.newTable()
	t.AppendHeader(headerRow("Status", "Pod Name", "Phase", "Ready", "Restarts", "Age"))
	for _, pod := range pods {
		statusIcon := IconCheck
		rowStyle := HealthyStyle
		if !pod.Healthy() {
			statusIcon = IconCross
			rowStyle = UnhealthyStyle
		}
		t.AppendRow(table.Row{
			statusIcon,
			pod.Name,
			rowStyle.Render(pod.Phase),
			rowStyle.Render(pod.Ready),
			restartCell(pod),
			pod.Age,
		})
	}
	t.Render()

	if healthy {
		fmt.Fprintln(r.out, HealthyStyle.Render(IconText(IconParty,
			fmt.Sprintf("All %d pods are healthy and running!", len(pods)))))
	} else {
		fmt.Fprintln(r.out, UnhealthyStyle.Render(IconText(IconWarning,
			"Some pods are not healthy. Check the details above.")))
	}
}

// ConnectivitySection renders the per-service probe results.
func (r *Renderer) ConnectivitySection(records []monitor.ConnectivityRecord, passed bool) {
	r.Section(IconTestTube, "Running Service Connectivity Tests...")

	t := r.newTable()
	t.AppendHeader(headerRow("Status", "Service", "Result", "Port", "Type", "Response"))
	for _, rec := range records {
		statusIcon := IconCheck
		style := HealthyStyle
		if !rec.Success {
			statusIcon = IconCross
			style = UnhealthyStyle
		}
		t.AppendRow(table.Row{
			statusIcon,
			rec.Service,
			style.Render(rec.Message),
			strconv.Itoa(rec.Port),
			rec.Protocol,
			fmt.Sprintf("%.2fs", rec.Seconds),
		})
	}
	t.Render()

	if passed {
		fmt.Fprintln(r.out, HealthyStyle.Render(IconText(IconCheck, "All connectivity tests passed!")))
	} else {
		fmt.Fprintln(r.out, UnhealthyStyle.Render(IconText(IconWarning,
			"Some connectivity tests failed. Check service logs for details.")))
	}
}

// SkippedConnectivity notes that probing was skipped for an unhealthy fleet.
func (r *Renderer) SkippedConnectivity() {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, CautionStyle.Render(IconText(IconSkip, "Skipping connectivity tests due to unhealthy pods")))
}

// Summary prints the final verdict block for a full check.
func (r *Renderer) Summary(report monitor.Report) {
	r.Section(IconChart, "Summary:")

	if report.Healthy {
		fmt.Fprintln(r.out, HealthyStyle.Render(IconText(IconParty, "All checks passed! Application is healthy.")))
		fmt.Fprintln(r.out, HealthyStyle.Render(IconText(IconCheck, "All pods are running")))
		fmt.Fprintln(r.out, HealthyStyle.Render(IconText(IconCheck, "All services are accessible")))
		return
	}

	fmt.Fprintln(r.out, UnhealthyStyle.Render(IconText(IconWarning, "Some checks failed:")))
	if report.Error != "" {
		fmt.Fprintln(r.out, UnhealthyStyle.Render("   - "+report.Error))
	}
	if report.PodsChecked && !report.PodsHealthy {
		fmt.Fprintln(r.out, UnhealthyStyle.Render("   - Pod health issues detected"))
	}
	if !report.ConnectivityTested || !report.ConnectivityPassed {
		fmt.Fprintln(r.out, UnhealthyStyle.Render("   - Service connectivity issues detected"))
	}
}

// FullReport composes every section of a full check in order.
func (r *Renderer) FullReport(report monitor.Report) {
	r.Banner("Kubernetes Health Check & Connectivity Tests", report.Timestamp)

	if report.Error != "" && !report.PodsChecked {
		// The credentials precondition failed; nothing else ran.
		r.Failure(report.Error)
		return
	}

	if len(report.Services) > 0 {
		r.ServiceSection(report.Services)
	}
	r.PodSection(report.Pods, report.PodsHealthy)

	if report.ConnectivityTested {
		r.ConnectivitySection(report.Connectivity, report.ConnectivityPassed)
	} else {
		r.SkippedConnectivity()
	}

	r.Summary(report)
}

// RoundHeader separates rounds in continuous mode.
func (r *Renderer) RoundHeader(ts time.Time) {
	line := strings.Repeat("=", 50)
	fmt.Fprintf(r.out, "\n%s\n", line)
	fmt.Fprintln(r.out, IconText(IconClock, ts.Format("2006-01-02 15:04:05")))
	fmt.Fprintln(r.out, line)
}

// WaitingNotice announces the pause before the next round.
func (r *Renderer) WaitingNotice(interval time.Duration) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, SubtleStyle.Render(IconText(IconSleep,
		fmt.Sprintf("Waiting %s for next check...", interval))))
}

// StoppedNotice announces a user-requested stop.
func (r *Renderer) StoppedNotice() {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, IconText(IconStop, "Monitoring stopped by user"))
}

func (r *Renderer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleRounded)
	return t
}

func headerRow(cols ...string) table.Row {
	row := make(table.Row, len(cols))
	for i, col := range cols {
		row[i] = text.FgHiCyan.Sprint(col)
	}
	return row
}

func restartCell(pod kube.PodStatus) string {
	switch pod.RestartSeverity() {
	case kube.SeverityCritical:
		return UnhealthyStyle.Render(IconText(IconAlarm, fmt.Sprintf("%d restarts", pod.Restarts)))
	case kube.SeverityWarning:
		return CautionStyle.Render(IconText(IconWarning, fmt.Sprintf("%d restarts", pod.Restarts)))
	default:
		return HealthyStyle.Render("No restarts")
	}
}
