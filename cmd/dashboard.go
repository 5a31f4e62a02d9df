package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"kubemon/internal/monitor"
	"kubemon/internal/tui"
	"kubemon/pkg/logging"
)

var dashboardInterval time.Duration

// dashboardCmdDef defines the dashboard command structure
var dashboardCmdDef = &cobra.Command{
	Use:   "dashboard",
	Short: "Watch cluster health in an interactive terminal dashboard",
	Long: `Launches a full-screen terminal dashboard that re-runs the health check
every --interval and shows pod health, service connectivity and an
activity log side by side.

Keys:
  r     run a check immediately
  y     copy the latest report to the clipboard as JSON
  h     toggle the full help
  q     quit`,
	Args: cobra.NoArgs,
	RunE: runDashboardCmd,
}

func newDashboardCmd() *cobra.Command {
	dashboardCmdDef.Flags().DurationVar(&dashboardInterval, "interval", 30*time.Second, "Time between automatic checks")
	return dashboardCmdDef
}

func runDashboardCmd(cmd *cobra.Command, args []string) error {
	// The TUI owns the terminal, so log entries go to a channel it drains
	// into the activity log panel.
	logCh := logging.InitForDashboard(logLevelFromFlag())
	defer logging.CloseChannel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return tui.Run(monitor.New(cfg), dashboardInterval, logCh)
}
