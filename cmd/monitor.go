package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"kubemon/internal/monitor"
	"kubemon/internal/reporting"
	"kubemon/pkg/logging"
)

var monitorInterval time.Duration

// monitorCmdDef defines the monitor command structure
var monitorCmdDef = &cobra.Command{
	Use:   "monitor",
	Short: "Run health checks continuously until interrupted",
	Long: `Runs the full health check round over and over, waiting --interval
between rounds, until interrupted with Ctrl+C. Each round prints a
timestamp header followed by the complete console report.

This is the scripted counterpart of 'kubemon dashboard': it writes plain
sequential output, suitable for terminals without a TUI, log capture, or
running under a supervisor.`,
	Args: cobra.NoArgs,
	RunE: runMonitorCmd,
}

func newMonitorCmd() *cobra.Command {
	monitorCmdDef.Flags().DurationVar(&monitorInterval, "interval", 0, "Time between rounds (default from config, 60s)")
	return monitorCmdDef
}

func runMonitorCmd(cmd *cobra.Command, args []string) error {
	logging.InitForCLI(logLevelFromFlag(), os.Stderr)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	interval := cfg.Monitor.Interval
	if monitorInterval > 0 {
		interval = monitorInterval
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupts gracefully: finish nothing mid-round, just stop
	// waiting for the next one.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	r := reporting.NewRenderer(os.Stdout)
	m := monitor.New(cfg)

	m.Loop(ctx, interval, func(report monitor.Report) {
		r.RoundHeader(report.Timestamp)
		r.FullReport(report)
		if ctx.Err() == nil {
			r.WaitingNotice(interval)
		}
	})

	r.StoppedNotice()
	return nil
}
