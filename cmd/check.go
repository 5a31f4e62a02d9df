package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"kubemon/internal/monitor"
	"kubemon/internal/reporting"
	"kubemon/pkg/logging"
)

var (
	checkPodsOnly         bool
	checkConnectivityOnly bool
	checkServicesOnly     bool
	checkOutput           string
)

// checkCmdDef defines the check command structure
var checkCmdDef = &cobra.Command{
	Use:   "check",
	Short: "Run a one-shot health check and exit 0 or 1",
	Long: `Runs one health check round against the configured cluster and exits
with code 0 when everything is healthy, 1 otherwise.

A full round verifies the kubeconfig, lists the cluster services, checks
that every pod is running and ready, and then probes each configured
service through a temporary port-forward tunnel. When any pod is
unhealthy the connectivity tests are skipped: they would only add noise.

Partial rounds run a single stage:
  kubemon check --pods-only           # pod health only
  kubemon check --connectivity-only   # service probes only
  kubemon check --services            # service inventory only

Output defaults to colored console tables; use -o json or -o yaml to
emit the raw report for scripting.`,
	Args: cobra.NoArgs,
	RunE: runCheckCmd,
}

func newCheckCmd() *cobra.Command {
	checkCmdDef.Flags().BoolVar(&checkPodsOnly, "pods-only", false, "Only check pod health")
	checkCmdDef.Flags().BoolVar(&checkConnectivityOnly, "connectivity-only", false, "Only run service connectivity tests")
	checkCmdDef.Flags().BoolVar(&checkServicesOnly, "services", false, "Only list cluster services")
	checkCmdDef.Flags().StringVarP(&checkOutput, "output", "o", "table", "Output format: table, json or yaml")

	checkCmdDef.MarkFlagsMutuallyExclusive("pods-only", "connectivity-only", "services")

	checkCmdDef.PreRunE = func(cmd *cobra.Command, args []string) error {
		switch checkOutput {
		case "table", "json", "yaml":
			return nil
		default:
			return fmt.Errorf("invalid output format '%s', must be 'table', 'json' or 'yaml'", checkOutput)
		}
	}
	return checkCmdDef
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	logging.InitForCLI(logLevelFromFlag(), os.Stderr)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m := monitor.New(cfg)
	ctx := cmd.Context()

	var report monitor.Report
	switch {
	case checkPodsOnly:
		report = m.CheckPods(ctx)
	case checkConnectivityOnly:
		report = m.CheckConnectivity(ctx)
	case checkServicesOnly:
		report = m.CheckServices(ctx)
	default:
		report = m.FullCheck(ctx)
	}

	if err := renderReport(report); err != nil {
		return err
	}

	// Exit code carries the verdict so the command works as a probe
	// in scripts and CI.
	if !report.Healthy {
		os.Exit(1)
	}
	return nil
}

// renderReport writes the report in the requested output format.
func renderReport(report monitor.Report) error {
	switch checkOutput {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report as JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to encode report as YAML: %w", err)
		}
		fmt.Print(string(data))
		return nil
	}

	r := reporting.NewRenderer(os.Stdout)
	switch {
	case checkPodsOnly:
		r.PodSection(report.Pods, report.PodsHealthy)
	case checkConnectivityOnly:
		r.ConnectivitySection(report.Connectivity, report.ConnectivityPassed)
	case checkServicesOnly:
		if report.Error != "" {
			r.Failure(report.Error)
			return nil
		}
		r.ServiceSection(report.Services)
	default:
		r.FullReport(report)
	}
	return nil
}
