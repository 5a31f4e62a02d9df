package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"kubemon/internal/mcptools"
	"kubemon/internal/monitor"
	"kubemon/pkg/logging"
)

// mcpCmdDef defines the mcp command structure
var mcpCmdDef = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the health checks as MCP tools over stdio",
	Long: `Runs an MCP (Model Context Protocol) server on stdin/stdout exposing the
health checks as tools:

  cluster_health      full check round (credentials, services, pods, connectivity)
  pods_list           pod health only
  services_list       service inventory only
  connectivity_test   service probes, optionally for a single service

Configure it in an MCP client, for example:

  {
    "mcpServers": {
      "kubemon": { "command": "kubemon", "args": ["mcp"] }
    }
  }

The server speaks the protocol on stdout, so all logging goes to stderr.`,
	Args: cobra.NoArgs,
	RunE: runMCPCmd,
}

func newMCPCmd() *cobra.Command {
	return mcpCmdDef
}

func runMCPCmd(cmd *cobra.Command, args []string) error {
	// stdout belongs to the MCP transport.
	logging.InitForCLI(logLevelFromFlag(), os.Stderr)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return mcptools.ServeStdio(rootCmd.Version, monitor.New(cfg))
}
