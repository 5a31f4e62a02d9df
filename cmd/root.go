package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"kubemon/internal/config"
	"kubemon/pkg/logging"
)

// Persistent flags shared by every subcommand. Empty string means
// "use the configured value".
var (
	flagKubeconfig string
	flagNamespace  string
	flagLogLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kubemon",
	Short: "Health checks and connectivity tests for Kubernetes applications",
	Long: `kubemon verifies that an application deployed on Kubernetes is actually
working: it lists the cluster services, checks that every pod is running
and ready, and probes each configured service through a temporary
port-forward tunnel.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid arguments, failed checks)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set up version template
	rootCmd.SetVersionTemplate(`{{printf "kubemon version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagKubeconfig, "kubeconfig", "", "Path to the kubeconfig file (overrides config files)")
	rootCmd.PersistentFlags().StringVar(&flagNamespace, "namespace", "", "Namespace to inspect (overrides config files)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log verbosity: debug, info, warn or error")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newMonitorCmd())
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}

// loadConfig builds the effective configuration for one command run:
// layered config files and the KUBECONFIG environment variable first,
// then persistent flag overrides on top. A .env file in the working
// directory is loaded beforehand so local setups can park KUBECONFIG
// there; a missing .env is fine.
func loadConfig() (config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return config.Config{}, err
	}
	if flagKubeconfig != "" {
		cfg.Kubeconfig = flagKubeconfig
	}
	if flagNamespace != "" {
		cfg.Namespace = flagNamespace
	}
	return cfg, nil
}

// logLevelFromFlag maps the --log-level flag to a logging level,
// defaulting to info for anything unrecognized.
func logLevelFromFlag() logging.LogLevel {
	switch flagLogLevel {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}
