// Package root contains the root command for the application
package root

import (
	"fjacquet/bill-csv/internal/config"
	"fjacquet/bill-csv/internal/container"
	"fjacquet/bill-csv/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands. It is replaced by the
	// configured logger once a command loads its container.
	Log = logging.NewLogrusAdapter("info", "text")

	// ConfigFile is the value of the --config flag.
	ConfigFile string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "bill-csv",
		Short: "A CLI tool to normalize Alipay and WeChat bill exports and summarize them.",
		Long: `bill-csv merges Alipay and WeChat CSV bill exports into one canonical CSV,
optionally classifies every transaction with a language model and renders a
monthly summary report.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to bill-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&ConfigFile, "config", "c", "",
		"Config file (JSON or YAML); defaults to config.json or config.yaml in the working directory")
}

// LoadContainer loads the configuration named by --config and wires the
// application. Log is switched to the configured logger.
func LoadContainer(opts ...container.Option) (*container.Container, error) {
	cfg, err := config.Load(ConfigFile)
	if err != nil {
		return nil, err
	}
	c, err := container.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	Log = c.GetLogger()
	return c, nil
}
