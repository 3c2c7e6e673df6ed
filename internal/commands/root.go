package commands

import (
	"github.com/spf13/cobra"

	"github.com/decemberbank/ledger/internal/buildinfo"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	devLog     bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "decemberbank",
		Short:   "Personal banking ledger with interest and tax simulation",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigFile, "bank configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config")
	rootCmd.PersistentFlags().BoolVar(&opts.devLog, "dev-log", false, "human-readable development logging")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newOverviewCommand(opts))
	rootCmd.AddCommand(newSimulateCommand(opts))
	rootCmd.AddCommand(newRunCommand(opts))
	rootCmd.AddCommand(newExportCommand(opts))

	return rootCmd
}
