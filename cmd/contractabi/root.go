package main

import (
	"os"

	"contractabi/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var version = "0.1.0"

// GlobalFlags are shared by every subcommand.
type GlobalFlags struct {
	ConfigPath string
	Verbose    int
}

var (
	globalFlags GlobalFlags
	cfg         *config.Config
	log         = commonlog.GetLogger("contractabi.cli")
)

var rootCmd = &cobra.Command{
	Use:   "contractabi",
	Short: "Build the ABI model of a contract declaration file",
	Long: `contractabi reads a TypeScript-like declaration file, finds the contract
root class and its storage classes, resolves every parameter, return and
field type, and prints the resulting model with its type table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configureLogging(globalFlags.Verbose)

		var err error
		cfg, err = config.Load(globalFlags.ConfigPath)
		if err != nil {
			return err
		}
		log.Debugf("configuration: max depth %d, primary key %s", cfg.Resolver.MaxDepth, cfg.Resolver.PrimaryKeyType)
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "YAML configuration file (default: built-in markers and limits)")
	rootCmd.PersistentFlags().CountVarP(&globalFlags.Verbose, "verbose", "v", "log progress to stderr (repeat for more detail)")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

// configureLogging keeps the log to errors unless -v is given; diagnostics
// are rendered by the reporter, not the log.
func configureLogging(verbose int) {
	if verbose == 0 {
		commonlog.Configure(-3, nil)
		return
	}
	commonlog.Configure(verbose-1, nil)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("contractabi %s\n", version)
	},
}
