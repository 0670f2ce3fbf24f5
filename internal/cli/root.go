package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var (
	configFlag  string
	verboseFlag bool
)

// rootCmd is the base patternd command.
var rootCmd = &cobra.Command{
	Use:   "patternd",
	Short: "Host metrics sampler and resource-pattern learner",
	Long: `patternd continuously samples host resource metrics (CPU, memory,
disk, network, processes) and runs a lightweight pattern detector that
flags sustained resource-pressure conditions, persisting what it learns
to a durable pattern file.

Start the daemon with 'patternd run', watch live metrics with
'patternd dashboard', and inspect learned patterns with
'patternd patterns'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			// The logger gates debug output on this variable.
			os.Setenv("PATTERND_DEBUG", "1")
		}
	},
}

// Execute runs the root command. Errors print their full rendering
// (message, suggestion, cause) and exit non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Config returns the value of the global --config flag.
func Config() string {
	return configFlag
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
}
