package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/patternd/patternd/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	dashboardIntervalFlag string
	patternsJSONFlag      bool
	patternsTypeFlag      string
	initForce             bool
)

// runCmd starts the monitoring and learning daemon
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the monitoring and learning daemon",
	Long: `Start the patternd daemon: five metric samplers feed a shared
snapshot, and the learning loop turns snapshots into persisted patterns.

Runs until interrupted (Ctrl+C or SIGTERM), then flushes learned
patterns before exiting.

Examples:
  patternd run
  patternd run --config /etc/patternd/config.yaml
  patternd run --verbose`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(Config())
	},
}

// dashboardCmd starts the live metrics TUI
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Live system metrics dashboard",
	Long: `Start an interactive TUI showing live host metrics and the most
recently learned patterns.

Displays CPU, memory, disk, and network metrics with sparkline history
and color-coded severity, plus a panel of recent patterns read from the
pattern file.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  r           Force refresh

Examples:
  patternd dashboard
  patternd dashboard --interval 2s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval := time.Second
		if dashboardIntervalFlag != "" {
			parsed, err := time.ParseDuration(dashboardIntervalFlag)
			if err != nil {
				return errors.WrapWithCode(err, errors.ErrConfig,
					fmt.Sprintf("Invalid interval: %s", dashboardIntervalFlag),
					"Use a valid duration like 1s, 2s, or 1m")
			}
			if parsed < 500*time.Millisecond {
				return errors.New(errors.ErrConfig,
					"Interval too short",
					"Minimum refresh interval is 500ms")
			}
			interval = parsed
		}

		return dashboardCommand(interval)
	},
}

// patternsCmd lists learned patterns
var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List learned patterns",
	Long: `List the patterns persisted by the learning loop, most recently
updated first.

Examples:
  patternd patterns
  patternd patterns --type high_cpu
  patternd patterns --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return patternsCommand(patternsJSONFlag, patternsTypeFlag)
	},
}

// initCmd creates a patternd.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create patternd.yaml configuration",
	Long: `Write a commented patternd.yaml with default settings to the
current directory.

Examples:
  patternd init
  patternd init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for patternd.

Examples:
  # Bash
  patternd completion bash > /etc/bash_completion.d/patternd

  # Zsh
  patternd completion zsh > "${fpath[1]}/_patternd"

  # Fish
  patternd completion fish > ~/.config/fish/completions/patternd.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardIntervalFlag, "interval", "1s", "refresh interval (e.g., 1s, 2s, 1m)")

	patternsCmd.Flags().BoolVar(&patternsJSONFlag, "json", false, "output raw JSON")
	patternsCmd.Flags().StringVar(&patternsTypeFlag, "type", "", "filter by pattern type (e.g., high_cpu)")

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")

	// Register all commands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
