// Package cli implements the patternd command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a workflow function for the actual work. The root
// command is "patternd" with subcommands for different operations:
//
//	patternd run        - Start the monitoring and learning daemon
//	patternd dashboard  - Live metrics TUI
//	patternd patterns   - List learned patterns
//	patternd init       - Create patternd.yaml config
//	patternd version    - Print version information
//	patternd completion - Generate shell completion scripts
//
// # Flag Handling
//
// Global flags (--config, --verbose) are defined on the root command and
// available to all subcommands. Command-specific flags like --interval
// and --json are defined on individual commands in commands.go.
//
// # Configuration
//
// Every command resolves its configuration through config.LoadOrDefault:
// a missing config file means defaults, a malformed one means a warning
// plus defaults. Configuration problems never stop a command from
// running.
package cli
