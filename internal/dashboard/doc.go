// Package dashboard implements the live TUI for patternd.
//
// The dashboard renders the monitor's current snapshot alongside the most
// recently learned patterns, refreshing on a fixed interval.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm
// Architecture (Model-Update-View pattern):
//
//   - Model: holds the latest snapshot, metric history, and pattern list
//   - Update: processes messages (keystrokes, tick events, pattern reads)
//   - View: renders the current state to a string for display
//
// # Refresh Cycle
//
//  1. tickMsg fires at the configured interval (default 1s)
//  2. the model pulls Monitor.Current() and pushes it into the History
//     ring buffers that drive the CPU and memory sparklines
//  3. a background command re-reads the persisted pattern file and
//     delivers it as a patternsMsg
//  4. View() re-renders with the new data
//
// Before the first CPU sample exists the dashboard shows a waiting
// spinner instead of fabricated zero values.
//
// # Layout
//
// Terminals at least 100 columns wide get the metrics and pattern panels
// side by side; narrower terminals stack them.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Force refresh
package dashboard
