// Package ui provides terminal output primitives shared by the patternd
// CLI and the dashboard.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Healthy metrics, successful operations
//	ColorError     (red)    - Critical metrics, failures
//	ColorWarning   (yellow) - Elevated metrics, warnings
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, timing info
//	ColorSecondary (blue)   - Labels
//
// # Sparklines
//
// RenderSparkline turns a series of values into a one-line block graph,
// colored by the most recent value's threshold: green below 60%, yellow
// from 60%, red from 80%.
//
//	ui.RenderSparkline(history, 30)  // ▁▂▃▅▇█▇▅ ...
//
// # Tables
//
// RenderSimpleTable produces a non-interactive formatted table for CLI
// listings such as 'patternd patterns'.
package ui
