package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/patternd/patternd/internal/learn"
	"github.com/patternd/patternd/internal/ui"
)

const (
	minPanelWidth = 40
	barWidth      = 20
	sparkWidth    = 30
)

// View renders the full dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.snap == nil {
		b.WriteString(m.renderWaiting())
	} else {
		b.WriteString(m.renderPanels())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	title := TitleStyle.Render("patternd")

	uptime := time.Since(m.startTime).Round(time.Second)
	var updateText string
	switch {
	case m.lastUpdate.IsZero():
		updateText = "no data yet"
	default:
		since := int(time.Since(m.lastUpdate).Seconds())
		if since <= 0 {
			updateText = "updated just now"
		} else {
			updateText = fmt.Sprintf("updated %ds ago", since)
		}
	}

	stats := LabelStyle.Render(fmt.Sprintf(" | up %s | %s", uptime, updateText))
	return HeaderStyle.Render(title + stats)
}

func (m Model) renderWaiting() string {
	msg := m.spin.View() + " " + LabelStyle.Render("Waiting for first sample...")
	return PanelStyle.Width(m.panelWidth()).Render(msg)
}

// renderPanels lays the metrics and patterns panels side by side on wide
// terminals and stacks them on narrow ones.
func (m Model) renderPanels() string {
	width := m.panelWidth()
	metrics := m.renderMetricsPanel(width)
	patterns := m.renderPatternsPanel(width)

	if m.width >= BreakpointWide {
		return lipgloss.JoinHorizontal(lipgloss.Top, metrics, patterns)
	}
	return lipgloss.JoinVertical(lipgloss.Left, metrics, patterns)
}

func (m Model) panelWidth() int {
	if m.width >= BreakpointWide {
		return m.width/2 - 3
	}
	if m.width > minPanelWidth+4 {
		return m.width - 4
	}
	return minPanelWidth
}

func (m Model) renderMetricsPanel(width int) string {
	snap := m.snap
	var lines []string

	lines = append(lines, PanelTitleStyle.Render("System"))
	lines = append(lines, m.percentLine("CPU", snap.CPUPercent, m.history.CPU()))
	lines = append(lines, m.percentLine("Memory", snap.MemoryPercent, m.history.Memory()))
	lines = append(lines, fmt.Sprintf("%s %s",
		LabelStyle.Render("Load"),
		ValueStyle.Render(fmt.Sprintf("%.2f %.2f %.2f",
			snap.LoadAvg.OneMin, snap.LoadAvg.FiveMin, snap.LoadAvg.FifteenMin))))
	lines = append(lines, fmt.Sprintf("%s %s   %s %s",
		LabelStyle.Render("Procs"),
		ValueStyle.Render(fmt.Sprintf("%d", snap.Processes)),
		LabelStyle.Render("Users"),
		ValueStyle.Render(fmt.Sprintf("%d", snap.Users))))
	if !snap.BootTime.IsZero() {
		lines = append(lines, fmt.Sprintf("%s %s",
			LabelStyle.Render("Boot"),
			MutedStyle.Render(snap.BootTime.Format("2006-01-02 15:04"))))
	}

	if len(snap.DiskUsage) > 0 {
		lines = append(lines, "")
		lines = append(lines, PanelTitleStyle.Render("Disk"))
		for _, mount := range sortedKeys(snap.DiskUsage) {
			percent := snap.DiskUsage[mount]
			lines = append(lines, fmt.Sprintf("%s %s %s",
				LabelStyle.Render(padLabel(mount, 12)),
				renderBar(percent, barWidth),
				severityStyle(percent).Render(fmt.Sprintf("%5.1f%%", percent))))
		}
	}

	if len(snap.NetworkIO) > 0 {
		lines = append(lines, "")
		lines = append(lines, PanelTitleStyle.Render("Network"))
		ifaces := make([]string, 0, len(snap.NetworkIO))
		for name := range snap.NetworkIO {
			ifaces = append(ifaces, name)
		}
		sort.Strings(ifaces)
		for _, name := range ifaces {
			io := snap.NetworkIO[name]
			lines = append(lines, fmt.Sprintf("%s %s %s  %s %s",
				LabelStyle.Render(padLabel(name, 12)),
				MutedStyle.Render("↑"),
				ValueStyle.Render(formatRate(io.SentPerSec)),
				MutedStyle.Render("↓"),
				ValueStyle.Render(formatRate(io.RecvPerSec))))
		}
	}

	return PanelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// percentLine renders one metric row: label, value, bar, sparkline.
func (m Model) percentLine(label string, percent float64, history []float64) string {
	line := fmt.Sprintf("%s %s %s",
		LabelStyle.Render(padLabel(label, 12)),
		renderBar(percent, barWidth),
		severityStyle(percent).Render(fmt.Sprintf("%5.1f%%", percent)))
	if len(history) > 1 {
		line += " " + ui.RenderSparkline(history, sparkWidth)
	}
	return line
}

func (m Model) renderPatternsPanel(width int) string {
	var lines []string
	lines = append(lines, PanelTitleStyle.Render("Recent patterns"))

	switch {
	case m.patternsErr != "":
		lines = append(lines, MutedStyle.Render("patterns unavailable"))
	case len(m.patterns) == 0:
		lines = append(lines, MutedStyle.Render("none detected yet"))
	default:
		for i, p := range m.patterns {
			if i >= maxPatternRows {
				lines = append(lines, MutedStyle.Render(
					fmt.Sprintf("… %d more", len(m.patterns)-maxPatternRows)))
				break
			}
			lines = append(lines, renderPatternLine(p))
		}
	}

	return PanelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func renderPatternLine(p learn.Pattern) string {
	confidence := severityStyle(p.Confidence * 100).Render(
		fmt.Sprintf("%.0f%%", p.Confidence*100))
	return fmt.Sprintf("%s %s %s",
		ValueStyle.Render(padLabel(string(p.Type), 14)),
		confidence,
		MutedStyle.Render(timeAgo(p.UpdatedAt)))
}

func (m Model) renderFooter() string {
	return FooterStyle.Render("q quit • r refresh")
}

// renderBar draws a fixed-width block bar colored by severity.
func renderBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(severityColor(percent)).Render(bar)
}

func formatRate(bytesPerSec float64) string {
	if bytesPerSec < 0 {
		bytesPerSec = 0
	}
	return humanize.Bytes(uint64(bytesPerSec)) + "/s"
}

// timeAgo renders an epoch-seconds timestamp as a relative age.
func timeAgo(epoch float64) string {
	if epoch <= 0 {
		return ""
	}
	since := time.Since(time.Unix(int64(epoch), 0))
	switch {
	case since < time.Minute:
		return fmt.Sprintf("%ds ago", int(since.Seconds()))
	case since < time.Hour:
		return fmt.Sprintf("%dm ago", int(since.Minutes()))
	case since < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(since.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(since.Hours()/24))
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func padLabel(s string, width int) string {
	if len(s) > width {
		return s[:width-1] + "…"
	}
	return s + strings.Repeat(" ", width-len(s))
}
