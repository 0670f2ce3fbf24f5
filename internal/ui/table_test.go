package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTableStyle(t *testing.T) {
	style := DefaultTableStyle()

	// Verify the styles render without panicking; lipgloss style
	// internals are not worth asserting on directly.
	testStr := "test"
	assert.NotPanics(t, func() {
		_ = style.Header.Render(testStr)
		_ = style.Cell.Render(testStr)
		_ = style.Selected.Render(testStr)
		_ = style.Border.Render(testStr)
	})
}

func TestNewTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "ID", Width: 20},
		{Title: "Confidence", Width: 10},
	}
	rows := []table.Row{
		{"high_cpu_a1b2c3d4", "0.50"},
		{"high_memory_e5f6a7b8", "0.60"},
	}

	tbl := NewTable(columns, rows)

	view := tbl.View()
	assert.NotEmpty(t, view)
	assert.Contains(t, view, "ID")
	assert.Contains(t, view, "Confidence")
	assert.Contains(t, view, "high_cpu_a1b2c3d4")
}

func TestRenderSimpleTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "Type", Width: 12},
		{Title: "Count", Width: 6},
	}

	t.Run("renders rows", func(t *testing.T) {
		out := RenderSimpleTable(columns, [][]string{
			{"high_cpu", "3"},
			{"high_memory", "1"},
		})
		assert.Contains(t, out, "Type")
		assert.Contains(t, out, "high_cpu")
		assert.Contains(t, out, "high_memory")
	})

	t.Run("empty rows render nothing", func(t *testing.T) {
		assert.Empty(t, RenderSimpleTable(columns, nil))
	})
}
