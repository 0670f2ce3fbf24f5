package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/patternd/patternd/internal/config"
	"github.com/patternd/patternd/internal/errors"
	"github.com/patternd/patternd/internal/learn"
	"github.com/patternd/patternd/internal/logger"
	"github.com/patternd/patternd/internal/ui"
)

// patternsCommand lists the persisted patterns, newest first.
func patternsCommand(jsonOut bool, typeFilter string) error {
	cfg := config.LoadOrDefault(Config(), logger.Default())

	patterns, err := learn.ReadFile(cfg.Storage.PatternFile())
	if err != nil {
		return err
	}

	if typeFilter != "" {
		filtered := patterns[:0]
		for _, p := range patterns {
			if string(p.Type) == typeFilter {
				filtered = append(filtered, p)
			}
		}
		patterns = filtered
	}

	return renderPatterns(os.Stdout, patterns, jsonOut)
}

func renderPatterns(w io.Writer, patterns []learn.Pattern, jsonOut bool) error {
	if jsonOut {
		raw, err := json.MarshalIndent(patterns, "", "  ")
		if err != nil {
			return errors.Wrap(err, "Failed to encode patterns")
		}
		fmt.Fprintln(w, string(raw))
		return nil
	}

	if len(patterns) == 0 {
		fmt.Fprintln(w, "No patterns learned yet.")
		return nil
	}

	rows := make([][]string, 0, len(patterns))
	for _, p := range patterns {
		rows = append(rows, []string{
			p.ID,
			string(p.Type),
			fmt.Sprintf("%.2f", p.Confidence),
			formatEpoch(p.UpdatedAt),
		})
	}

	if isTerminal(w) {
		fmt.Fprintln(w, ui.RenderSimpleTable(patternColumns(), rows))
		return nil
	}

	// Plain tab-separated output for pipes and scripts.
	fmt.Fprintln(w, "ID\tTYPE\tCONFIDENCE\tUPDATED")
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return nil
}

func patternColumns() []ui.TableColumn {
	return []ui.TableColumn{
		{Title: "ID", Width: 24},
		{Title: "Type", Width: 14},
		{Title: "Confidence", Width: 10},
		{Title: "Updated", Width: 19},
	}
}

func formatEpoch(epoch float64) string {
	if epoch <= 0 {
		return "-"
	}
	return time.Unix(int64(epoch), 0).Format("2006-01-02 15:04:05")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
