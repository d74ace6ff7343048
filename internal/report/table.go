// Package report renders evaluation results as text tables, diagnostic
// listings, comparisons and HTML pages.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"muceval/internal/score"
)

// TotalLabel names the micro-averaged row.
const TotalLabel = "(micro avg)"

// TableOptions controls the metrics table.
type TableOptions struct {
	// Styled enables terminal colors.
	Styled bool
	// Total appends the micro-averaged row.
	Total bool
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	fairStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	poorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	totalStyle  = lipgloss.NewStyle().Bold(true)
)

// WriteTable writes one fixed-width row per field: name, precision, recall,
// F1, gold, predicted and correct counts.
func WriteTable(w io.Writer, result score.Result, opts TableOptions) error {
	header := fmt.Sprintf("%-20s %6s %6s %6s %6s %6s %8s", "Field", "P", "R", "F1", "Gold", "Pred", "Correct")
	if opts.Styled {
		header = headerStyle.Render(header)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	for _, row := range result.Fields {
		if _, err := fmt.Fprintln(w, formatRow(row.Field, row, opts.Styled)); err != nil {
			return err
		}
	}
	if opts.Total && len(result.Fields) > 0 {
		line := formatRow(TotalLabel, result.Total, false)
		if opts.Styled {
			line = totalStyle.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatRow(label string, row score.FieldMetrics, styled bool) string {
	f1 := fmt.Sprintf("%6.2f", row.F1)
	if styled {
		f1 = scoreStyle(row.F1).Render(f1)
	}
	return fmt.Sprintf("%-20s %6.2f %6.2f %s %6d %6d %8d",
		label, row.Precision, row.Recall, f1, row.Gold, row.Predicted, row.Correct)
}

func scoreStyle(value float64) lipgloss.Style {
	switch {
	case value >= 0.7:
		return goodStyle
	case value >= 0.4:
		return fairStyle
	default:
		return poorStyle
	}
}
