package browse

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"muceval/internal/report"
	"muceval/internal/score"
)

const (
	docWidth   = 10
	fieldWidth = 16
	kindWidth  = 20
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	return styles
}

func defaultColumns() []table.Column {
	return columnsForWidth(100)
}

// columnsForWidth splits whatever is left after the fixed columns between
// the predicted and gold values.
func columnsForWidth(width int) []table.Column {
	rest := max(width-docWidth-fieldWidth-kindWidth-10, 20)
	return []table.Column{
		{Title: "DOC", Width: docWidth},
		{Title: "FIELD", Width: fieldWidth},
		{Title: "KIND", Width: kindWidth},
		{Title: "PREDICTED", Width: rest / 2},
		{Title: "GOLD", Width: rest - rest/2},
	}
}

// rowsForState converts diagnostics into table rows.
func rowsForState(state State) []table.Row {
	rows := make([]table.Row, 0, len(state.Diagnostics))
	for _, d := range state.Diagnostics {
		gold := ""
		if len(d.Gold) > 0 {
			gold = report.FormatGold(d.Gold)
		}
		rows = append(rows, table.Row{d.DocID, d.Field, string(d.Kind), d.Predicted, gold})
	}
	return rows
}

func kindLabel(kind score.DiagnosticKind) string {
	if kind == "" {
		return "all"
	}
	return string(kind)
}
