package browse

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"muceval/internal/report"
	"muceval/internal/score"
)

// Model is an interactive diagnostics browser built on Bubble Tea.
type Model struct {
	state   State
	table   table.Model
	noColor bool
}

// Options configures the browser.
type Options struct {
	Title   string
	NoColor bool
}

// NewModel constructs a browser over a scored result.
func NewModel(result score.Result, opts Options) Model {
	state := NewState(opts.Title, result)
	t := table.New(
		table.WithColumns(defaultColumns()),
		table.WithRows(rowsForState(state)),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	return Model{state: state, table: t, noColor: opts.NoColor}
}

// State exposes the current filter state.
func (m Model) State() State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles resizing, filtering and table navigation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(typed.Height-6, 1))
		m.table.SetColumns(columnsForWidth(typed.Width))
		return m, nil
	case tea.KeyMsg:
		switch typed.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "f":
			m.state = m.state.NextField()
			m.syncRows()
			return m, nil
		case "t":
			m.state = m.state.NextKind()
			m.syncRows()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) syncRows() {
	m.table.SetRows(rowsForState(m.state))
	m.table.GotoTop()
}

// View renders the browser.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.state, m.noColor),
		renderFilters(m.state),
		m.table.View(),
		m.Summary(),
		renderFooter(),
	)
}

func renderHeader(state State, noColor bool) string {
	total := state.Result.Total
	line := fmt.Sprintf("%s  P=%.2f R=%.2f F1=%.2f  documents=%d", titleOr(state.Title),
		total.Precision, total.Recall, total.F1, state.Result.Documents)
	if noColor {
		return line
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Render(line)
}

func renderFilters(state State) string {
	field := state.Field()
	if field == "" {
		field = "all"
	}
	return fmt.Sprintf("field: %s  kind: %s  showing %d of %d", field, kindLabel(state.KindFilter),
		len(state.Diagnostics), len(state.Result.Diagnostics))
}

func renderFooter() string {
	return "tab: next field  t: next kind  ↑/↓: move  q: quit"
}

func titleOr(title string) string {
	if title == "" {
		return "muceval"
	}
	return title
}

// Summary renders the diagnostic currently under the cursor.
func (m Model) Summary() string {
	index := m.table.Cursor()
	if index < 0 || index >= len(m.state.Diagnostics) {
		return ""
	}
	return report.FormatDiagnostic(m.state.Diagnostics[index])
}
