package runner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"muceval/internal/report"
	"muceval/internal/score"
)

const verbosePrefix = "[verbose]"

type verboseStyle int

const (
	styleDefault verboseStyle = iota
	styleDocument
	styleMetrics
	styleError
	styleWarning
)

// verboseLog writes the [verbose] stream. The zero value discards output.
type verboseLog struct {
	w      io.Writer
	styles map[verboseStyle]lipgloss.Style
	prefix lipgloss.Style
	styled bool
}

func newVerboseLog(enabled bool, w io.Writer, noColor bool) verboseLog {
	if !enabled || w == nil {
		return verboseLog{}
	}
	log := verboseLog{w: w, styled: !noColor && ShouldUseStyling(w)}
	if log.styled {
		r := lipgloss.NewRenderer(w)
		log.prefix = r.NewStyle().Faint(true).Foreground(lipgloss.Color("8"))
		log.styles = map[verboseStyle]lipgloss.Style{
			styleDocument: r.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
			styleMetrics:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
			styleError:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
			styleWarning:  r.NewStyle().Foreground(lipgloss.Color("3")),
		}
	}
	return log
}

func (l verboseLog) printf(style verboseStyle, format string, args ...any) {
	if l.w == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	prefix := verbosePrefix
	if l.styled {
		prefix = l.prefix.Render(prefix)
		if s, ok := l.styles[style]; ok {
			line = s.Render(line)
		}
	}
	fmt.Fprintf(l.w, "%s %s\n", prefix, line)
}

// diagnostics streams diagnostics grouped under a line per document.
func (l verboseLog) diagnostics(diagnostics []score.Diagnostic) {
	current := ""
	for _, d := range diagnostics {
		if d.DocID != current {
			current = d.DocID
			l.printf(styleDocument, "Evaluating DOC: %s", d.DocID)
		}
		style := styleError
		switch d.Kind {
		case score.DiagnosticMissing:
			style = styleWarning
		case score.DiagnosticUnmatchedDocument:
			style = styleDefault
		}
		l.printf(style, "%s", report.FormatDiagnostic(d))
	}
}

// ShouldUseStyling reports whether writer is a terminal that accepts
// colors, honoring NO_COLOR, TERM=dumb and CLICOLOR=0.
func ShouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	fder, ok := writer.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(fder.Fd()))
}
