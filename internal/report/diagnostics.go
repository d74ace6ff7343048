package report

import (
	"fmt"
	"io"
	"strings"

	"muceval/internal/score"
)

// FormatGold renders a gold value set as {'a', 'b'}.
func FormatGold(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, value := range values {
		quoted = append(quoted, "'"+value+"'")
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}

// FormatDiagnostic renders one diagnostic as a single line.
func FormatDiagnostic(d score.Diagnostic) string {
	switch d.Kind {
	case score.DiagnosticMismatch:
		return fmt.Sprintf("DOC %s, FIELD %s: Predicted '%s' vs Gold %s", d.DocID, d.Field, d.Predicted, FormatGold(d.Gold))
	case score.DiagnosticMissing:
		return fmt.Sprintf("DOC %s, FIELD %s: missing in prediction (gold %s)", d.DocID, d.Field, FormatGold(d.Gold))
	case score.DiagnosticUnmatchedDocument:
		return fmt.Sprintf("DOC %s: prediction has no gold templates", d.DocID)
	default:
		return fmt.Sprintf("DOC %s, FIELD %s: %s", d.DocID, d.Field, d.Kind)
	}
}

// WriteMismatches writes the detailed mismatch listing.
func WriteMismatches(w io.Writer, result score.Result) error {
	mismatches := result.Mismatches()
	if len(mismatches) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Detailed Mismatches:"); err != nil {
		return err
	}
	for _, d := range mismatches {
		if _, err := fmt.Fprintf(w, "- %s\n", FormatDiagnostic(d)); err != nil {
			return err
		}
	}
	return nil
}

// WriteDiagnostics writes every diagnostic, one per line.
func WriteDiagnostics(w io.Writer, diagnostics []score.Diagnostic) error {
	for _, d := range diagnostics {
		if _, err := fmt.Fprintln(w, FormatDiagnostic(d)); err != nil {
			return err
		}
	}
	return nil
}
