package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"muceval/internal/score"
)

func sampleResult() score.Result {
	return score.Result{
		Fields: []score.FieldMetrics{
			score.Metrics("perp", score.Counts{Gold: 4, Predicted: 2, Correct: 1}),
			score.Metrics("weapon", score.Counts{Gold: 1, Predicted: 1, Correct: 1}),
		},
		Total:     score.Metrics("", score.Counts{Gold: 5, Predicted: 3, Correct: 2}),
		Documents: 2,
		Diagnostics: []score.Diagnostic{
			{Kind: score.DiagnosticMismatch, DocID: "1", Field: "perp", Predicted: "fmln", Gold: []string{"army", "<police>"}},
			{Kind: score.DiagnosticMissing, DocID: "2", Field: "perp", Gold: []string{"army"}},
		},
	}
}

// TestWriteTableFormat verifies the fixed-width table layout.
func TestWriteTableFormat(t *testing.T) {
	var out bytes.Buffer
	if err := WriteTable(&out, sampleResult(), TableOptions{}); err != nil {
		t.Fatalf("write table: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	want := []string{
		"Field                     P      R     F1   Gold   Pred  Correct",
		"perp                   0.50   0.25   0.33      4      2        1",
		"weapon                 1.00   1.00   1.00      1      1        1",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(want), len(lines), out.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d:\nwant %q\ngot  %q", i, want[i], lines[i])
		}
	}
}

// TestWriteTableTotal verifies the micro-average row is optional.
func TestWriteTableTotal(t *testing.T) {
	var out bytes.Buffer
	if err := WriteTable(&out, sampleResult(), TableOptions{Total: true}); err != nil {
		t.Fatalf("write table: %v", err)
	}
	if !strings.Contains(out.String(), TotalLabel) {
		t.Fatalf("expected total row, got %q", out.String())
	}
}

// TestWriteMismatches verifies the detailed mismatch listing.
func TestWriteMismatches(t *testing.T) {
	var out bytes.Buffer
	if err := WriteMismatches(&out, sampleResult()); err != nil {
		t.Fatalf("write mismatches: %v", err)
	}
	want := "Detailed Mismatches:\n- DOC 1, FIELD perp: Predicted 'fmln' vs Gold {'army', '<police>'}\n"
	if out.String() != want {
		t.Fatalf("unexpected listing:\n%q", out.String())
	}
}

// TestFormatDiagnosticKinds verifies every diagnostic kind renders.
func TestFormatDiagnosticKinds(t *testing.T) {
	missing := FormatDiagnostic(score.Diagnostic{Kind: score.DiagnosticMissing, DocID: "2", Field: "perp", Gold: []string{"army"}})
	if missing != "DOC 2, FIELD perp: missing in prediction (gold {'army'})" {
		t.Fatalf("unexpected missing line %q", missing)
	}
	unmatched := FormatDiagnostic(score.Diagnostic{Kind: score.DiagnosticUnmatchedDocument, DocID: "9"})
	if !strings.Contains(unmatched, "no gold templates") {
		t.Fatalf("unexpected unmatched line %q", unmatched)
	}
}

// TestCompare verifies per-field deltas including one-sided fields.
func TestCompare(t *testing.T) {
	base := sampleResult()
	head := sampleResult()
	head.Fields = []score.FieldMetrics{
		score.Metrics("perp", score.Counts{Gold: 4, Predicted: 4, Correct: 4}),
		score.Metrics("target", score.Counts{Gold: 1, Predicted: 1, Correct: 1}),
	}

	deltas := Compare(base, head)
	if len(deltas) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(deltas))
	}
	if deltas[0].Field != "perp" || deltas[1].Field != "target" || deltas[2].Field != "weapon" {
		t.Fatalf("unexpected order %+v", deltas)
	}
	if deltas[1].Base != nil || deltas[2].Head != nil {
		t.Fatalf("expected one-sided rows")
	}
	if got := deltas[2].F1Delta(); got != -1 {
		t.Fatalf("expected weapon delta -1, got %v", got)
	}

	var out bytes.Buffer
	if err := WriteComparison(&out, base, head); err != nil {
		t.Fatalf("write comparison: %v", err)
	}
	if !strings.Contains(out.String(), "target") || !strings.Contains(out.String(), "-") {
		t.Fatalf("unexpected comparison output:\n%s", out.String())
	}
}

// TestRenderHTMLEscapesValues verifies diagnostics are escaped.
func TestRenderHTMLEscapesValues(t *testing.T) {
	html, err := RenderHTML(context.Background(), Meta{RunID: "run-1", GoldPath: "gold.json"}, sampleResult())
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	for _, want := range []string{"<title>muceval report run-1</title>", "<td>weapon</td>", "&lt;police&gt;", "Missing predictions (1)", "gold.json"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in html:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<police>") {
		t.Fatalf("expected gold values to be escaped")
	}
}

// TestRenderHTMLBandsAndTotals verifies F1 bands and the footer total row.
func TestRenderHTMLBandsAndTotals(t *testing.T) {
	html, err := RenderHTML(context.Background(), Meta{}, sampleResult())
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	for _, want := range []string{
		`<td data-band="poor">0.33</td>`,
		`<td data-band="good">1.00</td>`,
		"<tfoot><tr><td>" + TotalLabel + "</td>",
		`<td data-band="fair">0.50</td>`,
		"<title>muceval report</title>",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in html:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<dt>Gold</dt>") {
		t.Fatalf("expected empty gold path to be omitted")
	}
}

func TestRenderHTMLEmptyResultHasNoFooter(t *testing.T) {
	html, err := RenderHTML(context.Background(), Meta{RunID: "empty"}, score.Result{})
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if strings.Contains(html, "<tfoot>") || strings.Contains(html, "<h2>") {
		t.Fatalf("expected no footer or diagnostics for an empty result:\n%s", html)
	}
}
