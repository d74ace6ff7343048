package report

import (
	"fmt"
	"io"
	"sort"

	"muceval/internal/score"
)

// FieldDelta compares one field across two results. A side without the
// field has a nil row.
type FieldDelta struct {
	Field string
	Base  *score.FieldMetrics
	Head  *score.FieldMetrics
}

// F1Delta returns head F1 minus base F1, treating a missing side as 0.
func (d FieldDelta) F1Delta() float64 {
	return f1Of(d.Head) - f1Of(d.Base)
}

func f1Of(row *score.FieldMetrics) float64 {
	if row == nil {
		return 0
	}
	return row.F1
}

// Compare pairs the fields of two results, sorted by field name.
func Compare(base, head score.Result) []FieldDelta {
	byField := map[string]*FieldDelta{}
	for i := range base.Fields {
		row := base.Fields[i]
		byField[row.Field] = &FieldDelta{Field: row.Field, Base: &row}
	}
	for i := range head.Fields {
		row := head.Fields[i]
		delta, ok := byField[row.Field]
		if !ok {
			delta = &FieldDelta{Field: row.Field}
			byField[row.Field] = delta
		}
		delta.Head = &row
	}
	deltas := make([]FieldDelta, 0, len(byField))
	for _, delta := range byField {
		deltas = append(deltas, *delta)
	}
	sort.Slice(deltas, func(i, j int) bool { return deltas[i].Field < deltas[j].Field })
	return deltas
}

// WriteComparison writes base F1, head F1 and the signed delta per field,
// followed by the micro-averaged totals.
func WriteComparison(w io.Writer, base, head score.Result) error {
	if _, err := fmt.Fprintf(w, "%-20s %8s %8s %8s\n", "Field", "Base F1", "Head F1", "Delta"); err != nil {
		return err
	}
	for _, delta := range Compare(base, head) {
		if _, err := fmt.Fprintf(w, "%-20s %8s %8s %+8.2f\n",
			delta.Field, formatOptional(delta.Base), formatOptional(delta.Head), delta.F1Delta()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%-20s %8.2f %8.2f %+8.2f\n",
		TotalLabel, base.Total.F1, head.Total.F1, head.Total.F1-base.Total.F1)
	return err
}

func formatOptional(row *score.FieldMetrics) string {
	if row == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", row.F1)
}
