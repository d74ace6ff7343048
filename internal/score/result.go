package score

// DiagnosticKind classifies a diagnostic event.
type DiagnosticKind string

const (
	// DiagnosticMismatch is a non-empty prediction that matched no gold value.
	DiagnosticMismatch DiagnosticKind = "mismatch"
	// DiagnosticMissing is a field with gold values but no prediction.
	DiagnosticMissing DiagnosticKind = "missing"
	// DiagnosticUnmatchedDocument is a predicted document with no gold
	// templates. It never affects counts.
	DiagnosticUnmatchedDocument DiagnosticKind = "unmatched_document"
)

// Diagnostic is one event in the verbose stream.
type Diagnostic struct {
	Kind      DiagnosticKind `json:"kind"`
	DocID     string         `json:"doc_id"`
	Field     string         `json:"field,omitempty"`
	Predicted string         `json:"predicted,omitempty"`
	Gold      []string       `json:"gold,omitempty"`
	// Similarity is the best fuzzy score seen for a mismatch.
	Similarity float64 `json:"similarity,omitempty"`
}

// Result is the outcome of one evaluation.
type Result struct {
	// Fields holds one row per gold field, sorted by name.
	Fields []FieldMetrics `json:"fields"`
	// Total is the micro-average over every field.
	Total       FieldMetrics `json:"total"`
	Documents   int          `json:"documents"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Mismatches returns the mismatch diagnostics in encounter order.
func (r Result) Mismatches() []Diagnostic {
	return r.filter(DiagnosticMismatch)
}

// Missing returns the missing-prediction diagnostics in encounter order.
func (r Result) Missing() []Diagnostic {
	return r.filter(DiagnosticMissing)
}

// UnmatchedPredictions returns the ids of predicted documents that have no
// gold templates, in encounter order.
func (r Result) UnmatchedPredictions() []string {
	var ids []string
	for _, d := range r.filter(DiagnosticUnmatchedDocument) {
		ids = append(ids, d.DocID)
	}
	return ids
}

// Field returns the metrics row of a field.
func (r Result) Field(name string) (FieldMetrics, bool) {
	for _, row := range r.Fields {
		if row.Field == name {
			return row, true
		}
	}
	return FieldMetrics{}, false
}

func (r Result) filter(kind DiagnosticKind) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}
