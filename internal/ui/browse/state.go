package browse

import (
	"sort"

	"muceval/internal/score"
)

// State holds the diagnostics on display and the active filters.
type State struct {
	Title       string
	Result      score.Result
	Fields      []string
	FieldIndex  int
	KindFilter  score.DiagnosticKind
	Diagnostics []score.Diagnostic
}

// NewState indexes a result for browsing.
func NewState(title string, result score.Result) State {
	seen := make(map[string]bool)
	var fields []string
	for _, d := range result.Diagnostics {
		if d.Field != "" && !seen[d.Field] {
			seen[d.Field] = true
			fields = append(fields, d.Field)
		}
	}
	sort.Strings(fields)
	state := State{Title: title, Result: result, Fields: fields}
	return state.refresh()
}

// Field returns the field filter, or "" when every field is shown.
func (s State) Field() string {
	if s.FieldIndex == 0 || s.FieldIndex > len(s.Fields) {
		return ""
	}
	return s.Fields[s.FieldIndex-1]
}

// NextField cycles the field filter through all fields and back to none.
func (s State) NextField() State {
	s.FieldIndex = (s.FieldIndex + 1) % (len(s.Fields) + 1)
	return s.refresh()
}

// NextKind cycles the kind filter.
func (s State) NextKind() State {
	switch s.KindFilter {
	case "":
		s.KindFilter = score.DiagnosticMismatch
	case score.DiagnosticMismatch:
		s.KindFilter = score.DiagnosticMissing
	case score.DiagnosticMissing:
		s.KindFilter = score.DiagnosticUnmatchedDocument
	default:
		s.KindFilter = ""
	}
	return s.refresh()
}

func (s State) refresh() State {
	field := s.Field()
	filtered := make([]score.Diagnostic, 0, len(s.Result.Diagnostics))
	for _, d := range s.Result.Diagnostics {
		if field != "" && d.Field != field {
			continue
		}
		if s.KindFilter != "" && d.Kind != s.KindFilter {
			continue
		}
		filtered = append(filtered, d)
	}
	s.Diagnostics = filtered
	return s
}
