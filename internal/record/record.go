// Package record loads gold and predicted templates and indexes them by
// document.
package record

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Default names of the document id field and of the prediction sub-object
// holding the filled template.
const (
	DefaultDocIDField    = "doc_id"
	DefaultTemplateField = "filledTemplate"
)

// Record is one template: the document it belongs to and its raw field
// values. The document id field never appears in Fields.
type Record struct {
	DocID  string
	Fields map[string]string
}

// Value returns the raw value of field, or "" when the field is absent.
func (r Record) Value(field string) string {
	return r.Fields[field]
}

// CompareDocIDs orders document ids naturally: ids that are both numbers
// compare numerically, numbers sort before other ids, and everything else
// compares lexicographically.
func CompareDocIDs(a, b string) int {
	na, aNumeric := numericID(a)
	nb, bNumeric := numericID(b)
	switch {
	case aNumeric && bNumeric:
		if na < nb {
			return -1
		}
		if na > nb {
			return 1
		}
		return strings.Compare(a, b)
	case aNumeric:
		return -1
	case bNumeric:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// SortDocIDs sorts ids in place using CompareDocIDs.
func SortDocIDs(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		return CompareDocIDs(ids[i], ids[j]) < 0
	})
}

func numericID(id string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(id), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
