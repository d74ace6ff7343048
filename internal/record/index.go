package record

import (
	"fmt"
	"sort"
	"strings"
)

// DuplicatePolicy decides what happens when two predictions share a
// document id.
type DuplicatePolicy string

const (
	// DuplicateLastWins keeps the last prediction seen for a document.
	DuplicateLastWins DuplicatePolicy = "last_wins"
	// DuplicateReject fails indexing when a document has two predictions.
	DuplicateReject DuplicatePolicy = "reject"
)

// ParseDuplicatePolicy validates a textual policy. Empty selects
// DuplicateLastWins.
func ParseDuplicatePolicy(value string) (DuplicatePolicy, error) {
	switch policy := DuplicatePolicy(strings.ToLower(strings.TrimSpace(value))); policy {
	case "":
		return DuplicateLastWins, nil
	case DuplicateLastWins, DuplicateReject:
		return policy, nil
	default:
		return "", fmt.Errorf("invalid duplicate policy %q (expected last_wins|reject)", value)
	}
}

// GoldIndex groups gold templates by document, preserving insertion order
// within each document.
type GoldIndex struct {
	templates map[string][]Record
	ids       []string
	fields    []string
}

// IndexGold buckets gold records by document id and computes the field set.
func IndexGold(records []Record) *GoldIndex {
	index := &GoldIndex{templates: make(map[string][]Record)}
	fieldSet := make(map[string]struct{})
	for _, rec := range records {
		bucket, ok := index.templates[rec.DocID]
		if !ok {
			index.ids = append(index.ids, rec.DocID)
		}
		index.templates[rec.DocID] = append(bucket, rec)
		for field := range rec.Fields {
			fieldSet[field] = struct{}{}
		}
	}
	SortDocIDs(index.ids)
	index.fields = make([]string, 0, len(fieldSet))
	for field := range fieldSet {
		index.fields = append(index.fields, field)
	}
	sort.Strings(index.fields)
	return index
}

// Templates returns the gold templates of a document.
func (g *GoldIndex) Templates(docID string) ([]Record, bool) {
	templates, ok := g.templates[docID]
	return templates, ok
}

// DocIDs returns the gold document ids in natural order.
func (g *GoldIndex) DocIDs() []string {
	return append([]string(nil), g.ids...)
}

// Fields returns the sorted union of gold field names.
func (g *GoldIndex) Fields() []string {
	return append([]string(nil), g.fields...)
}

// Len reports the number of gold documents.
func (g *GoldIndex) Len() int {
	return len(g.ids)
}

// PredictionIndex holds at most one prediction per document.
type PredictionIndex struct {
	predictions map[string]Record
	ids         []string
	duplicates  []string
}

// IndexPredictions keys predictions by document id, resolving repeated ids
// with policy.
func IndexPredictions(records []Record, policy DuplicatePolicy) (*PredictionIndex, error) {
	if policy == "" {
		policy = DuplicateLastWins
	}
	index := &PredictionIndex{predictions: make(map[string]Record, len(records))}
	seenDuplicate := make(map[string]bool)
	for _, rec := range records {
		if _, ok := index.predictions[rec.DocID]; ok {
			if !seenDuplicate[rec.DocID] {
				seenDuplicate[rec.DocID] = true
				index.duplicates = append(index.duplicates, rec.DocID)
			}
		} else {
			index.ids = append(index.ids, rec.DocID)
		}
		index.predictions[rec.DocID] = rec
	}
	SortDocIDs(index.ids)
	SortDocIDs(index.duplicates)
	if policy == DuplicateReject && len(index.duplicates) > 0 {
		return nil, &DuplicateError{DocIDs: index.Duplicates()}
	}
	return index, nil
}

// Lookup returns the prediction for a document. A missing prediction is not
// an error.
func (p *PredictionIndex) Lookup(docID string) (Record, bool) {
	rec, ok := p.predictions[docID]
	return rec, ok
}

// DocIDs returns the predicted document ids in natural order.
func (p *PredictionIndex) DocIDs() []string {
	return append([]string(nil), p.ids...)
}

// Duplicates lists document ids that had more than one prediction.
func (p *PredictionIndex) Duplicates() []string {
	return append([]string(nil), p.duplicates...)
}

// Len reports the number of predicted documents.
func (p *PredictionIndex) Len() int {
	return len(p.ids)
}
