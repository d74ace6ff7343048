// Package match decides whether a normalized prediction agrees with any of
// the acceptable gold values.
package match

import (
	"fmt"
	"sort"
)

// DefaultThreshold is the minimum similarity accepted as a fuzzy match.
const DefaultThreshold = 90

// ValueSet is a set of normalized gold values.
type ValueSet map[string]struct{}

// NewValueSet builds a set from values, dropping empties.
func NewValueSet(values ...string) ValueSet {
	set := make(ValueSet, len(values))
	for _, value := range values {
		set.Add(value)
	}
	return set
}

// Add inserts a non-empty value.
func (s ValueSet) Add(value string) {
	if value == "" {
		return
	}
	s[value] = struct{}{}
}

// Contains reports whether value is in the set.
func (s ValueSet) Contains(value string) bool {
	_, ok := s[value]
	return ok
}

// Sorted returns the set members in lexical order.
func (s ValueSet) Sorted() []string {
	values := make([]string, 0, len(s))
	for value := range s {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

// Kind classifies how a prediction was judged.
type Kind string

const (
	KindNone  Kind = "none"
	KindExact Kind = "exact"
	KindFuzzy Kind = "fuzzy"
)

// Outcome is the verdict for one prediction.
type Outcome struct {
	Matched bool
	Kind    Kind
	// Score is the best similarity observed; 100 for exact matches and 0
	// when fuzzy matching did not run.
	Score float64
	// Against is the gold value that satisfied the match.
	Against string
}

// Options configures a Matcher.
type Options struct {
	Fuzzy     bool
	Threshold float64
	Algorithm Algorithm
}

// Matcher applies the exact-then-fuzzy matching policy.
type Matcher struct {
	fuzzy      bool
	threshold  float64
	similarity Similarity
}

// New builds a Matcher. Threshold is used as given; callers wanting the
// usual cutoff pass DefaultThreshold.
func New(opts Options) (Matcher, error) {
	threshold := opts.Threshold
	if threshold < 0 || threshold > 100 {
		return Matcher{}, fmt.Errorf("fuzzy threshold %v out of range [0, 100]", threshold)
	}
	similarity, err := SimilarityFor(opts.Algorithm)
	if err != nil {
		return Matcher{}, err
	}
	return Matcher{fuzzy: opts.Fuzzy, threshold: threshold, similarity: similarity}, nil
}

// Fuzzy reports whether fuzzy matching is enabled.
func (m Matcher) Fuzzy() bool {
	return m.fuzzy
}

// Threshold returns the fuzzy acceptance threshold.
func (m Matcher) Threshold() float64 {
	return m.threshold
}

// Match judges predicted against gold. Gold values are scanned in sorted
// order and the first value reaching the threshold wins.
func (m Matcher) Match(predicted string, gold ValueSet) Outcome {
	if predicted == "" {
		return Outcome{Kind: KindNone}
	}
	if gold.Contains(predicted) {
		return Outcome{Matched: true, Kind: KindExact, Score: 100, Against: predicted}
	}
	if !m.fuzzy || m.similarity == nil {
		return Outcome{Kind: KindNone}
	}
	best := 0.0
	for _, value := range gold.Sorted() {
		score := m.similarity(predicted, value)
		if score >= m.threshold {
			return Outcome{Matched: true, Kind: KindFuzzy, Score: score, Against: value}
		}
		best = max(best, score)
	}
	return Outcome{Kind: KindNone, Score: best}
}

// Matches reports whether predicted agrees with gold using the indel
// similarity for fuzzy comparison.
func Matches(predicted string, gold ValueSet, fuzzy bool, threshold float64) bool {
	m := Matcher{fuzzy: fuzzy, threshold: threshold, similarity: Ratio}
	return m.Match(predicted, gold).Matched
}
