// Package normalize turns raw template values into comparison-ready strings.
package normalize

import (
	"sync"
	"time"
)

// Normalizer canonicalizes field values. The zero value is not usable; build
// one with New.
type Normalizer struct {
	synonyms Synonyms
	dates    DateParser
	cache    *sync.Map
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithSynonyms replaces the synonym table. A nil table disables synonyms.
func WithSynonyms(synonyms Synonyms) Option {
	return func(n *Normalizer) {
		n.synonyms = synonyms
	}
}

// WithDateParser replaces the date parser. A nil parser disables dates.
func WithDateParser(parser DateParser) Option {
	return func(n *Normalizer) {
		n.dates = parser
	}
}

// WithCache memoizes results for the lifetime of the normalizer.
func WithCache() Option {
	return func(n *Normalizer) {
		n.cache = &sync.Map{}
	}
}

// New builds a Normalizer with the default synonym table and a permissive
// date parser anchored at the current time.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		synonyms: DefaultSynonyms(),
		dates:    NewDateParser(DatePermissive, time.Now()),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize returns the canonical form of raw. An empty result means the
// value is absent. Recognized dates take precedence over synonyms.
func (n *Normalizer) Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	if n.cache != nil {
		if cached, ok := n.cache.Load(raw); ok {
			return cached.(string)
		}
	}
	value := n.normalize(raw)
	if n.cache != nil {
		n.cache.Store(raw, value)
	}
	return value
}

func (n *Normalizer) normalize(raw string) string {
	cleaned := Clean(raw)
	if cleaned == "" {
		return ""
	}
	if n.dates != nil {
		if parsed, ok := n.dates.ParseDate(cleaned); ok {
			return parsed.Format(DateLayout)
		}
	}
	if canonical, ok := n.synonyms.Lookup(cleaned); ok {
		return canonical
	}
	return cleaned
}
