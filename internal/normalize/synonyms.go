package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Synonyms maps cleaned surface forms to their canonical value.
type Synonyms map[string]string

// DefaultSynonyms returns the built-in MUC-4 synonym table.
func DefaultSynonyms() Synonyms {
	return Synonyms{
		"explosion":        "bombing",
		"terrorist attack": "attack",
		"aid suspension":   "attack",
		"grenade":          "hand grenades",
		"hand grenade":     "hand grenades",
		"el salvador":      "san salvador",
		"fpmr":             "manuel rodriguez patriotic front",
	}
}

// NewSynonyms cleans every entry of raw and rejects tables that would make
// normalization unstable: empty entries, conflicting keys and chains where
// a canonical value is itself rewritten.
func NewSynonyms(raw map[string]string) (Synonyms, error) {
	table := make(Synonyms, len(raw))
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		from := Clean(key)
		to := Clean(raw[key])
		if from == "" || to == "" {
			return nil, fmt.Errorf("synonym %q: entries must be non-empty after cleaning", key)
		}
		if existing, ok := table[from]; ok && existing != to {
			return nil, fmt.Errorf("synonym %q: conflicts with an earlier entry mapping to %q", key, existing)
		}
		table[from] = to
	}
	for _, from := range keys {
		to := table[Clean(from)]
		if next, ok := table[to]; ok && next != to {
			return nil, fmt.Errorf("synonym %q: canonical value %q is rewritten to %q", from, to, next)
		}
	}
	return table, nil
}

// Lookup returns the canonical form of value if one is registered.
func (s Synonyms) Lookup(value string) (string, bool) {
	canonical, ok := s[value]
	return canonical, ok
}

// LoadSynonyms reads a synonym table from a YAML or JSON file holding a
// single mapping of surface form to canonical value.
func LoadSynonyms(path string) (Synonyms, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read synonyms: %w", err)
	}
	raw, err := parseSynonyms(data, path)
	if err != nil {
		return nil, err
	}
	return NewSynonyms(raw)
}

func parseSynonyms(data []byte, path string) (map[string]string, error) {
	var raw map[string]string
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		decoder := json.NewDecoder(bytes.NewReader(data))
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse synonyms json: %w", err)
		}
		var trailing json.RawMessage
		if err := decoder.Decode(&trailing); err != io.EOF {
			return nil, fmt.Errorf("parse synonyms json: multiple documents are not supported")
		}
		return raw, nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&raw); err != nil {
		if err == io.EOF {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("parse synonyms yaml: %w", err)
	}
	var trailing yaml.Node
	if err := decoder.Decode(&trailing); err != io.EOF {
		return nil, fmt.Errorf("parse synonyms yaml: multiple documents are not supported")
	}
	return raw, nil
}
