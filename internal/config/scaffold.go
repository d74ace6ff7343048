package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"muceval/internal/normalize"
)

const defaultConfig = `version: 1
input:
  # gold: data/muc4_gold.json
  # predictions: data/muc4_results.json
  doc_id_field: doc_id
  template_field: filledTemplate
  duplicate_predictions: last_wins

scoring:
  use_fuzzy: false
  fuzzy_threshold: 90
  fuzzy_algorithm: indel
  date_mode: permissive
  workers: 1

synonyms_file: .muceval/synonyms.yml

output:
  dir: .muceval/results
  formats: [text, json, html]
  verbose: false
  no_color: false

log_level: info
`

// Scaffold writes a starter config and synonym table under root. Existing
// files are never overwritten.
func Scaffold(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", fmt.Errorf("root directory is required")
	}
	configPath := ConfigPath(root)
	synonymsPath := SynonymsPath(root)
	for _, path := range []string{configPath, synonymsPath} {
		if info, err := os.Stat(path); err == nil {
			if info.IsDir() {
				return "", fmt.Errorf("path %q is a directory", path)
			}
			return "", fmt.Errorf("file already exists at %q", path)
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("stat %s: %w", filepath.Base(path), err)
		}
	}

	synonyms, err := renderSynonyms(normalize.DefaultSynonyms())
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(ConfigDir(root), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return "", fmt.Errorf("write config file: %w", err)
	}
	if err := os.WriteFile(synonymsPath, synonyms, 0o644); err != nil {
		return "", fmt.Errorf("write synonyms file: %w", err)
	}
	return configPath, nil
}

// renderSynonyms encodes a synonym table as YAML with sorted keys.
func renderSynonyms(table normalize.Synonyms) ([]byte, error) {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range keys {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: table[key]},
		)
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("render synonyms: %w", err)
	}
	return append([]byte("# surface form: canonical value\n"), out...), nil
}
