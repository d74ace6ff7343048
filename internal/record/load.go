package record

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadOptions names the fields that carry the document id and, for
// predictions, the filled template.
type LoadOptions struct {
	DocIDField    string
	TemplateField string
}

func (o LoadOptions) withDefaults() LoadOptions {
	if strings.TrimSpace(o.DocIDField) == "" {
		o.DocIDField = DefaultDocIDField
	}
	if strings.TrimSpace(o.TemplateField) == "" {
		o.TemplateField = DefaultTemplateField
	}
	return o
}

// LoadGold reads gold templates from a JSON array or JSON Lines file.
func LoadGold(path string, opts LoadOptions) ([]Record, error) {
	return loadFile(KindGold, path, opts)
}

// LoadPredictions reads predicted templates from a JSON array or JSON Lines
// file. Field values are taken from the template sub-object.
func LoadPredictions(path string, opts LoadOptions) ([]Record, error) {
	return loadFile(KindPredictions, path, opts)
}

func loadFile(kind Kind, path string, opts LoadOptions) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputError{Input: string(kind), Path: path, Err: fmt.Errorf("read: %w", err)}
	}
	records, err := Parse(kind, data, formatForPath(path), opts)
	if err != nil {
		var inputErr *InputError
		if errors.As(err, &inputErr) {
			inputErr.Path = path
		}
		return nil, err
	}
	return records, nil
}

// Format is the on-disk layout of an input collection.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
)

func formatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return FormatJSONL
	default:
		return FormatJSON
	}
}

// Parse decodes and validates a collection already in memory.
func Parse(kind Kind, data []byte, format Format, opts LoadOptions) ([]Record, error) {
	opts = opts.withDefaults()
	doc, err := decode(data, format)
	if err != nil {
		return nil, &InputError{Input: string(kind), Err: err}
	}
	issues := &issueCollector{}
	if err := validateDocument(kind, opts, doc, issues); err != nil {
		return nil, &InputError{Input: string(kind), Err: err}
	}
	if err := issues.result(string(kind), ""); err != nil {
		return nil, err
	}
	items, _ := doc.([]any)
	records := make([]Record, 0, len(items))
	for _, item := range items {
		obj := item.(map[string]any)
		records = append(records, toRecord(kind, obj, opts))
	}
	return records, nil
}

func decode(data []byte, format Format) (any, error) {
	if format == FormatJSONL {
		return decodeLines(data)
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	var trailing json.RawMessage
	if err := decoder.Decode(&trailing); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return doc, nil
}

func decodeLines(data []byte) (any, error) {
	items := []any{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		decoder := json.NewDecoder(bytes.NewReader(text))
		decoder.UseNumber()
		var item any
		if err := decoder.Decode(&item); err != nil {
			return nil, fmt.Errorf("parse jsonl line %d: %w", line, err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read jsonl: %w", err)
	}
	return items, nil
}

func toRecord(kind Kind, obj map[string]any, opts LoadOptions) Record {
	rec := Record{
		DocID:  stringify(obj[opts.DocIDField]),
		Fields: map[string]string{},
	}
	source := obj
	if kind == KindPredictions {
		source, _ = obj[opts.TemplateField].(map[string]any)
	}
	for field, value := range source {
		if field == opts.DocIDField {
			continue
		}
		rec.Fields[field] = stringify(value)
	}
	return rec
}

// stringify renders a decoded JSON value as the raw text to normalize.
func stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case json.Number:
		return typed.String()
	case bool:
		return strconv.FormatBool(typed)
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			if text := stringify(item); text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, " ")
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprint(typed)
		}
		return string(encoded)
	}
}
