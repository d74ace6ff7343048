package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Kind names an input collection.
type Kind string

const (
	KindGold        Kind = "gold"
	KindPredictions Kind = "predictions"
)

// schemaDocument builds the JSON Schema an input collection must satisfy.
func schemaDocument(kind Kind, opts LoadOptions) map[string]any {
	properties := map[string]any{
		opts.DocIDField: map[string]any{
			"type":      []string{"string", "number"},
			"minLength": 1,
		},
	}
	if kind == KindPredictions {
		properties[opts.TemplateField] = map[string]any{
			"type": []string{"object", "null"},
		}
	}
	return map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "array",
		"items": map[string]any{
			"type":       "object",
			"required":   []string{opts.DocIDField},
			"properties": properties,
		},
	}
}

// compileSchema compiles the schema for kind and field names.
func compileSchema(kind Kind, opts LoadOptions) (*jsonschema.Schema, error) {
	doc, err := json.Marshal(schemaDocument(kind, opts))
	if err != nil {
		return nil, fmt.Errorf("marshal %s schema: %w", kind, err)
	}
	url := fmt.Sprintf("mem://muceval/%s.schema.json", kind)
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("add %s schema: %w", kind, err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", kind, err)
	}
	return schema, nil
}

// validateDocument checks a decoded collection against its schema and
// records every leaf violation.
func validateDocument(kind Kind, opts LoadOptions, doc any, issues *issueCollector) error {
	schema, err := compileSchema(kind, opts)
	if err != nil {
		return err
	}
	err = schema.Validate(doc)
	if err == nil {
		return nil
	}
	var validation *jsonschema.ValidationError
	if !errors.As(err, &validation) {
		return err
	}
	collectSchemaIssues(validation, issues)
	return nil
}

func collectSchemaIssues(err *jsonschema.ValidationError, issues *issueCollector) {
	if len(err.Causes) == 0 {
		issues.add(err.InstanceLocation, strings.TrimSpace(err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaIssues(cause, issues)
	}
}
