package config

import (
	"slices"
	"strings"
)

// Issue is one problem with a config key. Field is the dotted YAML path,
// with an index suffix for list entries, e.g. "output.formats[1]".
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return i.Field + ": " + i.Message
}

// ValidationError carries every issue found in one Validate call.
type ValidationError struct {
	Issues []Issue
}

// Error lists the issues one per line.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	var b strings.Builder
	for i, issue := range err.Issues {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(issue.String())
	}
	return b.String()
}

// HasField reports whether an issue concerns field or one of its list
// entries.
func (err *ValidationError) HasField(field string) bool {
	if err == nil {
		return false
	}
	return slices.ContainsFunc(err.Issues, func(issue Issue) bool {
		return issue.Field == field || strings.HasPrefix(issue.Field, field+"[")
	})
}
