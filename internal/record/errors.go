package record

import (
	"fmt"
	"strings"
)

// Issue describes one problem found in an input file.
type Issue struct {
	Location string
	Message  string
}

// InputError reports why an input collection could not be loaded.
type InputError struct {
	Input  string
	Path   string
	Issues []Issue
	Err    error
}

// Error renders the input name, file and every issue.
func (e *InputError) Error() string {
	prefix := fmt.Sprintf("%s input", e.Input)
	if e.Path != "" {
		prefix = fmt.Sprintf("%s input %s", e.Input, e.Path)
	}
	if len(e.Issues) == 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", prefix, e.Err)
		}
		return prefix + ": invalid"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "/"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return prefix + ": " + strings.Join(parts, "; ")
}

// Unwrap returns the underlying cause.
func (e *InputError) Unwrap() error {
	return e.Err
}

// DuplicateError reports documents with more than one prediction.
type DuplicateError struct {
	DocIDs []string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate predictions for documents: %s", strings.Join(e.DocIDs, ", "))
}

// issueCollector accumulates input issues.
type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(location, message string) {
	c.issues = append(c.issues, Issue{Location: location, Message: message})
}

func (c *issueCollector) result(input, path string) error {
	if len(c.issues) == 0 {
		return nil
	}
	return &InputError{Input: input, Path: path, Issues: c.issues}
}
