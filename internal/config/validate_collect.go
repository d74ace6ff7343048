package config

import "fmt"

// issueAdder records one problem against a field name.
type issueAdder func(field, message string)

// issueCollector gathers every problem in a config before failing, so a user
// sees all of them in one run.
type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) addf(field, format string, args ...any) {
	c.add(field, fmt.Sprintf(format, args...))
}

// section returns an adder that qualifies field names with the YAML section
// they belong to, e.g. "scoring" turns "workers" into "scoring.workers".
func (c *issueCollector) section(name string) issueAdder {
	return func(field, message string) {
		c.add(name+"."+field, message)
	}
}

func (c *issueCollector) err() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}
