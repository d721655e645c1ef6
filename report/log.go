// Package report accumulates the findings of a style-check run and renders
// them into the caller-facing report and summary.
package report

import (
	"fmt"
	"strings"
)

// Category partitions issues and required actions.
type Category int

const (
	Format Category = iota
	Citation
	Grammar
)

// String returns the lower-case category name.
func (c Category) String() string {
	switch c {
	case Format:
		return "format"
	case Citation:
		return "citation"
	case Grammar:
		return "grammar"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ParseCategory parses a category name.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "format":
		return Format, nil
	case "citation":
		return Citation, nil
	case "grammar":
		return Grammar, nil
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// Issue is a correction that was applied or attempted.
type Issue struct {
	Category Category
	Message  string
	Location string // optional
}

// String renders the issue as it appears in a report.
func (i Issue) String() string {
	if i.Location == "" {
		return i.Message
	}
	return i.Location + ": " + i.Message
}

// RequiredAction is a manual follow-up the engine could not perform.
type RequiredAction struct {
	Category    Category
	Description string
}

// Log is the append-only trail of one processing run. The zero value is
// ready to use. A Log is not safe for concurrent use; each run owns its own.
type Log struct {
	issues  []Issue
	actions []RequiredAction
}

// NewLog returns an empty Log.
func NewLog() *Log {
	return &Log{}
}

// Record appends an issue.
func (l *Log) Record(cat Category, message, location string) {
	l.issues = append(l.issues, Issue{Category: cat, Message: message, Location: location})
}

// RequireAction appends a required action.
func (l *Log) RequireAction(cat Category, description string) {
	l.actions = append(l.actions, RequiredAction{Category: cat, Description: description})
}

// Len returns the total number of entries.
func (l *Log) Len() int {
	return len(l.issues) + len(l.actions)
}

// Issues returns the issues of one category in recording order.
func (l *Log) Issues(cat Category) []Issue {
	var out []Issue
	for _, i := range l.issues {
		if i.Category == cat {
			out = append(out, i)
		}
	}
	return out
}

// RequiredActions returns the required actions of one category in recording order.
func (l *Log) RequiredActions(cat Category) []RequiredAction {
	var out []RequiredAction
	for _, a := range l.actions {
		if a.Category == cat {
			out = append(out, a)
		}
	}
	return out
}
