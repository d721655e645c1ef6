// Package rules implements the manuscript style checks and the ordered
// Workflow that runs them.
//
// Every check reads a docx.Document, corrects what it can in place and
// records what it did (or what the author must do) in a report.Log. A check
// that finds nothing to correct records nothing. An error returned from a
// check is fatal: it means the document can no longer be trusted.
package rules

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/tsawler/stylecheck/docx"
	"github.com/tsawler/stylecheck/report"
)

// CheckFunc inspects and corrects a document, recording its findings.
type CheckFunc func(doc *docx.Document, log *report.Log) error

// Check is a named CheckFunc.
type Check struct {
	Name string
	Fn   CheckFunc
}

// Workflow is an ordered composition of checks. Checks run strictly in
// order; each observes the mutations of the ones before it.
type Workflow struct {
	name   string
	checks []Check
	logger *slog.Logger
}

// NewWorkflow creates a workflow running checks in the given order.
func NewWorkflow(name string, checks ...Check) *Workflow {
	return &Workflow{
		name:   name,
		checks: checks,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLogger sets the logger used for per-check debug events.
func (w *Workflow) WithLogger(l *slog.Logger) *Workflow {
	if l != nil {
		w.logger = l
	}
	return w
}

// Name returns the workflow name.
func (w *Workflow) Name() string { return w.name }

// Checks returns the names of the checks in run order.
func (w *Workflow) Checks() []string {
	names := make([]string, len(w.checks))
	for i, c := range w.checks {
		names[i] = c.Name
	}
	return names
}

// Run applies every check to doc in order. It stops at the first error.
func (w *Workflow) Run(doc *docx.Document, log *report.Log) error {
	for _, c := range w.checks {
		before := log.Len()
		if err := c.Fn(doc, log); err != nil {
			w.logger.Error("workflow.check_failed", "workflow", w.name, "check", c.Name, "error", err)
			return fmt.Errorf("%s check: %w", c.Name, err)
		}
		w.logger.Debug("workflow.check", "workflow", w.name, "check", c.Name, "entries", log.Len()-before)
	}
	return nil
}

// APAOptions enables the optional APA checks. All are off by default.
type APAOptions struct {
	Tables      bool
	Figures     bool
	RunningHead bool
	PageNumbers bool
}

// APA returns the APA workflow: the mandatory checks in canonical order,
// followed by the enabled optional ones.
func APA(opts APAOptions) *Workflow {
	checks := []Check{
		{"front-matter-font", FrontMatterFont},
		{"margins", Margins},
		{"line-spacing", LineSpacing},
		{"title-page", TitlePage},
		{"abstract", Abstract},
		{"keywords", Keywords},
		{"citations", Citations},
		{"heading-levels", HeadingLevels},
	}
	if opts.Tables {
		checks = append(checks, Check{"tables", Tables})
	}
	if opts.Figures {
		checks = append(checks, Check{"figures", Figures})
	}
	if opts.RunningHead {
		checks = append(checks, Check{"running-head", RunningHead})
	}
	if opts.PageNumbers {
		checks = append(checks, Check{"page-numbers", PageNumbers})
	}
	return NewWorkflow("APA", checks...)
}
