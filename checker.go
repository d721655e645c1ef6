package stylecheck

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/tsawler/stylecheck/report"
	"github.com/tsawler/stylecheck/rules"
	"github.com/tsawler/stylecheck/storage"
	"github.com/tsawler/stylecheck/style"
)

// Checker provides a fluent interface for checking a document. Each
// configuration method returns a new Checker, so a partially configured
// Checker can be shared and extended safely.
type Checker struct {
	// Source
	filename string
	data     []byte
	hasData  bool

	// Configuration
	options CheckOptions
}

// Result is the outcome of a check.
type Result struct {
	// Style is the tag of the style that ran.
	Style string
	// Document is the corrected document.
	Document []byte
	// Report lists what was corrected and what the author must still do.
	Report report.Report
	// Summary aggregates Report.
	Summary report.Summary
	// Path is where the corrected document was stored; empty unless saved.
	Path string
}

// clone creates a copy of the Checker with a copy of its options.
func (c *Checker) clone() *Checker {
	return &Checker{
		filename: c.filename,
		data:     c.data,
		hasData:  c.hasData,
		options:  c.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Checker instance)
// ============================================================================

// Style selects the style variant by its exact tag.
//
// Example:
//
//	res, err := stylecheck.Open("paper.docx").Style("Custom").Check(ctx)
func (c *Checker) Style(tag string) *Checker {
	n := c.clone()
	n.options.style = tag
	return n
}

// Tables enables the APA table check.
func (c *Checker) Tables() *Checker {
	n := c.clone()
	n.options.apa.Tables = true
	return n
}

// Figures enables the APA figure caption and resolution check.
func (c *Checker) Figures() *Checker {
	n := c.clone()
	n.options.apa.Figures = true
	return n
}

// RunningHead enables the APA running head check.
func (c *Checker) RunningHead() *Checker {
	n := c.clone()
	n.options.apa.RunningHead = true
	return n
}

// PageNumbers enables the APA page number check.
func (c *Checker) PageNumbers() *Checker {
	n := c.clone()
	n.options.apa.PageNumbers = true
	return n
}

// APAOptions replaces the optional APA checks with opts.
func (c *Checker) APAOptions(opts rules.APAOptions) *Checker {
	n := c.clone()
	n.options.apa = opts
	return n
}

// Logger sets the structured logger for the run.
func (c *Checker) Logger(l *slog.Logger) *Checker {
	n := c.clone()
	n.options.logger = l
	return n
}

// Store sets where Save writes the corrected document.
func (c *Checker) Store(s storage.Saver) *Checker {
	n := c.clone()
	n.options.store = s
	return n
}

// Guard makes the run fail with storage.ErrInProgress while another run over
// the same input holds it.
func (c *Checker) Guard(g *storage.Guard) *Checker {
	n := c.clone()
	n.options.guard = g
	return n
}

// Registry sets the registry styles are looked up in.
func (c *Checker) Registry(r *style.Registry) *Checker {
	n := c.clone()
	n.options.registry = r
	return n
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Check runs the selected style over the document and returns the corrected
// bytes with the report.
func (c *Checker) Check(ctx context.Context) (*Result, error) {
	return c.run(ctx, "", false)
}

// Save is Check followed by storing the corrected document under nameHint
// with the configured store.
func (c *Checker) Save(ctx context.Context, nameHint string) (*Result, error) {
	if c.options.store == nil {
		return nil, style.ErrNoStore
	}
	return c.run(ctx, nameHint, true)
}

func (c *Checker) run(ctx context.Context, nameHint string, save bool) (*Result, error) {
	// An unknown style fails before the input is read.
	if err := c.options.registry.Validate(c.options.style); err != nil {
		return nil, err
	}
	data, err := c.input()
	if err != nil {
		return nil, err
	}

	if c.options.guard != nil {
		release, err := c.options.guard.Acquire(data)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	v, err := c.options.registry.New(c.options.style, data, c.options.variantOptions()...)
	if err != nil {
		return nil, err
	}
	if _, err := v.StartFlow(ctx); err != nil {
		return nil, err
	}

	res := &Result{Style: v.Name(), Report: v.CreateReport()}
	res.Summary = report.Summarize(res.Report)
	if res.Document, err = v.Serialize(); err != nil {
		return nil, err
	}
	if save {
		if res.Path, err = v.UpdatedDocument(ctx, nameHint); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// input returns the document bytes, reading the file if needed.
func (c *Checker) input() ([]byte, error) {
	if c.hasData {
		return c.data, nil
	}
	if c.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}
	data, err := os.ReadFile(c.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}
