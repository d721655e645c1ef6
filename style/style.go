// Package style selects the style variant that checks a manuscript.
//
// A Variant owns one run over one input document:
//
//	v, err := style.Default().New("APA", data, style.WithStore(store))
//	if err != nil {
//	    // UnknownStyleError
//	}
//	doc, err := v.StartFlow(ctx)
//	rep := v.CreateReport()
//	path, err := v.UpdatedDocument(ctx, "alice")
//
// New styles are added by registering another Variant constructor.
package style

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/tsawler/stylecheck/docx"
	"github.com/tsawler/stylecheck/report"
	"github.com/tsawler/stylecheck/rules"
	"github.com/tsawler/stylecheck/storage"
)

// Variant is the capability set every style offers.
type Variant interface {
	// Name returns the style tag.
	Name() string
	// StartFlow loads the document and runs the style's checks over it.
	StartFlow(ctx context.Context) (*docx.Document, error)
	// CreateReport renders the findings of the last StartFlow.
	CreateReport() report.Report
	// Serialize returns the corrected document bytes.
	Serialize() ([]byte, error)
	// UpdatedDocument stores the corrected document and returns its path.
	UpdatedDocument(ctx context.Context, nameHint string) (string, error)
}

// UnknownStyleError is returned for a style tag no variant is registered for.
type UnknownStyleError struct {
	Tag string
}

func (e *UnknownStyleError) Error() string {
	return fmt.Sprintf("unknown style %q", e.Tag)
}

var (
	// ErrNotStarted is returned when the document is requested before StartFlow.
	ErrNotStarted = errors.New("style flow has not been started")
	// ErrNoStore is returned by UpdatedDocument when no store is configured.
	ErrNoStore = errors.New("no document store configured")
)

// Options configure a Variant.
type Options struct {
	Logger *slog.Logger
	Store  storage.Saver
	APA    rules.APAOptions
}

// Option sets one field of Options.
type Option func(*Options)

// WithLogger sets the logger for flow events.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithStore sets where UpdatedDocument saves documents.
func WithStore(s storage.Saver) Option {
	return func(o *Options) { o.Store = s }
}

// WithAPAOptions enables optional APA checks.
func WithAPAOptions(a rules.APAOptions) Option {
	return func(o *Options) { o.APA = a }
}

// Constructor builds a Variant over input bytes. It must not parse them.
type Constructor func(data []byte, opts Options) Variant

// Registry maps exact style tags to constructors.
type Registry struct {
	ctors map[string]Constructor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Default returns a registry holding the APA and Custom styles.
func Default() *Registry {
	r := NewRegistry()
	r.Register("APA", NewAPA)
	r.Register("Custom", NewCustom)
	return r
}

// Register adds or replaces the constructor for tag.
func (r *Registry) Register(tag string, c Constructor) {
	r.ctors[tag] = c
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.ctors))
	for t := range r.ctors {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Validate reports whether tag is registered, failing with
// *UnknownStyleError when it is not.
func (r *Registry) Validate(tag string) error {
	if _, ok := r.ctors[tag]; !ok {
		return &UnknownStyleError{Tag: tag}
	}
	return nil
}

// New returns the variant registered for tag. Tags match exactly. An unknown
// tag fails before data is looked at.
func (r *Registry) New(tag string, data []byte, opts ...Option) (Variant, error) {
	c, ok := r.ctors[tag]
	if !ok {
		return nil, &UnknownStyleError{Tag: tag}
	}
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c(data, o), nil
}

// flow is the shared implementation of the capability set. A nil workflow
// leaves the document untouched.
type flow struct {
	name     string
	data     []byte
	opts     Options
	workflow *rules.Workflow

	doc *docx.Document
	log *report.Log
}

func (f *flow) Name() string { return f.name }

func (f *flow) StartFlow(ctx context.Context) (*docx.Document, error) {
	f.doc, f.log = nil, report.NewLog()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := f.opts.Logger.With("style", f.name)
	logger.Info("variant.start", "bytes", len(f.data))

	doc, err := docx.Load(f.data)
	if err != nil {
		logger.Error("variant.load_failed", "error", err)
		return nil, err
	}
	if f.workflow != nil {
		if err := f.workflow.WithLogger(logger).Run(doc, f.log); err != nil {
			logger.Error("variant.workflow_failed", "error", err)
			return nil, &docx.SerializationError{Part: "document", Err: err}
		}
	}
	f.doc = doc
	logger.Info("variant.done", "entries", f.log.Len())
	return doc, nil
}

func (f *flow) CreateReport() report.Report {
	return report.Render(f.log)
}

func (f *flow) Serialize() ([]byte, error) {
	if f.doc == nil {
		return nil, ErrNotStarted
	}
	return f.doc.Serialize()
}

func (f *flow) UpdatedDocument(ctx context.Context, nameHint string) (string, error) {
	if f.opts.Store == nil {
		return "", ErrNoStore
	}
	data, err := f.Serialize()
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := f.opts.Store.Save(ctx, nameHint, data)
	if err != nil {
		return "", fmt.Errorf("saving updated document: %w", err)
	}
	f.opts.Logger.Info("variant.saved", "style", f.name, "path", path)
	return path, nil
}

// APA checks manuscripts against APA 7 formatting rules.
type APA struct{ flow }

// NewAPA is the Constructor for the APA style.
func NewAPA(data []byte, opts Options) Variant {
	return &APA{flow{name: "APA", data: data, opts: opts, workflow: rules.APA(opts.APA)}}
}

// Custom accepts a document and returns it unchanged. It runs no checks.
type Custom struct{ flow }

// NewCustom is the Constructor for the Custom style.
func NewCustom(data []byte, opts Options) Variant {
	return &Custom{flow{name: "Custom", data: data, opts: opts}}
}
