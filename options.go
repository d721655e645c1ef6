package stylecheck

import (
	"log/slog"

	"github.com/tsawler/stylecheck/rules"
	"github.com/tsawler/stylecheck/storage"
	"github.com/tsawler/stylecheck/style"
)

// CheckOptions holds configuration for a style check.
type CheckOptions struct {
	style    string
	apa      rules.APAOptions
	registry *style.Registry

	logger *slog.Logger
	store  storage.Saver
	guard  *storage.Guard
}

// defaultOptions returns the default check options.
func defaultOptions() CheckOptions {
	return CheckOptions{
		style:    "APA",
		registry: style.Default(),
	}
}

// clone creates a copy of CheckOptions. Registry, logger, store and guard
// are shared; they are safe to share between checks.
func (o CheckOptions) clone() CheckOptions {
	return o
}

// variantOptions converts the options into style options.
func (o CheckOptions) variantOptions() []style.Option {
	opts := []style.Option{style.WithAPAOptions(o.apa)}
	if o.logger != nil {
		opts = append(opts, style.WithLogger(o.logger))
	}
	if o.store != nil {
		opts = append(opts, style.WithStore(o.store))
	}
	return opts
}
