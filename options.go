package uval

import (
	"log/slog"

	"github.com/dmitrymomot/uval/adaptor"
	"github.com/dmitrymomot/uval/parser"
)

// Option configures a Validation.
type Option func(*Validation)

// WithLogger sets the logger used for setup diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validation) {
		if l != nil {
			v.log = l
		}
	}
}

// WithParser replaces the default markup parser.
func WithParser(p *parser.Parser) Option {
	return func(v *Validation) {
		if p != nil {
			v.parser = p
		}
	}
}

// WithAdaptor registers a under id, like AddAdaptor.
func WithAdaptor(id string, a adaptor.Adaptor) Option {
	return func(v *Validation) {
		v.namespace(id).Attach(a)
	}
}

// WithSelected selects the adaptor used by setup, like SetAdaptor.
func WithSelected(id string) Option {
	return func(v *Validation) {
		v.selected = id
	}
}
