package parser

import (
	"log/slog"

	"github.com/dmitrymomot/uval/pkg/logger"
)

// Parser turns data-val-* markup into neutral rule configuration.
// A Parser is safe for concurrent use once constructed.
type Parser struct {
	log      *slog.Logger
	suppress suppressions
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for markup diagnostics.
// Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// WithSuppressedRule drops rule from every element of the given kind,
// in addition to the default required-on-checkbox/select exceptions.
func WithSuppressedRule(kind ElementKind, rule string) Option {
	return func(p *Parser) {
		if rule != "" {
			p.suppress.add(kind, rule)
		}
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		log:      logger.Discard(),
		suppress: defaultSuppressions(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
