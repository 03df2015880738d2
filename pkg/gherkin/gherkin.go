// Package gherkin is the engine boundary: parse, tokenize, write.
//
// The three operations are pure functions of their input. The context is
// used only to carry a logger (zerolog.Ctx); nothing blocks and no state is
// shared, so every call is safe to make concurrently.
package gherkin

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/moonrockz/gherkin/pkg/ast"
	"github.com/moonrockz/gherkin/pkg/diagnostic"
	"github.com/moonrockz/gherkin/pkg/parser"
	"github.com/moonrockz/gherkin/pkg/token"
	"github.com/moonrockz/gherkin/pkg/tokenizer"
	"github.com/moonrockz/gherkin/pkg/writer"
)

// Source is one Gherkin input. URI is optional and only used to label the
// resulting document and log events.
type Source struct {
	URI  string
	Data string
}

// Option configures Parse and Write.
type Option func(*config)

type config struct {
	parserOpts []parser.Option
	writerOpts []writer.Option
}

// WithIDGenerator controls how node ids are assigned during parsing.
func WithIDGenerator(g ast.IDGenerator) Option {
	return func(c *config) {
		c.parserOpts = append(c.parserOpts, parser.WithIDGenerator(g))
	}
}

// WithIndent controls the indentation unit used when writing.
func WithIndent(indent string) Option {
	return func(c *config) {
		c.writerOpts = append(c.writerOpts, writer.WithIndent(indent))
	}
}

// Parse turns Gherkin source text into a typed document. On failure the
// returned error is a diagnostic.ParseErrorList carrying every error found
// in the pass.
func Parse(ctx context.Context, src Source, opts ...Option) (*ast.Document, error) {
	cfg := newConfig(opts)
	log := zerolog.Ctx(ctx)
	log.Debug().Str("uri", src.URI).Int("bytes", len(src.Data)).Msg("parsing gherkin source")

	doc, errs := parser.New(cfg.parserOpts...).Parse(src.URI, src.Data)
	if len(errs) > 0 {
		log.Debug().Str("uri", src.URI).Int("errors", len(errs)).Msg("parse failed")
		return nil, errs.Combined()
	}
	return doc, nil
}

// Tokenize returns the raw token stream for tooling that does not need a
// full document tree. The error contract matches Parse.
func Tokenize(ctx context.Context, src Source) ([]token.Token, error) {
	log := zerolog.Ctx(ctx)
	log.Debug().Str("uri", src.URI).Int("bytes", len(src.Data)).Msg("tokenizing gherkin source")

	tokens, errs := tokenizer.Tokenize(src.Data)
	if len(errs) > 0 {
		log.Debug().Str("uri", src.URI).Int("errors", len(errs)).Msg("tokenize failed")
		return nil, errs.Combined()
	}
	return tokens, nil
}

// Write renders a document as canonical Gherkin text.
func Write(ctx context.Context, doc *ast.Document, opts ...Option) (string, error) {
	cfg := newConfig(opts)
	zerolog.Ctx(ctx).Debug().Msg("writing gherkin document")
	return writer.New(cfg.writerOpts...).Write(doc)
}

// Errors extracts the diagnostic list from an error returned by Parse or
// Tokenize. It returns nil for other errors.
func Errors(err error) diagnostic.ParseErrorList {
	return diagnostic.FromError(err)
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
