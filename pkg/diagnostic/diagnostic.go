// Package diagnostic is the shared error model for the tokenizer and parser.
//
// Both stages report failures as ParseError values carrying a message and a
// source position, and both accumulate every error found in a pass instead of
// stopping at the first one. Callers therefore always receive either a fully
// successful result or the complete list of diagnostics for the input.
package diagnostic

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/moonrockz/gherkin/pkg/location"
)

// ParseError is a single recoverable failure found while scanning or parsing.
type ParseError struct {
	Message  string
	Location location.Location
}

// New creates a ParseError at the given line and 1-based column.
func New(message string, line, column int) ParseError {
	return ParseError{Message: message, Location: location.New(line, column)}
}

// NewLine creates a ParseError that refers to a whole line.
func NewLine(message string, line int) ParseError {
	return ParseError{Message: message, Location: location.NewLine(line)}
}

func (e ParseError) Error() string {
	return fmt.Sprintf("(%s): %s", e.Location, e.Message)
}

// ParseErrorList is the complete set of diagnostics from one pass, in source
// order. It is never empty when returned as an error.
type ParseErrorList []ParseError

func (l ParseErrorList) Error() string {
	if len(l) == 1 {
		return l[0].Error()
	}
	msg := fmt.Sprintf("%d parse errors:", len(l))
	for _, e := range l {
		msg += "\n\t" + e.Error()
	}
	return msg
}

// Unwrap exposes the individual errors to errors.Is/As consumers.
func (l ParseErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Combined folds the list into one multierr-combined error, or nil when the
// list is empty. Each ParseError stays addressable for callers that walk the
// chain with multierr.Errors or errors.As.
func (l ParseErrorList) Combined() error {
	return multierr.Combine(l.Unwrap()...)
}

// FromError recovers the diagnostic list from an error built by Combined.
// It returns nil for errors that carry no ParseError.
func FromError(err error) ParseErrorList {
	var list ParseErrorList
	for _, e := range multierr.Errors(err) {
		var pe ParseError
		if errors.As(e, &pe) {
			list = append(list, pe)
		}
	}
	return list
}

// Collector accumulates diagnostics during a scanning or parsing pass.
// The zero value is ready to use.
type Collector struct {
	errs ParseErrorList
}

// Add records one error.
func (c *Collector) Add(e ParseError) {
	c.errs = append(c.errs, e)
}

// Addf records one error with a formatted message at line/column.
func (c *Collector) Addf(line, column int, format string, args ...any) {
	c.Add(New(fmt.Sprintf(format, args...), line, column))
}

// AddLinef records one error with a formatted message for a whole line.
func (c *Collector) AddLinef(line int, format string, args ...any) {
	c.Add(NewLine(fmt.Sprintf(format, args...), line))
}

// HasErrors reports whether anything was recorded.
func (c *Collector) HasErrors() bool {
	return len(c.errs) > 0
}

// Errors returns the accumulated list in source order.
func (c *Collector) Errors() ParseErrorList {
	return c.errs
}
