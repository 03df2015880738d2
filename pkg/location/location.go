// Package location provides source positions for Gherkin documents.
package location

import "fmt"

// Location is a position in Gherkin source text. Line is 1-based.
// Column is 1-based and rune-counted; it is nil for entities that span a
// whole line (comments, documents) rather than starting at a keyword.
type Location struct {
	Line   int
	Column *int
}

// New returns a Location with both line and column set.
func New(line, column int) Location {
	return Location{Line: line, Column: &column}
}

// NewLine returns a Location with only the line set.
func NewLine(line int) Location {
	return Location{Line: line}
}

func (l Location) String() string {
	if l.Column != nil {
		return fmt.Sprintf("%d:%d", l.Line, *l.Column)
	}
	return fmt.Sprintf("%d", l.Line)
}

// Equal reports whether two locations refer to the same position.
func (l Location) Equal(o Location) bool {
	if l.Line != o.Line {
		return false
	}
	if (l.Column == nil) != (o.Column == nil) {
		return false
	}
	return l.Column == nil || *l.Column == *o.Column
}
