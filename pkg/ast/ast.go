// Package ast defines the typed document tree produced by the Gherkin parser.
//
// All entities are immutable once constructed: the parser is the sole
// producer, the writer and wire encoders only read them. Ownership is
// tree-shaped; the document's comment list is the one collection independent
// of the feature tree.
package ast

import (
	"github.com/moonrockz/gherkin/pkg/dialect"
	"github.com/moonrockz/gherkin/pkg/location"
)

// Document is the top-level result of parsing one Gherkin source.
type Document struct {
	// URI identifies the source the document was parsed from, when the
	// caller supplied one.
	URI      string
	Feature  *Feature
	Comments []Comment
}

// Feature is the top-level named unit of a document.
type Feature struct {
	Location    location.Location
	Tags        []Tag
	Language    string
	Keyword     string
	Name        string
	Description string
	Children    []FeatureChild
}

// FeatureChild is a child of a Feature; exactly one field is non-nil.
type FeatureChild struct {
	Background *Background
	Scenario   *Scenario
	Rule       *Rule
}

// Background holds steps implicitly prepended to every scenario in its
// enclosing Feature or Rule.
type Background struct {
	Location    location.Location
	Keyword     string
	Name        string
	Description string
	ID          string
	Steps       []Step
}

// ScenarioKind distinguishes a plain Scenario from a Scenario Outline.
type ScenarioKind string

const (
	KindScenario        ScenarioKind = "scenario"
	KindScenarioOutline ScenarioKind = "scenario-outline"
)

// Scenario is one Scenario or Scenario Outline. Examples is empty unless
// Kind is KindScenarioOutline.
type Scenario struct {
	Location    location.Location
	Tags        []Tag
	Kind        ScenarioKind
	Keyword     string
	Name        string
	Description string
	ID          string
	Steps       []Step
	Examples    []Examples
}

// Rule groups Background/Scenario children under a named sub-unit of a
// Feature. Its children grammar mirrors the Feature's.
type Rule struct {
	Location    location.Location
	Tags        []Tag
	Keyword     string
	Name        string
	Description string
	ID          string
	Children    []RuleChild
}

// RuleChild is a child of a Rule; exactly one field is non-nil.
type RuleChild struct {
	Background *Background
	Scenario   *Scenario
}

// Step is one Given/When/Then/And/But line. Keyword retains its trailing
// space so that keyword+text reproduces the source line.
type Step struct {
	Location    location.Location
	Keyword     string
	KeywordType dialect.KeywordType
	Text        string
	ID          string
	Argument    *StepArgument
}

// StepArgument is a step's block argument; exactly one field is non-nil.
type StepArgument struct {
	DataTable *DataTable
	DocString *DocString
}

// DataTable is a tabular step argument. All rows have equal cell counts.
type DataTable struct {
	Location location.Location
	Rows     []TableRow
}

// DocString is a multi-line text step argument. Content excludes the
// delimiter lines; Delimiter records which fence introduced it.
type DocString struct {
	Location  location.Location
	MediaType string
	Content   string
	Delimiter string
}

// Examples is one Examples block of a Scenario Outline. TableHeader may be
// nil for a block with no table at all; TableBody may be empty (a header-only
// block is legal).
type Examples struct {
	Location    location.Location
	Tags        []Tag
	Keyword     string
	Name        string
	Description string
	ID          string
	TableHeader *TableRow
	TableBody   []TableRow
}

// TableRow is one row of a data or examples table.
type TableRow struct {
	Location location.Location
	ID       string
	Cells    []TableCell
}

// TableCell is a single table cell.
type TableCell struct {
	Location location.Location
	Value    string
}

// Tag is one @-annotation. Duplicates within a list are preserved, not
// deduplicated, to keep round-trip fidelity.
type Tag struct {
	Location location.Location
	Name     string
	ID       string
}

// Comment is one #-prefixed line outside any doc string. Comments keep
// source order independent of the feature tree.
type Comment struct {
	Location location.Location
	Text     string
}
