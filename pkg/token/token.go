// Package token defines the lexical units produced by the Gherkin tokenizer.
package token

import (
	"fmt"

	"github.com/moonrockz/gherkin/pkg/dialect"
	"github.com/moonrockz/gherkin/pkg/location"
)

// Type identifies the kind of token.
type Type int

const (
	TypeNone Type = iota
	TypeFeatureLine
	TypeRuleLine
	TypeBackgroundLine
	TypeScenarioLine
	TypeScenarioOutlineLine
	TypeExamplesLine
	TypeStepLine
	TypeDocStringSeparator
	TypeTableRow
	TypeTagLine
	TypeCommentLine
	TypeLanguage
	TypeOther
)

var typeNames = [...]string{
	"none", "feature-line", "rule-line", "background-line", "scenario-line",
	"scenario-outline-line", "examples-line", "step-line",
	"doc-string-separator", "table-row", "tag-line", "comment-line",
	"language", "other",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Cell is one value in a table-row token, with the column of its first
// content rune.
type Cell struct {
	Value  string
	Column int
}

// Tag is one @-name in a tag-line token, with the column of its @.
type Tag struct {
	Name   string
	Column int
}

// Token is one classified lexical unit. Exactly one token is produced per
// non-blank source line; its field usage depends on Type:
//
//   - header lines (feature/rule/background/scenario/examples) set Keyword
//     and Name
//   - step lines set Keyword, KeywordType, and Text
//   - doc-string separators set Delimiter and, on the opening fence,
//     MediaType
//   - table rows set Cells, tag lines set Tags
//   - comment lines, language directives, and other (free text) lines set
//     Text; language directives additionally set Language
type Token struct {
	Type     Type
	Location location.Location

	Keyword     string
	KeywordType dialect.KeywordType
	Name        string
	Text        string

	Delimiter string
	MediaType string

	Cells []Cell
	Tags  []Tag

	Language string
}

func (t Token) String() string {
	switch t.Type {
	case TypeStepLine:
		return fmt.Sprintf("%s: %s%s", t.Type, t.Keyword, t.Text)
	case TypeFeatureLine, TypeRuleLine, TypeBackgroundLine,
		TypeScenarioLine, TypeScenarioOutlineLine, TypeExamplesLine:
		return fmt.Sprintf("%s: %s: %s", t.Type, t.Keyword, t.Name)
	default:
		return fmt.Sprintf("%s: %s", t.Type, t.Text)
	}
}
