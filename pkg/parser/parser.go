// Package parser assembles the Gherkin token stream into a typed document.
//
// The parser runs a single pass over the tokens with a small explicit state
// machine. Structural errors are collected, never thrown singly: a token in a
// grammatically illegal position produces one error and the parser skips
// forward to the next line that opens a recognized construct, so one
// malformed block cannot cascade into spurious errors for the rest of a
// well-formed document.
package parser

import (
	"strings"

	"github.com/moonrockz/gherkin/pkg/ast"
	"github.com/moonrockz/gherkin/pkg/diagnostic"
	"github.com/moonrockz/gherkin/pkg/dialect"
	"github.com/moonrockz/gherkin/pkg/location"
	"github.com/moonrockz/gherkin/pkg/token"
	"github.com/moonrockz/gherkin/pkg/tokenizer"
)

// Option configures a Parser.
type Option func(*Parser)

// WithIDGenerator replaces the default incrementing node id generator.
func WithIDGenerator(g ast.IDGenerator) Option {
	return func(p *Parser) {
		p.newIDs = func() ast.IDGenerator { return g }
	}
}

// Parser turns Gherkin source into documents. A Parser is stateless across
// calls and safe for concurrent use; per-parse state lives in the builder.
type Parser struct {
	newIDs func() ast.IDGenerator
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		newIDs: func() ast.IDGenerator { return ast.NewIncrementingIDGenerator() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is a convenience for New().Parse("", source).
func Parse(source string) (*ast.Document, diagnostic.ParseErrorList) {
	return New().Parse("", source)
}

// Parse tokenizes source and builds the document. It returns either a
// document or the complete, non-empty list of errors found in the pass,
// never both. Tokenizer failures are returned directly without attempting
// structural parsing.
func (p *Parser) Parse(uri, source string) (*ast.Document, diagnostic.ParseErrorList) {
	tokens, errs := tokenizer.Tokenize(source)
	if len(errs) > 0 {
		return nil, errs
	}

	b := &builder{
		ids:      p.newIDs(),
		doc:      &ast.Document{URI: uri},
		language: dialect.Default,
	}
	for _, t := range tokens {
		b.accept(t)
	}
	b.finish()

	if b.errs.HasErrors() {
		return nil, b.errs.Errors()
	}
	return b.doc, nil
}

type state int

const (
	stateStart state = iota
	stateFeature
	stateBackground
	stateScenario
	stateExamples
)

type builder struct {
	ids  ast.IDGenerator
	errs diagnostic.Collector

	doc      *ast.Document
	language string

	state state

	feature    *ast.Feature
	rule       *ast.Rule
	background *ast.Background
	scenario   *ast.Scenario

	// tagBuf holds tag-line tags until the construct they annotate opens;
	// tagLoc is the position of the first buffered tag line, for reporting.
	tagBuf []ast.Tag
	tagLoc location.Location

	// description accumulation for the most recently opened construct
	descLines  []string
	descTarget *string

	// doc-string assembly
	inDocString bool
	docString   *ast.DocString
	docLines    []string
	// swallowDocString consumes an orphan doc string after its opening
	// fence already produced an error
	swallowDocString bool

	// skipping is the bounded error-recovery mode: tokens are discarded
	// until the next construct-opening line
	skipping bool
}

func (b *builder) accept(t token.Token) {
	// Doc-string content and closing fences bypass the state machine.
	if b.inDocString {
		b.acceptInDocString(t)
		return
	}

	switch t.Type {
	case token.TypeCommentLine:
		b.doc.Comments = append(b.doc.Comments, ast.Comment{Location: t.Location, Text: t.Text})
		return
	case token.TypeLanguage:
		b.language = t.Language
		return
	}

	if b.skipping && !opensConstruct(t.Type) {
		return
	}
	b.skipping = false

	switch t.Type {
	case token.TypeTagLine:
		if len(b.tagBuf) == 0 {
			b.tagLoc = t.Location
		}
		for _, tag := range t.Tags {
			b.tagBuf = append(b.tagBuf, ast.Tag{
				Location: locationAt(t.Location.Line, tag.Column),
				Name:     tag.Name,
				ID:       b.ids.NewID(),
			})
		}

	case token.TypeFeatureLine:
		b.openFeature(t)

	case token.TypeRuleLine:
		b.openRule(t)

	case token.TypeBackgroundLine:
		b.openBackground(t)

	case token.TypeScenarioLine:
		b.openScenario(t, ast.KindScenario)

	case token.TypeScenarioOutlineLine:
		b.openScenario(t, ast.KindScenarioOutline)

	case token.TypeExamplesLine:
		b.openExamples(t)

	case token.TypeStepLine:
		b.addStep(t)

	case token.TypeTableRow:
		b.addTableRow(t)

	case token.TypeDocStringSeparator:
		b.openDocString(t)

	case token.TypeOther:
		if b.descTarget != nil {
			b.descLines = append(b.descLines, t.Text)
			return
		}
		b.fail(t, "unexpected line")
	}
}

func (b *builder) acceptInDocString(t token.Token) {
	if t.Type == token.TypeDocStringSeparator {
		b.inDocString = false
		if b.swallowDocString {
			b.swallowDocString = false
			return
		}
		b.docString.Content = strings.Join(b.docLines, "\n")
		step := b.currentStep()
		step.Argument = &ast.StepArgument{DocString: b.docString}
		b.docString = nil
		b.docLines = nil
		return
	}
	// Inside a doc string every token is a verbatim content line.
	b.docLines = append(b.docLines, t.Text)
}

func (b *builder) openFeature(t token.Token) {
	if b.feature != nil {
		b.fail(t, "unexpected Feature: a document has a single Feature")
		return
	}
	b.closeDescription()
	b.feature = &ast.Feature{
		Location: t.Location,
		Keyword:  t.Keyword,
		Name:     t.Name,
		Language: b.language,
		Tags:     b.takeTags(),
	}
	b.doc.Feature = b.feature
	b.descTarget = &b.feature.Description
	b.state = stateFeature
}

func (b *builder) openRule(t token.Token) {
	if b.feature == nil {
		b.fail(t, "unexpected Rule: no Feature is open")
		return
	}
	b.closeDescription()
	b.closeScenarioScope()
	rule := &ast.Rule{
		Location: t.Location,
		Keyword:  t.Keyword,
		Name:     t.Name,
		Tags:     b.takeTags(),
		ID:       b.ids.NewID(),
	}
	// Rules never nest; a Rule line inside a Rule opens a sibling.
	b.rule = rule
	b.feature.Children = append(b.feature.Children, ast.FeatureChild{Rule: rule})
	b.descTarget = &rule.Description
	b.state = stateFeature
}

func (b *builder) openBackground(t token.Token) {
	if b.feature == nil {
		b.fail(t, "unexpected Background: no Feature is open")
		return
	}
	if len(b.tagBuf) > 0 {
		b.errs.Addf(b.tagLoc.Line, columnOf(b.tagLoc), "tags are not allowed before Background")
		b.dropTags()
	}
	if b.scopeHasBackground() {
		b.fail(t, "duplicate Background: only one Background per Feature or Rule")
		return
	}
	if b.scopeHasScenarios() {
		b.fail(t, "Background must come before any Scenario or Rule")
		return
	}
	b.closeDescription()
	b.closeScenario()
	bg := &ast.Background{
		Location: t.Location,
		Keyword:  t.Keyword,
		Name:     t.Name,
		ID:       b.ids.NewID(),
	}
	b.background = bg
	b.appendChild(ast.FeatureChild{Background: bg})
	b.descTarget = &bg.Description
	b.state = stateBackground
}

func (b *builder) openScenario(t token.Token, kind ast.ScenarioKind) {
	if b.feature == nil {
		b.fail(t, "unexpected Scenario: no Feature is open")
		return
	}
	b.closeDescription()
	b.closeScenarioScope()
	sc := &ast.Scenario{
		Location: t.Location,
		Kind:     kind,
		Keyword:  t.Keyword,
		Name:     t.Name,
		Tags:     b.takeTags(),
		ID:       b.ids.NewID(),
	}
	b.scenario = sc
	b.appendChild(ast.FeatureChild{Scenario: sc})
	b.descTarget = &sc.Description
	b.state = stateScenario
}

func (b *builder) openExamples(t token.Token) {
	if b.scenario == nil || b.scenario.Kind != ast.KindScenarioOutline {
		b.fail(t, "Examples not allowed here: no Scenario Outline is open")
		return
	}
	b.closeDescription()
	ex := ast.Examples{
		Location: t.Location,
		Keyword:  t.Keyword,
		Name:     t.Name,
		Tags:     b.takeTags(),
		ID:       b.ids.NewID(),
	}
	b.scenario.Examples = append(b.scenario.Examples, ex)
	b.descTarget = &b.scenario.Examples[len(b.scenario.Examples)-1].Description
	b.state = stateExamples
}

func (b *builder) addStep(t token.Token) {
	if b.state != stateBackground && b.state != stateScenario {
		b.fail(t, "unexpected step: no Scenario or Background is open")
		return
	}
	b.closeDescription()
	step := ast.Step{
		Location:    t.Location,
		Keyword:     t.Keyword,
		KeywordType: t.KeywordType,
		Text:        t.Text,
		ID:          b.ids.NewID(),
	}
	if b.state == stateBackground {
		b.background.Steps = append(b.background.Steps, step)
	} else {
		b.scenario.Steps = append(b.scenario.Steps, step)
	}
}

func (b *builder) addTableRow(t token.Token) {
	row := ast.TableRow{
		Location: t.Location,
		ID:       b.ids.NewID(),
		Cells:    make([]ast.TableCell, len(t.Cells)),
	}
	for i, c := range t.Cells {
		row.Cells[i] = ast.TableCell{
			Location: locationAt(t.Location.Line, c.Column),
			Value:    c.Value,
		}
	}

	switch b.state {
	case stateExamples:
		b.closeDescription()
		ex := &b.scenario.Examples[len(b.scenario.Examples)-1]
		if ex.TableHeader == nil {
			ex.TableHeader = &row
		} else {
			ex.TableBody = append(ex.TableBody, row)
		}
	case stateBackground, stateScenario:
		step := b.currentStep()
		if step == nil {
			b.fail(t, "unexpected table row: no step to attach it to")
			return
		}
		b.closeDescription()
		if step.Argument == nil {
			step.Argument = &ast.StepArgument{
				DataTable: &ast.DataTable{Location: t.Location},
			}
		}
		if step.Argument.DataTable == nil {
			b.fail(t, "step already has a doc string argument")
			return
		}
		step.Argument.DataTable.Rows = append(step.Argument.DataTable.Rows, row)
	default:
		b.fail(t, "unexpected table row")
	}
}

func (b *builder) openDocString(t token.Token) {
	b.inDocString = true
	step := b.currentStep()
	if b.state != stateBackground && b.state != stateScenario || step == nil {
		b.fail(t, "unexpected doc string: no step to attach it to")
		b.swallowDocString = true
		return
	}
	if step.Argument != nil {
		b.fail(t, "step already has an argument")
		b.swallowDocString = true
		return
	}
	b.closeDescription()
	b.docString = &ast.DocString{
		Location:  t.Location,
		Delimiter: t.Delimiter,
		MediaType: t.MediaType,
	}
}

// currentStep returns the step block arguments attach to. The pointer is
// valid until the next step is appended to the same slice.
func (b *builder) currentStep() *ast.Step {
	switch b.state {
	case stateBackground:
		if b.background != nil && len(b.background.Steps) > 0 {
			return &b.background.Steps[len(b.background.Steps)-1]
		}
	case stateScenario:
		if b.scenario != nil && len(b.scenario.Steps) > 0 {
			return &b.scenario.Steps[len(b.scenario.Steps)-1]
		}
	}
	return nil
}

func (b *builder) appendChild(c ast.FeatureChild) {
	if b.rule != nil {
		b.rule.Children = append(b.rule.Children, ast.RuleChild{
			Background: c.Background,
			Scenario:   c.Scenario,
		})
		return
	}
	b.feature.Children = append(b.feature.Children, c)
}

func (b *builder) scopeHasBackground() bool {
	if b.rule != nil {
		for _, c := range b.rule.Children {
			if c.Background != nil {
				return true
			}
		}
		return false
	}
	for _, c := range b.feature.Children {
		if c.Background != nil {
			return true
		}
	}
	return false
}

func (b *builder) scopeHasScenarios() bool {
	if b.rule != nil {
		return len(b.rule.Children) > 0
	}
	for _, c := range b.feature.Children {
		if c.Background == nil {
			return true
		}
	}
	return false
}

func (b *builder) closeScenario() {
	b.scenario = nil
}

func (b *builder) closeScenarioScope() {
	b.scenario = nil
	b.background = nil
}

func (b *builder) closeDescription() {
	if b.descTarget != nil && len(b.descLines) > 0 {
		*b.descTarget = strings.Join(b.descLines, "\n")
	}
	b.descTarget = nil
	b.descLines = nil
}

func (b *builder) takeTags() []ast.Tag {
	tags := b.tagBuf
	b.tagBuf = nil
	return tags
}

func (b *builder) dropTags() {
	b.tagBuf = nil
}

func (b *builder) fail(t token.Token, message string) {
	b.errs.Addf(t.Location.Line, columnOf(t.Location), "%s", message)
	b.skipping = true
}

func (b *builder) finish() {
	b.closeDescription()
	if len(b.tagBuf) > 0 && !b.skipping {
		b.errs.Addf(b.tagLoc.Line, columnOf(b.tagLoc), "tags have no Scenario, Rule or Examples to attach to")
	}
}

func opensConstruct(t token.Type) bool {
	switch t {
	case token.TypeFeatureLine, token.TypeRuleLine, token.TypeBackgroundLine,
		token.TypeScenarioLine, token.TypeScenarioOutlineLine, token.TypeExamplesLine:
		return true
	}
	return false
}

func locationAt(line, column int) location.Location {
	return location.New(line, column)
}

func columnOf(l location.Location) int {
	if l.Column != nil {
		return *l.Column
	}
	return 1
}
