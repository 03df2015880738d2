// Package writer re-serializes a document into canonical Gherkin text.
//
// Output is deterministic and normalized: indentation is rebuilt per nesting
// level and tables are column-aligned, so the round-trip guarantee is
// semantic (re-parsing the output yields a structurally equal document), not
// byte-identical to the original source.
package writer

import (
	"strings"

	"github.com/apparentlymart/go-textseg/v13/textseg"
	"gitlab.com/tozd/go/errors"

	"github.com/moonrockz/gherkin/pkg/ast"
	"github.com/moonrockz/gherkin/pkg/dialect"
)

// Option configures a Writer.
type Option func(*Writer)

// WithIndent replaces the default two-space indentation unit.
func WithIndent(indent string) Option {
	return func(w *Writer) {
		w.indent = indent
	}
}

// Writer renders documents. The zero configuration matches the canonical
// Gherkin formatting conventions.
type Writer struct {
	indent string
}

// New creates a Writer.
func New(opts ...Option) *Writer {
	w := &Writer{indent: "  "}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write is a convenience for New().Write(doc).
func Write(doc *ast.Document) (string, error) {
	return New().Write(doc)
}

// Write renders doc as canonical Gherkin text. It fails only on documents
// that violate an invariant the parser never produces, such as a ragged
// data table in a hand-built tree.
func (w *Writer) Write(doc *ast.Document) (string, error) {
	if doc == nil {
		return "", errors.New("cannot write a nil document")
	}
	p := &printer{indentUnit: w.indent}
	if err := p.document(doc); err != nil {
		return "", err
	}
	return p.sb.String(), nil
}

type printer struct {
	sb         strings.Builder
	indentUnit string
}

func (p *printer) document(doc *ast.Document) error {
	feature := doc.Feature

	// Comments are independent of the feature tree; those preceding the
	// Feature line are printed before it, the rest after the last child.
	// Source order within each group is preserved.
	var before, after []ast.Comment
	for _, c := range doc.Comments {
		if feature != nil && c.Location.Line < feature.Location.Line {
			before = append(before, c)
		} else {
			after = append(after, c)
		}
	}

	if feature != nil && feature.Language != "" && feature.Language != dialect.Default {
		p.line(0, "# language: "+feature.Language)
	}
	// The pre-feature block keeps source-line order between comments and
	// the feature's tag line. A comment that merely looks like a language
	// directive must never move to the first non-blank line, where
	// re-reading the output would honor it as a real directive.
	preTags, postTags := splitAroundTags(before, feature)
	for _, c := range preTags {
		p.line(0, c.Text)
	}
	if feature != nil {
		if err := p.feature(feature, postTags); err != nil {
			return err
		}
	}
	for _, c := range after {
		p.line(0, c.Text)
	}
	return nil
}

// splitAroundTags partitions pre-feature comments into those written before
// the feature's tag line and those written between it and the header.
func splitAroundTags(comments []ast.Comment, f *ast.Feature) (pre, post []ast.Comment) {
	if f == nil || len(f.Tags) == 0 {
		return comments, nil
	}
	tagLine := f.Tags[0].Location.Line
	for _, c := range comments {
		if c.Location.Line > tagLine {
			post = append(post, c)
		} else {
			pre = append(pre, c)
		}
	}
	return pre, post
}

func (p *printer) feature(f *ast.Feature, comments []ast.Comment) error {
	p.tags(0, f.Tags)
	for _, c := range comments {
		p.line(0, c.Text)
	}
	p.header(0, f.Keyword, f.Name)
	p.description(1, f.Description)

	for _, child := range f.Children {
		p.blank()
		switch {
		case child.Background != nil:
			if err := p.background(1, child.Background); err != nil {
				return err
			}
		case child.Scenario != nil:
			if err := p.scenario(1, child.Scenario); err != nil {
				return err
			}
		case child.Rule != nil:
			if err := p.rule(child.Rule); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *printer) rule(r *ast.Rule) error {
	p.tags(1, r.Tags)
	p.header(1, r.Keyword, r.Name)
	p.description(2, r.Description)

	for _, child := range r.Children {
		p.blank()
		switch {
		case child.Background != nil:
			if err := p.background(2, child.Background); err != nil {
				return err
			}
		case child.Scenario != nil:
			if err := p.scenario(2, child.Scenario); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *printer) background(level int, bg *ast.Background) error {
	p.header(level, bg.Keyword, bg.Name)
	p.description(level+1, bg.Description)
	return p.steps(level+1, bg.Steps)
}

func (p *printer) scenario(level int, sc *ast.Scenario) error {
	p.tags(level, sc.Tags)
	p.header(level, sc.Keyword, sc.Name)
	p.description(level+1, sc.Description)
	if err := p.steps(level+1, sc.Steps); err != nil {
		return err
	}
	for i := range sc.Examples {
		p.blank()
		if err := p.examples(level+1, &sc.Examples[i]); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) examples(level int, ex *ast.Examples) error {
	p.tags(level, ex.Tags)
	p.header(level, ex.Keyword, ex.Name)
	p.description(level+1, ex.Description)

	if ex.TableHeader == nil {
		if len(ex.TableBody) > 0 {
			return errors.Errorf("examples block at line %d has body rows but no header", ex.Location.Line)
		}
		return nil
	}
	rows := append([]ast.TableRow{*ex.TableHeader}, ex.TableBody...)
	return p.table(level+1, rows)
}

func (p *printer) steps(level int, steps []ast.Step) error {
	for i := range steps {
		step := &steps[i]
		p.line(level, step.Keyword+step.Text)
		if step.Argument == nil {
			continue
		}
		switch {
		case step.Argument.DataTable != nil:
			if err := p.table(level+1, step.Argument.DataTable.Rows); err != nil {
				return err
			}
		case step.Argument.DocString != nil:
			p.docString(level+1, step.Argument.DocString)
		}
	}
	return nil
}

func (p *printer) table(level int, rows []ast.TableRow) error {
	if len(rows) == 0 {
		return nil
	}
	width := len(rows[0].Cells)
	escaped := make([][]string, len(rows))
	widths := make([]int, width)
	for i, row := range rows {
		if len(row.Cells) != width {
			return errors.Errorf("ragged table: row at line %d has %d cells, expected %d",
				row.Location.Line, len(row.Cells), width)
		}
		escaped[i] = make([]string, width)
		for j, cell := range row.Cells {
			v := escapeCell(cell.Value)
			escaped[i][j] = v
			if dw := displayWidth(v); dw > widths[j] {
				widths[j] = dw
			}
		}
	}
	for _, cells := range escaped {
		var sb strings.Builder
		sb.WriteString("|")
		for j, v := range cells {
			sb.WriteString(" ")
			sb.WriteString(v)
			sb.WriteString(strings.Repeat(" ", widths[j]-displayWidth(v)))
			sb.WriteString(" |")
		}
		p.line(level, sb.String())
	}
	return nil
}

func (p *printer) docString(level int, ds *ast.DocString) {
	delim := ds.Delimiter
	if delim == "" {
		delim = `"""`
		if strings.Contains(ds.Content, delim) {
			delim = "```"
		}
	}
	p.line(level, delim+ds.MediaType)
	if ds.Content != "" {
		for _, line := range strings.Split(ds.Content, "\n") {
			// A literal fence inside the content is escaped so the
			// tokenizer will not close the doc string early.
			line = strings.ReplaceAll(line, delim, `\`+delim)
			if line == "" {
				p.blank()
				continue
			}
			p.line(level, line)
		}
	}
	p.line(level, delim)
}

func (p *printer) header(level int, keyword, name string) {
	if name != "" {
		p.line(level, keyword+": "+name)
		return
	}
	p.line(level, keyword+":")
}

func (p *printer) description(level int, desc string) {
	if desc == "" {
		return
	}
	for _, line := range strings.Split(desc, "\n") {
		if line == "" {
			p.blank()
			continue
		}
		p.line(level, line)
	}
}

func (p *printer) tags(level int, tags []ast.Tag) {
	if len(tags) == 0 {
		return
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	p.line(level, strings.Join(names, " "))
}

func (p *printer) line(level int, text string) {
	p.sb.WriteString(strings.Repeat(p.indentUnit, level))
	p.sb.WriteString(text)
	p.sb.WriteString("\n")
}

func (p *printer) blank() {
	p.sb.WriteString("\n")
}

func escapeCell(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, "\n", `\n`)
	v = strings.ReplaceAll(v, "|", `\|`)
	return v
}

// displayWidth measures a cell in grapheme clusters so multi-rune characters
// align the same way they render.
func displayWidth(s string) int {
	n, err := textseg.TokenCount([]byte(s), textseg.ScanGraphemeClusters)
	if err != nil {
		return len([]rune(s))
	}
	return n
}
