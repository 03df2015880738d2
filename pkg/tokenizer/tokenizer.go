// Package tokenizer turns raw Gherkin source into a stream of typed tokens.
//
// The scan is a single left-to-right pass over lines. Lines the tokenizer
// cannot classify are not errors here; they become Other tokens and are
// judged by the parser, which knows the grammar context. The tokenizer itself
// only fails on unterminated or malformed lexical constructs (doc strings and
// table rows) and keeps scanning after each failure so one pass surfaces
// every lexical error in the input.
package tokenizer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/moonrockz/gherkin/pkg/diagnostic"
	"github.com/moonrockz/gherkin/pkg/dialect"
	"github.com/moonrockz/gherkin/pkg/location"
	"github.com/moonrockz/gherkin/pkg/token"
)

const (
	docStringQuotes    = `"""`
	docStringBackticks = "```"
)

var languageDirective = regexp.MustCompile(`^#\s*language\s*:\s*([^\s]+)\s*$`)

// Tokenize scans source and returns its token stream in line order. Blank
// lines produce no token. When the returned error list is non-empty the
// token stream must be discarded; both are never meaningful together.
func Tokenize(source string) ([]token.Token, diagnostic.ParseErrorList) {
	s := &scanner{dialect: dialect.For(dialect.Default)}
	s.run(source)
	if s.errs.HasErrors() {
		return nil, s.errs.Errors()
	}
	return s.tokens, nil
}

type scanner struct {
	dialect *dialect.Dialect
	tokens  []token.Token
	errs    diagnostic.Collector

	// seenContent blocks late `# language:` directives: only the first
	// non-blank line of the document may switch the dialect.
	seenContent bool

	// doc-string mode
	inDocString  bool
	docDelimiter string
	docOpenLine  int
	docIndent    int

	// width of the first row in the current contiguous table run, for
	// ragged-row detection; -1 when no run is open
	tableRunWidth int
}

func (s *scanner) run(source string) {
	s.tableRunWidth = -1
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		s.scanLine(i+1, line)
	}
	if s.inDocString {
		s.errs.AddLinef(s.docOpenLine, "unterminated doc string, opened at line %d", s.docOpenLine)
	}
}

func (s *scanner) scanLine(lineNo int, line string) {
	trimmed := strings.TrimLeft(line, " \t")
	indent := utf8.RuneCountInString(line) - utf8.RuneCountInString(trimmed)
	col := indent + 1

	if s.inDocString {
		s.scanDocStringLine(lineNo, line, trimmed, col)
		return
	}

	if trimmed == "" {
		// Empty lines are structural filler; the parser never sees them,
		// so a blank line inside a table run must not end the run either.
		return
	}

	if strings.HasPrefix(trimmed, "#") {
		// Comment lines may appear inside a table without ending its run.
		if m := languageDirective.FindStringSubmatch(trimmed); m != nil && !s.seenContent {
			s.seenContent = true
			s.dialect = dialect.For(m[1])
			s.emit(token.Token{
				Type:     token.TypeLanguage,
				Location: location.New(lineNo, col),
				Text:     trimmed,
				Language: m[1],
			})
			return
		}
		s.seenContent = true
		s.emit(token.Token{
			Type:     token.TypeCommentLine,
			Location: location.New(lineNo, col),
			Text:     trimmed,
		})
		return
	}

	s.seenContent = true

	if delim, ok := docStringDelimiter(trimmed); ok {
		s.closeTableRun()
		s.inDocString = true
		s.docDelimiter = delim
		s.docOpenLine = lineNo
		s.docIndent = indent
		s.emit(token.Token{
			Type:      token.TypeDocStringSeparator,
			Location:  location.New(lineNo, col),
			Delimiter: delim,
			MediaType: strings.TrimSpace(trimmed[len(delim):]),
		})
		return
	}

	if strings.HasPrefix(trimmed, "|") {
		s.scanTableRow(lineNo, line, trimmed, indent)
		return
	}

	s.closeTableRun()

	if strings.HasPrefix(trimmed, "@") {
		if tags, ok := scanTags(trimmed, indent); ok {
			s.emit(token.Token{
				Type:     token.TypeTagLine,
				Location: location.New(lineNo, col),
				Tags:     tags,
			})
			return
		}
		// A malformed tag line falls through to Other; the parser decides
		// whether it is description text or an error in context.
	}

	for _, hk := range s.dialect.HeaderKeywords() {
		if rest, ok := strings.CutPrefix(trimmed, hk.Keyword+":"); ok {
			s.emit(token.Token{
				Type:     headerTokenType(hk.Construct),
				Location: location.New(lineNo, col),
				Keyword:  hk.Keyword,
				Name:     strings.TrimSpace(rest),
			})
			return
		}
	}

	for _, sk := range s.dialect.StepKeywords() {
		if rest, ok := strings.CutPrefix(trimmed, sk.Keyword); ok {
			s.emit(token.Token{
				Type:        token.TypeStepLine,
				Location:    location.New(lineNo, col),
				Keyword:     sk.Keyword,
				KeywordType: sk.Type,
				Text:        strings.TrimSpace(rest),
			})
			return
		}
	}

	s.emit(token.Token{
		Type:     token.TypeOther,
		Location: location.New(lineNo, col),
		Text:     trimmed,
	})
}

func (s *scanner) scanDocStringLine(lineNo int, line, trimmed string, col int) {
	if trimmed == s.docDelimiter {
		s.inDocString = false
		s.emit(token.Token{
			Type:      token.TypeDocStringSeparator,
			Location:  location.New(lineNo, col),
			Delimiter: s.docDelimiter,
		})
		return
	}
	content := stripIndent(line, s.docIndent)
	// An escaped fence inside the doc string stands for the literal fence.
	content = strings.ReplaceAll(content, `\`+s.docDelimiter, s.docDelimiter)
	s.emit(token.Token{
		Type:     token.TypeOther,
		Location: location.NewLine(lineNo),
		Text:     content,
	})
}

// scanTableRow splits a |-led line into cells, handling the \|, \\ and \n
// escapes. Malformed rows (dangling escape, unknown escape, missing closing
// pipe) and rows whose width differs from the first row of the contiguous
// run each produce one error and no token.
func (s *scanner) scanTableRow(lineNo int, line, trimmed string, indent int) {
	runes := []rune(strings.TrimRight(trimmed, " \t"))
	var cells []token.Cell
	var cell strings.Builder
	cellStart := -1
	closed := false
	malformed := ""

	// runes[0] is the opening pipe
	pos := indent + 1
	for i := 1; i < len(runes); i++ {
		pos++
		r := runes[i]
		switch r {
		case '\\':
			if i+1 >= len(runes) {
				malformed = "table row ends with a dangling escape"
				break
			}
			i++
			pos++
			switch runes[i] {
			case '|':
				cell.WriteRune('|')
			case '\\':
				cell.WriteRune('\\')
			case 'n':
				cell.WriteRune('\n')
			default:
				malformed = "invalid escape sequence in table cell"
			}
			if cellStart < 0 {
				cellStart = pos - 1
			}
		case '|':
			value, start := finishCell(cell.String(), cellStart, pos)
			cells = append(cells, token.Cell{Value: value, Column: start})
			cell.Reset()
			cellStart = -1
			closed = i == len(runes)-1
		default:
			cell.WriteRune(r)
			if cellStart < 0 && r != ' ' && r != '\t' {
				cellStart = pos
			}
		}
		if malformed != "" {
			break
		}
	}

	if malformed == "" && !closed {
		malformed = "table row is not closed by a pipe"
	}
	if malformed != "" {
		s.errs.AddLinef(lineNo, "%s", malformed)
		return
	}

	if s.tableRunWidth < 0 {
		s.tableRunWidth = len(cells)
	} else if len(cells) != s.tableRunWidth {
		s.errs.AddLinef(lineNo, "inconsistent cell count within the table")
		return
	}

	s.emit(token.Token{
		Type:     token.TypeTableRow,
		Location: location.New(lineNo, indent+1),
		Cells:    cells,
	})
}

func (s *scanner) closeTableRun() {
	s.tableRunWidth = -1
}

func (s *scanner) emit(t token.Token) {
	if t.Type != token.TypeTableRow && t.Type != token.TypeCommentLine {
		s.tableRunWidth = -1
	}
	s.tokens = append(s.tokens, t)
}

func finishCell(raw string, start, endPos int) (string, int) {
	value := strings.TrimSpace(raw)
	if start < 0 {
		// whitespace-only cell: anchor it at the closing pipe
		start = endPos
	}
	return value, start
}

func docStringDelimiter(trimmed string) (string, bool) {
	if strings.HasPrefix(trimmed, docStringQuotes) {
		return docStringQuotes, true
	}
	if strings.HasPrefix(trimmed, docStringBackticks) {
		return docStringBackticks, true
	}
	return "", false
}

// scanTags parses an @-led line into tags. A trailing comment is allowed;
// any other bare word disqualifies the line so the parser can judge it.
func scanTags(trimmed string, indent int) ([]token.Tag, bool) {
	var tags []token.Tag
	runes := []rune(trimmed)
	col := indent + 1
	i := 0
	for i < len(runes) {
		for i < len(runes) && (runes[i] == ' ' || runes[i] == '\t') {
			i++
			col++
		}
		if i >= len(runes) {
			break
		}
		start, startCol := i, col
		for i < len(runes) && runes[i] != ' ' && runes[i] != '\t' {
			i++
			col++
		}
		word := string(runes[start:i])
		if strings.HasPrefix(word, "#") {
			break
		}
		if !strings.HasPrefix(word, "@") || len(word) == 1 {
			return nil, false
		}
		tags = append(tags, token.Tag{Name: word, Column: startCol})
	}
	return tags, len(tags) > 0
}

func stripIndent(line string, indent int) string {
	for i := 0; i < indent && line != ""; i++ {
		if line[0] != ' ' && line[0] != '\t' {
			break
		}
		line = line[1:]
	}
	return line
}

func headerTokenType(c dialect.Construct) token.Type {
	switch c {
	case dialect.ConstructFeature:
		return token.TypeFeatureLine
	case dialect.ConstructRule:
		return token.TypeRuleLine
	case dialect.ConstructBackground:
		return token.TypeBackgroundLine
	case dialect.ConstructScenario:
		return token.TypeScenarioLine
	case dialect.ConstructScenarioOutline:
		return token.TypeScenarioOutlineLine
	case dialect.ConstructExamples:
		return token.TypeExamplesLine
	}
	return token.TypeOther
}
