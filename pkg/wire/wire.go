// Package wire is the typed JSON encoding of documents and token streams.
//
// Every node is an object carrying a "type" discriminator next to its
// kind-specific fields; variant positions (feature children, step arguments)
// hold such objects directly. This is the current interchange shape of the
// engine; the historical untyped shape lives in the legacy subpackage.
package wire

import (
	"encoding/json"

	"gitlab.com/tozd/go/errors"

	"github.com/moonrockz/gherkin/pkg/ast"
	"github.com/moonrockz/gherkin/pkg/location"
)

type jsonLocation struct {
	Line   int  `json:"line"`
	Column *int `json:"column,omitempty"`
}

func toJSONLocation(l location.Location) jsonLocation {
	return jsonLocation{Line: l.Line, Column: l.Column}
}

func (l jsonLocation) toAST() location.Location {
	return location.Location{Line: l.Line, Column: l.Column}
}

type jsonDocument struct {
	Type     string        `json:"type"`
	URI      string        `json:"uri,omitempty"`
	Feature  *jsonFeature  `json:"feature,omitempty"`
	Comments []jsonComment `json:"comments,omitempty"`
}

type jsonFeature struct {
	Type        string            `json:"type"`
	Location    jsonLocation      `json:"location"`
	Tags        []jsonTag         `json:"tags,omitempty"`
	Language    string            `json:"language"`
	Keyword     string            `json:"keyword"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Children    []json.RawMessage `json:"children,omitempty"`
}

type jsonRule struct {
	Type        string            `json:"type"`
	Location    jsonLocation      `json:"location"`
	Tags        []jsonTag         `json:"tags,omitempty"`
	Keyword     string            `json:"keyword"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	ID          string            `json:"id"`
	Children    []json.RawMessage `json:"children,omitempty"`
}

type jsonBackground struct {
	Type        string       `json:"type"`
	Location    jsonLocation `json:"location"`
	Keyword     string       `json:"keyword"`
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	ID          string       `json:"id"`
	Steps       []jsonStep   `json:"steps,omitempty"`
}

type jsonScenario struct {
	Type        string         `json:"type"`
	Location    jsonLocation   `json:"location"`
	Tags        []jsonTag      `json:"tags,omitempty"`
	Kind        string         `json:"kind"`
	Keyword     string         `json:"keyword"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	ID          string         `json:"id"`
	Steps       []jsonStep     `json:"steps,omitempty"`
	Examples    []jsonExamples `json:"examples,omitempty"`
}

type jsonStep struct {
	Type        string          `json:"type"`
	Location    jsonLocation    `json:"location"`
	Keyword     string          `json:"keyword"`
	KeywordType string          `json:"keywordType"`
	Text        string          `json:"text"`
	ID          string          `json:"id"`
	Argument    json.RawMessage `json:"argument,omitempty"`
}

type jsonDataTable struct {
	Type     string         `json:"type"`
	Location jsonLocation   `json:"location"`
	Rows     []jsonTableRow `json:"rows"`
}

type jsonDocString struct {
	Type      string       `json:"type"`
	Location  jsonLocation `json:"location"`
	MediaType string       `json:"mediaType,omitempty"`
	Content   string       `json:"content"`
	Delimiter string       `json:"delimiter,omitempty"`
}

type jsonExamples struct {
	Type        string         `json:"type"`
	Location    jsonLocation   `json:"location"`
	Tags        []jsonTag      `json:"tags,omitempty"`
	Keyword     string         `json:"keyword"`
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	ID          string         `json:"id"`
	TableHeader *jsonTableRow  `json:"tableHeader,omitempty"`
	TableBody   []jsonTableRow `json:"tableBody,omitempty"`
}

type jsonTableRow struct {
	Type     string          `json:"type"`
	Location jsonLocation    `json:"location"`
	ID       string          `json:"id"`
	Cells    []jsonTableCell `json:"cells"`
}

type jsonTableCell struct {
	Location jsonLocation `json:"location"`
	Value    string       `json:"value"`
}

type jsonTag struct {
	Type     string       `json:"type"`
	Location jsonLocation `json:"location"`
	Name     string       `json:"name"`
	ID       string       `json:"id"`
}

type jsonComment struct {
	Type     string       `json:"type"`
	Location jsonLocation `json:"location"`
	Text     string       `json:"text"`
}

// Marshal encodes a document into the typed JSON form.
func Marshal(doc *ast.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("cannot marshal a nil document")
	}
	out := jsonDocument{Type: "GherkinDocument", URI: doc.URI}
	if doc.Feature != nil {
		f, err := marshalFeature(doc.Feature)
		if err != nil {
			return nil, err
		}
		out.Feature = f
	}
	for _, c := range doc.Comments {
		out.Comments = append(out.Comments, jsonComment{
			Type: "Comment", Location: toJSONLocation(c.Location), Text: c.Text,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

func marshalFeature(f *ast.Feature) (*jsonFeature, error) {
	out := &jsonFeature{
		Type:        "Feature",
		Location:    toJSONLocation(f.Location),
		Tags:        marshalTags(f.Tags),
		Language:    f.Language,
		Keyword:     f.Keyword,
		Name:        f.Name,
		Description: f.Description,
	}
	for _, child := range f.Children {
		var (
			raw []byte
			err error
		)
		switch {
		case child.Background != nil:
			raw, err = json.Marshal(marshalBackground(child.Background))
		case child.Scenario != nil:
			raw, err = json.Marshal(marshalScenario(child.Scenario))
		case child.Rule != nil:
			var r *jsonRule
			r, err = marshalRule(child.Rule)
			if err == nil {
				raw, err = json.Marshal(r)
			}
		default:
			err = errors.New("feature child has no variant set")
		}
		if err != nil {
			return nil, errors.Errorf("marshaling feature child: %w", err)
		}
		out.Children = append(out.Children, raw)
	}
	return out, nil
}

func marshalRule(r *ast.Rule) (*jsonRule, error) {
	out := &jsonRule{
		Type:        "Rule",
		Location:    toJSONLocation(r.Location),
		Tags:        marshalTags(r.Tags),
		Keyword:     r.Keyword,
		Name:        r.Name,
		Description: r.Description,
		ID:          r.ID,
	}
	for _, child := range r.Children {
		var (
			raw []byte
			err error
		)
		switch {
		case child.Background != nil:
			raw, err = json.Marshal(marshalBackground(child.Background))
		case child.Scenario != nil:
			raw, err = json.Marshal(marshalScenario(child.Scenario))
		default:
			err = errors.New("rule child has no variant set")
		}
		if err != nil {
			return nil, errors.Errorf("marshaling rule child: %w", err)
		}
		out.Children = append(out.Children, raw)
	}
	return out, nil
}

func marshalBackground(bg *ast.Background) jsonBackground {
	return jsonBackground{
		Type:        "Background",
		Location:    toJSONLocation(bg.Location),
		Keyword:     bg.Keyword,
		Name:        bg.Name,
		Description: bg.Description,
		ID:          bg.ID,
		Steps:       marshalSteps(bg.Steps),
	}
}

func marshalScenario(sc *ast.Scenario) jsonScenario {
	out := jsonScenario{
		Type:        "Scenario",
		Location:    toJSONLocation(sc.Location),
		Tags:        marshalTags(sc.Tags),
		Kind:        string(sc.Kind),
		Keyword:     sc.Keyword,
		Name:        sc.Name,
		Description: sc.Description,
		ID:          sc.ID,
		Steps:       marshalSteps(sc.Steps),
	}
	for i := range sc.Examples {
		ex := &sc.Examples[i]
		jex := jsonExamples{
			Type:        "Examples",
			Location:    toJSONLocation(ex.Location),
			Tags:        marshalTags(ex.Tags),
			Keyword:     ex.Keyword,
			Name:        ex.Name,
			Description: ex.Description,
			ID:          ex.ID,
			TableBody:   marshalRows(ex.TableBody),
		}
		if ex.TableHeader != nil {
			header := marshalRow(*ex.TableHeader)
			jex.TableHeader = &header
		}
		out.Examples = append(out.Examples, jex)
	}
	return out
}

func marshalSteps(steps []ast.Step) []jsonStep {
	var out []jsonStep
	for _, s := range steps {
		js := jsonStep{
			Type:        "Step",
			Location:    toJSONLocation(s.Location),
			Keyword:     s.Keyword,
			KeywordType: string(s.KeywordType),
			Text:        s.Text,
			ID:          s.ID,
		}
		if s.Argument != nil {
			switch {
			case s.Argument.DataTable != nil:
				dt := s.Argument.DataTable
				js.Argument, _ = json.Marshal(jsonDataTable{
					Type:     "DataTable",
					Location: toJSONLocation(dt.Location),
					Rows:     marshalRows(dt.Rows),
				})
			case s.Argument.DocString != nil:
				ds := s.Argument.DocString
				js.Argument, _ = json.Marshal(jsonDocString{
					Type:      "DocString",
					Location:  toJSONLocation(ds.Location),
					MediaType: ds.MediaType,
					Content:   ds.Content,
					Delimiter: ds.Delimiter,
				})
			}
		}
		out = append(out, js)
	}
	return out
}

func marshalRows(rows []ast.TableRow) []jsonTableRow {
	var out []jsonTableRow
	for _, r := range rows {
		out = append(out, marshalRow(r))
	}
	return out
}

func marshalRow(r ast.TableRow) jsonTableRow {
	out := jsonTableRow{
		Type:     "TableRow",
		Location: toJSONLocation(r.Location),
		ID:       r.ID,
		Cells:    make([]jsonTableCell, len(r.Cells)),
	}
	for i, c := range r.Cells {
		out.Cells[i] = jsonTableCell{Location: toJSONLocation(c.Location), Value: c.Value}
	}
	return out
}

func marshalTags(tags []ast.Tag) []jsonTag {
	var out []jsonTag
	for _, t := range tags {
		out = append(out, jsonTag{
			Type: "Tag", Location: toJSONLocation(t.Location), Name: t.Name, ID: t.ID,
		})
	}
	return out
}
