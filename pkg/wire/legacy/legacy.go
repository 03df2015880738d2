// Package legacy encodes documents in the engine's historical untyped JSON
// shape: variant positions render as two-element [tag, payload] arrays and
// records as keyword-tagged objects.
//
// This shape is a compatibility artifact of an earlier interface version.
// It is encode-only and layered entirely outside the document tree; new
// consumers should use the typed form in the parent package.
package legacy

import (
	"encoding/json"

	"gitlab.com/tozd/go/errors"

	"github.com/moonrockz/gherkin/pkg/ast"
	"github.com/moonrockz/gherkin/pkg/location"
)

// Encode renders doc in the legacy wire shape.
func Encode(doc *ast.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("cannot encode a nil document")
	}
	out := map[string]any{
		"comments": encodeComments(doc.Comments),
	}
	if doc.URI != "" {
		out["uri"] = doc.URI
	}
	if doc.Feature != nil {
		out["feature"] = encodeFeature(doc.Feature)
	}
	return json.Marshal(out)
}

func encodeFeature(f *ast.Feature) map[string]any {
	children := make([]any, 0, len(f.Children))
	for _, child := range f.Children {
		switch {
		case child.Background != nil:
			children = append(children, variant("background", encodeBackground(child.Background)))
		case child.Scenario != nil:
			children = append(children, variant("scenario", encodeScenario(child.Scenario)))
		case child.Rule != nil:
			children = append(children, variant("rule", encodeRule(child.Rule)))
		}
	}
	return map[string]any{
		"location":    encodeLocation(f.Location),
		"tags":        encodeTags(f.Tags),
		"language":    f.Language,
		"keyword":     f.Keyword,
		"name":        f.Name,
		"description": f.Description,
		"children":    children,
	}
}

func encodeRule(r *ast.Rule) map[string]any {
	children := make([]any, 0, len(r.Children))
	for _, child := range r.Children {
		switch {
		case child.Background != nil:
			children = append(children, variant("background", encodeBackground(child.Background)))
		case child.Scenario != nil:
			children = append(children, variant("scenario", encodeScenario(child.Scenario)))
		}
	}
	return map[string]any{
		"location":    encodeLocation(r.Location),
		"tags":        encodeTags(r.Tags),
		"keyword":     r.Keyword,
		"name":        r.Name,
		"description": r.Description,
		"id":          r.ID,
		"children":    children,
	}
}

func encodeBackground(bg *ast.Background) map[string]any {
	return map[string]any{
		"location":    encodeLocation(bg.Location),
		"keyword":     bg.Keyword,
		"name":        bg.Name,
		"description": bg.Description,
		"id":          bg.ID,
		"steps":       encodeSteps(bg.Steps),
	}
}

func encodeScenario(sc *ast.Scenario) map[string]any {
	examples := make([]any, 0, len(sc.Examples))
	for i := range sc.Examples {
		examples = append(examples, encodeExamples(&sc.Examples[i]))
	}
	return map[string]any{
		"location":    encodeLocation(sc.Location),
		"tags":        encodeTags(sc.Tags),
		"kind":        string(sc.Kind),
		"keyword":     sc.Keyword,
		"name":        sc.Name,
		"description": sc.Description,
		"id":          sc.ID,
		"steps":       encodeSteps(sc.Steps),
		"examples":    examples,
	}
}

func encodeExamples(ex *ast.Examples) map[string]any {
	out := map[string]any{
		"location":    encodeLocation(ex.Location),
		"tags":        encodeTags(ex.Tags),
		"keyword":     ex.Keyword,
		"name":        ex.Name,
		"description": ex.Description,
		"id":          ex.ID,
		"tableBody":   encodeRows(ex.TableBody),
	}
	if ex.TableHeader != nil {
		out["tableHeader"] = encodeRow(*ex.TableHeader)
	}
	return out
}

func encodeSteps(steps []ast.Step) []any {
	out := make([]any, 0, len(steps))
	for _, s := range steps {
		step := map[string]any{
			"location":    encodeLocation(s.Location),
			"keyword":     s.Keyword,
			"keywordType": string(s.KeywordType),
			"text":        s.Text,
			"id":          s.ID,
		}
		if s.Argument != nil {
			switch {
			case s.Argument.DataTable != nil:
				step["argument"] = variant("data-table", map[string]any{
					"location": encodeLocation(s.Argument.DataTable.Location),
					"rows":     encodeRows(s.Argument.DataTable.Rows),
				})
			case s.Argument.DocString != nil:
				ds := s.Argument.DocString
				step["argument"] = variant("doc-string", map[string]any{
					"location":  encodeLocation(ds.Location),
					"mediaType": ds.MediaType,
					"content":   ds.Content,
					"delimiter": ds.Delimiter,
				})
			}
		}
		out = append(out, step)
	}
	return out
}

func encodeRows(rows []ast.TableRow) []any {
	out := make([]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, encodeRow(r))
	}
	return out
}

func encodeRow(r ast.TableRow) map[string]any {
	cells := make([]any, 0, len(r.Cells))
	for _, c := range r.Cells {
		cells = append(cells, map[string]any{
			"location": encodeLocation(c.Location),
			"value":    c.Value,
		})
	}
	return map[string]any{
		"location": encodeLocation(r.Location),
		"id":       r.ID,
		"cells":    cells,
	}
}

func encodeTags(tags []ast.Tag) []any {
	out := make([]any, 0, len(tags))
	for _, t := range tags {
		out = append(out, map[string]any{
			"location": encodeLocation(t.Location),
			"name":     t.Name,
			"id":       t.ID,
		})
	}
	return out
}

func encodeComments(comments []ast.Comment) []any {
	out := make([]any, 0, len(comments))
	for _, c := range comments {
		out = append(out, map[string]any{
			"location": encodeLocation(c.Location),
			"text":     c.Text,
		})
	}
	return out
}

func encodeLocation(l location.Location) map[string]any {
	out := map[string]any{"line": l.Line}
	if l.Column != nil {
		out["column"] = *l.Column
	}
	return out
}

// variant renders an enum-with-payload as the legacy two-element array.
func variant(tag string, payload any) []any {
	return []any{tag, payload}
}
