package wire

import (
	"encoding/json"

	"gitlab.com/tozd/go/errors"

	"github.com/moonrockz/gherkin/pkg/ast"
	"github.com/moonrockz/gherkin/pkg/dialect"
)

// Unmarshal decodes the typed JSON form back into a document.
func Unmarshal(data []byte) (*ast.Document, error) {
	var in jsonDocument
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, errors.Errorf("decoding document: %w", err)
	}
	if in.Type != "GherkinDocument" {
		return nil, errors.Errorf("unexpected document type %q", in.Type)
	}
	doc := &ast.Document{URI: in.URI}
	if in.Feature != nil {
		f, err := unmarshalFeature(in.Feature)
		if err != nil {
			return nil, err
		}
		doc.Feature = f
	}
	for _, c := range in.Comments {
		doc.Comments = append(doc.Comments, ast.Comment{
			Location: c.Location.toAST(), Text: c.Text,
		})
	}
	return doc, nil
}

func unmarshalFeature(in *jsonFeature) (*ast.Feature, error) {
	f := &ast.Feature{
		Location:    in.Location.toAST(),
		Tags:        unmarshalTags(in.Tags),
		Language:    in.Language,
		Keyword:     in.Keyword,
		Name:        in.Name,
		Description: in.Description,
	}
	if f.Language == "" {
		f.Language = dialect.Default
	}
	for _, raw := range in.Children {
		kind, err := peekType(raw)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "Background":
			bg, err := unmarshalBackground(raw)
			if err != nil {
				return nil, err
			}
			f.Children = append(f.Children, ast.FeatureChild{Background: bg})
		case "Scenario":
			sc, err := unmarshalScenario(raw)
			if err != nil {
				return nil, err
			}
			f.Children = append(f.Children, ast.FeatureChild{Scenario: sc})
		case "Rule":
			r, err := unmarshalRule(raw)
			if err != nil {
				return nil, err
			}
			f.Children = append(f.Children, ast.FeatureChild{Rule: r})
		default:
			return nil, errors.Errorf("unexpected feature child type %q", kind)
		}
	}
	return f, nil
}

func unmarshalRule(raw json.RawMessage) (*ast.Rule, error) {
	var in jsonRule
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, errors.Errorf("decoding rule: %w", err)
	}
	r := &ast.Rule{
		Location:    in.Location.toAST(),
		Tags:        unmarshalTags(in.Tags),
		Keyword:     in.Keyword,
		Name:        in.Name,
		Description: in.Description,
		ID:          in.ID,
	}
	for _, child := range in.Children {
		kind, err := peekType(child)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "Background":
			bg, err := unmarshalBackground(child)
			if err != nil {
				return nil, err
			}
			r.Children = append(r.Children, ast.RuleChild{Background: bg})
		case "Scenario":
			sc, err := unmarshalScenario(child)
			if err != nil {
				return nil, err
			}
			r.Children = append(r.Children, ast.RuleChild{Scenario: sc})
		default:
			return nil, errors.Errorf("unexpected rule child type %q", kind)
		}
	}
	return r, nil
}

func unmarshalBackground(raw json.RawMessage) (*ast.Background, error) {
	var in jsonBackground
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, errors.Errorf("decoding background: %w", err)
	}
	bg := &ast.Background{
		Location:    in.Location.toAST(),
		Keyword:     in.Keyword,
		Name:        in.Name,
		Description: in.Description,
		ID:          in.ID,
	}
	steps, err := unmarshalSteps(in.Steps)
	if err != nil {
		return nil, err
	}
	bg.Steps = steps
	return bg, nil
}

func unmarshalScenario(raw json.RawMessage) (*ast.Scenario, error) {
	var in jsonScenario
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, errors.Errorf("decoding scenario: %w", err)
	}
	sc := &ast.Scenario{
		Location:    in.Location.toAST(),
		Tags:        unmarshalTags(in.Tags),
		Kind:        ast.ScenarioKind(in.Kind),
		Keyword:     in.Keyword,
		Name:        in.Name,
		Description: in.Description,
		ID:          in.ID,
	}
	if sc.Kind == "" {
		sc.Kind = ast.KindScenario
	}
	steps, err := unmarshalSteps(in.Steps)
	if err != nil {
		return nil, err
	}
	sc.Steps = steps
	for _, ex := range in.Examples {
		aex := ast.Examples{
			Location:    ex.Location.toAST(),
			Tags:        unmarshalTags(ex.Tags),
			Keyword:     ex.Keyword,
			Name:        ex.Name,
			Description: ex.Description,
			ID:          ex.ID,
			TableBody:   unmarshalRows(ex.TableBody),
		}
		if ex.TableHeader != nil {
			header := unmarshalRow(*ex.TableHeader)
			aex.TableHeader = &header
		}
		sc.Examples = append(sc.Examples, aex)
	}
	return sc, nil
}

func unmarshalSteps(in []jsonStep) ([]ast.Step, error) {
	var out []ast.Step
	for _, s := range in {
		step := ast.Step{
			Location:    s.Location.toAST(),
			Keyword:     s.Keyword,
			KeywordType: dialect.KeywordType(s.KeywordType),
			Text:        s.Text,
			ID:          s.ID,
		}
		if len(s.Argument) > 0 {
			kind, err := peekType(s.Argument)
			if err != nil {
				return nil, err
			}
			switch kind {
			case "DataTable":
				var dt jsonDataTable
				if err := json.Unmarshal(s.Argument, &dt); err != nil {
					return nil, errors.Errorf("decoding data table: %w", err)
				}
				step.Argument = &ast.StepArgument{DataTable: &ast.DataTable{
					Location: dt.Location.toAST(),
					Rows:     unmarshalRows(dt.Rows),
				}}
			case "DocString":
				var ds jsonDocString
				if err := json.Unmarshal(s.Argument, &ds); err != nil {
					return nil, errors.Errorf("decoding doc string: %w", err)
				}
				step.Argument = &ast.StepArgument{DocString: &ast.DocString{
					Location:  ds.Location.toAST(),
					MediaType: ds.MediaType,
					Content:   ds.Content,
					Delimiter: ds.Delimiter,
				}}
			default:
				return nil, errors.Errorf("unexpected step argument type %q", kind)
			}
		}
		out = append(out, step)
	}
	return out, nil
}

func unmarshalRows(in []jsonTableRow) []ast.TableRow {
	var out []ast.TableRow
	for _, r := range in {
		out = append(out, unmarshalRow(r))
	}
	return out
}

func unmarshalRow(in jsonTableRow) ast.TableRow {
	row := ast.TableRow{
		Location: in.Location.toAST(),
		ID:       in.ID,
		Cells:    make([]ast.TableCell, len(in.Cells)),
	}
	for i, c := range in.Cells {
		row.Cells[i] = ast.TableCell{Location: c.Location.toAST(), Value: c.Value}
	}
	return row
}

func unmarshalTags(in []jsonTag) []ast.Tag {
	var out []ast.Tag
	for _, t := range in {
		out = append(out, ast.Tag{Location: t.Location.toAST(), Name: t.Name, ID: t.ID})
	}
	return out
}

func peekType(raw json.RawMessage) (string, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", errors.Errorf("decoding node envelope: %w", err)
	}
	return envelope.Type, nil
}
