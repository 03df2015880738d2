package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moonrockz/gherkin/pkg/ast"
	"github.com/moonrockz/gherkin/pkg/parser"
	"github.com/moonrockz/gherkin/pkg/tokenizer"
)

const fullSource = "# leading\n" +
	"@smoke\n" +
	"Feature: Login\n" +
	"  Checks the door.\n" +
	"\n" +
	"  Background:\n" +
	"    Given a clean slate\n" +
	"\n" +
	"  Scenario: OK\n" +
	"    Given users\n" +
	"      | name | role  |\n" +
	"      | bob  | admin |\n" +
	"    When they log in\n" +
	"      \"\"\"json\n" +
	"      {\"a\": 1}\n" +
	"      \"\"\"\n" +
	"\n" +
	"  Scenario Outline: eat\n" +
	"    Given <n> things\n" +
	"    Examples: sizes\n" +
	"      | n  |\n" +
	"      | 12 |\n" +
	"\n" +
	"  Rule: admins\n" +
	"    Scenario: inside\n" +
	"      Then allowed\n"

func parseFull(t *testing.T) *ast.Document {
	t.Helper()
	doc, errs := parser.New().Parse("login.feature", fullSource)
	require.Empty(t, errs)
	return doc
}

func TestMarshalNilDocument(t *testing.T) {
	_, err := Marshal(nil)
	require.Error(t, err)
}

func TestMarshalShape(t *testing.T) {
	data, err := Marshal(parseFull(t))
	require.NoError(t, err)

	var top map[string]any
	require.NoError(t, json.Unmarshal(data, &top))
	require.Equal(t, "GherkinDocument", top["type"])
	require.Equal(t, "login.feature", top["uri"])

	feature := top["feature"].(map[string]any)
	require.Equal(t, "Feature", feature["type"])
	require.Equal(t, "en", feature["language"])
	require.Equal(t, "Login", feature["name"])
	require.Equal(t, "Checks the door.", feature["description"])

	children := feature["children"].([]any)
	require.Len(t, children, 4)
	require.Equal(t, "Background", children[0].(map[string]any)["type"])
	require.Equal(t, "Scenario", children[1].(map[string]any)["type"])
	require.Equal(t, "Scenario", children[2].(map[string]any)["type"])
	require.Equal(t, "Rule", children[3].(map[string]any)["type"])

	outline := children[2].(map[string]any)
	require.Equal(t, "scenario-outline", outline["kind"])
	examples := outline["examples"].([]any)[0].(map[string]any)
	require.Equal(t, "Examples", examples["type"])
	require.NotNil(t, examples["tableHeader"])

	steps := children[1].(map[string]any)["steps"].([]any)
	table := steps[0].(map[string]any)["argument"].(map[string]any)
	require.Equal(t, "DataTable", table["type"])
	doc := steps[1].(map[string]any)["argument"].(map[string]any)
	require.Equal(t, "DocString", doc["type"])
	require.Equal(t, "json", doc["mediaType"])

	comments := top["comments"].([]any)
	require.Len(t, comments, 1)
	require.Equal(t, "Comment", comments[0].(map[string]any)["type"])
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	original := parseFull(t)

	data, err := Marshal(original)
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)

	// The wire form is lossless: ids and locations survive too.
	require.Equal(t, original, decoded)
	require.True(t, ast.Equal(original, decoded))
}

func TestUnmarshalEmptyDocument(t *testing.T) {
	doc, err := Unmarshal([]byte(`{"type": "GherkinDocument"}`))
	require.NoError(t, err)
	require.Nil(t, doc.Feature)
}

func TestUnmarshalDefaults(t *testing.T) {
	data := []byte(`{
		"type": "GherkinDocument",
		"feature": {
			"type": "Feature",
			"location": {"line": 1, "column": 1},
			"keyword": "Feature",
			"name": "F",
			"children": [
				{"type": "Scenario", "location": {"line": 2, "column": 3}, "keyword": "Scenario", "name": "S", "id": "0"}
			]
		}
	}`)

	doc, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, "en", doc.Feature.Language)
	require.Equal(t, ast.KindScenario, doc.Feature.Children[0].Scenario.Kind)
}

func TestUnmarshalRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not_json", "{"},
		{"wrong_top_type", `{"type": "Pickle"}`},
		{
			"unknown_feature_child",
			`{"type": "GherkinDocument", "feature": {"type": "Feature", "location": {"line": 1},
				"keyword": "Feature", "name": "F", "children": [{"type": "Banana"}]}}`,
		},
		{
			"unknown_step_argument",
			`{"type": "GherkinDocument", "feature": {"type": "Feature", "location": {"line": 1},
				"keyword": "Feature", "name": "F", "children": [
					{"type": "Scenario", "location": {"line": 2}, "keyword": "Scenario", "name": "S", "id": "0",
					 "steps": [{"type": "Step", "location": {"line": 3}, "keyword": "Given ", "keywordType": "context",
						"text": "x", "id": "1", "argument": {"type": "Banana"}}]}]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data))
			require.Error(t, err)
		})
	}
}

func TestMarshalTokens(t *testing.T) {
	tokens, errs := tokenizer.Tokenize("@smoke\nFeature: F\n  Scenario: S\n    Given data\n      | a | b |\n")
	require.Empty(t, errs)

	data, err := MarshalTokens(tokens)
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 5)
	require.Equal(t, "tag-line", out[0]["type"])
	require.Equal(t, []any{"@smoke"}, out[0]["tags"])
	require.Equal(t, "feature-line", out[1]["type"])
	require.Equal(t, "scenario-line", out[2]["type"])
	require.Equal(t, "step-line", out[3]["type"])
	require.Equal(t, "context", out[3]["keywordType"])
	require.Equal(t, "table-row", out[4]["type"])
	require.Equal(t, []any{"a", "b"}, out[4]["cells"])
}
