package legacy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moonrockz/gherkin/pkg/parser"
)

func TestEncodeNilDocument(t *testing.T) {
	_, err := Encode(nil)
	require.Error(t, err)
}

func TestEncodeVariantArrays(t *testing.T) {
	doc, errs := parser.New().Parse("f.feature", "Feature: F\n"+
		"  Background:\n"+
		"    Given a clean slate\n"+
		"  Scenario: S\n"+
		"    Given data\n"+
		"      | a |\n"+
		"    When text\n"+
		"      \"\"\"\n"+
		"      body\n"+
		"      \"\"\"\n"+
		"  Rule: R\n"+
		"    Scenario: inside\n"+
		"      Then allowed\n")
	require.Empty(t, errs)

	data, err := Encode(doc)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, "f.feature", out["uri"])

	feature := out["feature"].(map[string]any)
	require.Equal(t, "en", feature["language"])

	children := feature["children"].([]any)
	require.Len(t, children, 3)

	background := children[0].([]any)
	require.Len(t, background, 2)
	require.Equal(t, "background", background[0])

	scenario := children[1].([]any)
	require.Equal(t, "scenario", scenario[0])
	steps := scenario[1].(map[string]any)["steps"].([]any)
	require.Len(t, steps, 2)

	table := steps[0].(map[string]any)["argument"].([]any)
	require.Equal(t, "data-table", table[0])
	rows := table[1].(map[string]any)["rows"].([]any)
	require.Len(t, rows, 1)

	docString := steps[1].(map[string]any)["argument"].([]any)
	require.Equal(t, "doc-string", docString[0])
	require.Equal(t, "body", docString[1].(map[string]any)["content"])

	rule := children[2].([]any)
	require.Equal(t, "rule", rule[0])
	ruleChildren := rule[1].(map[string]any)["children"].([]any)
	require.Equal(t, "scenario", ruleChildren[0].([]any)[0])
}

func TestEncodeEmptyDocument(t *testing.T) {
	doc, errs := parser.Parse("")
	require.Empty(t, errs)

	data, err := Encode(doc)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	require.NotContains(t, out, "feature")
	require.NotContains(t, out, "uri")
	// comments is always present, even when empty
	require.Equal(t, []any{}, out["comments"])
}

func TestEncodeLocations(t *testing.T) {
	doc, errs := parser.Parse("Feature: F\n# tail\n")
	require.Empty(t, errs)

	data, err := Encode(doc)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	loc := out["feature"].(map[string]any)["location"].(map[string]any)
	require.Equal(t, float64(1), loc["line"])
	require.Equal(t, float64(1), loc["column"])

	comment := out["comments"].([]any)[0].(map[string]any)
	commentLoc := comment["location"].(map[string]any)
	require.Equal(t, float64(2), commentLoc["line"])
}
