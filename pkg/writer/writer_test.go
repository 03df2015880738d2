package writer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moonrockz/gherkin/pkg/ast"
	"github.com/moonrockz/gherkin/pkg/location"
	"github.com/moonrockz/gherkin/pkg/parser"
)

func parseAndWrite(t *testing.T, source string) string {
	t.Helper()
	doc, errs := parser.Parse(source)
	require.Empty(t, errs)
	out, err := Write(doc)
	require.NoError(t, err)
	return out
}

func TestWriteCanonicalDocument(t *testing.T) {
	source := "@smoke\n" +
		"Feature: Login\n" +
		"  Checks the door.\n" +
		"\n" +
		"  Background:\n" +
		"    Given a clean slate\n" +
		"\n" +
		"  @wip\n" +
		"  Scenario: OK\n" +
		"    Given a user\n" +
		"      | name | role  |\n" +
		"      | bob  | admin |\n" +
		"\n" +
		"  Scenario Outline: eat\n" +
		"    Given <n> things\n" +
		"\n" +
		"    Examples: sizes\n" +
		"      | n  |\n" +
		"      | 12 |\n"

	// Canonical source survives the round trip byte for byte.
	require.Equal(t, source, parseAndWrite(t, source))
}

func TestWriteNormalizesLayout(t *testing.T) {
	out := parseAndWrite(t, "Feature: Login\n"+
		"        Scenario: OK\n"+
		"  Given a user\n"+
		"      |name|role|\n"+
		"      |bob|admin|\n")

	require.Equal(t, "Feature: Login\n"+
		"\n"+
		"  Scenario: OK\n"+
		"    Given a user\n"+
		"      | name | role  |\n"+
		"      | bob  | admin |\n", out)
}

func TestWriteLanguageHeader(t *testing.T) {
	out := parseAndWrite(t, "# language: fr\n"+
		"Fonctionnalité: Connexion\n"+
		"  Scénario: OK\n"+
		"    Soit un utilisateur\n")

	require.Equal(t, "# language: fr\n"+
		"Fonctionnalité: Connexion\n"+
		"\n"+
		"  Scénario: OK\n"+
		"    Soit un utilisateur\n", out)
}

func TestWriteOmitsEnglishLanguageHeader(t *testing.T) {
	out := parseAndWrite(t, "# language: en\nFeature: F\n")
	require.Equal(t, "Feature: F\n", out)
}

func TestWriteComments(t *testing.T) {
	out := parseAndWrite(t, "# leading\n"+
		"Feature: F\n"+
		"  # trailing\n"+
		"  Scenario: S\n"+
		"    Given a step\n")

	require.Equal(t, "# leading\n"+
		"Feature: F\n"+
		"\n"+
		"  Scenario: S\n"+
		"    Given a step\n"+
		"# trailing\n", out)
}

func TestWriteKeepsCommentsAfterTagLine(t *testing.T) {
	// A comment spelled like a language directive sits between the tag
	// line and the header. It must stay there: moved to the first line it
	// would switch the dialect on re-read.
	source := "@t\n" +
		"# language: fr\n" +
		"Feature: F\n" +
		"\n" +
		"  Scenario: S\n" +
		"    Given a step\n"

	require.Equal(t, source, parseAndWrite(t, source))
}

func TestWriteCommentBetweenTagLines(t *testing.T) {
	out := parseAndWrite(t, "@a\n"+
		"# note\n"+
		"@b\n"+
		"Feature: F\n")

	require.Equal(t, "@a @b\n# note\nFeature: F\n", out)
}

func TestWriteDocString(t *testing.T) {
	out := parseAndWrite(t, "Feature: F\n"+
		"  Scenario: S\n"+
		"    Given a payload\n"+
		"      \"\"\"json\n"+
		"      {\"a\": 1}\n"+
		"      \"\"\"\n")

	require.Equal(t, "Feature: F\n"+
		"\n"+
		"  Scenario: S\n"+
		"    Given a payload\n"+
		"      \"\"\"json\n"+
		"      {\"a\": 1}\n"+
		"      \"\"\"\n", out)
}

func TestWriteDocStringEscapesEmbeddedFence(t *testing.T) {
	doc := &ast.Document{Feature: &ast.Feature{
		Keyword: "Feature", Name: "F", Language: "en",
		Children: []ast.FeatureChild{{Scenario: &ast.Scenario{
			Kind: ast.KindScenario, Keyword: "Scenario", Name: "S",
			Steps: []ast.Step{{
				Keyword: "Given ", Text: "text",
				Argument: &ast.StepArgument{DocString: &ast.DocString{
					Delimiter: `"""`,
					Content:   `has """ inside`,
				}},
			}},
		}}},
	}}

	out, err := Write(doc)
	require.NoError(t, err)
	require.Contains(t, out, `has \""" inside`)
}

func TestWriteTableEscapesCells(t *testing.T) {
	out := parseAndWrite(t, "Feature: F\n"+
		"  Scenario: S\n"+
		"    Given data\n"+
		`      | a\|b | c\\d | e\nf |`+"\n")

	require.Contains(t, out, `| a\|b | c\\d | e\nf |`)
}

func TestWriteTableAlignsGraphemeClusters(t *testing.T) {
	out := parseAndWrite(t, "Feature: F\n"+
		"  Scenario: S\n"+
		"    Given data\n"+
		"      | héllo | x |\n"+
		"      | ab | y |\n")

	require.Contains(t, out, "| héllo | x |\n")
	require.Contains(t, out, "| ab    | y |\n")
}

func TestWriteHeaderWithoutName(t *testing.T) {
	out := parseAndWrite(t, "Feature: F\n"+
		"  Background:\n"+
		"    Given a step\n")
	require.Contains(t, out, "  Background:\n")
}

func TestWriteWithIndent(t *testing.T) {
	doc, errs := parser.Parse("Feature: F\n  Scenario: S\n    Given a step\n")
	require.Empty(t, errs)

	out, err := New(WithIndent("\t")).Write(doc)
	require.NoError(t, err)
	require.Equal(t, "Feature: F\n\n\tScenario: S\n\t\tGiven a step\n", out)
}

func TestWriteNilDocument(t *testing.T) {
	_, err := Write(nil)
	require.Error(t, err)
}

func TestWriteEmptyDocument(t *testing.T) {
	out, err := Write(&ast.Document{})
	require.NoError(t, err)
	require.Equal(t, "", out)
}

func TestWriteRaggedTable(t *testing.T) {
	doc := &ast.Document{Feature: &ast.Feature{
		Keyword: "Feature", Name: "F", Language: "en",
		Children: []ast.FeatureChild{{Scenario: &ast.Scenario{
			Kind: ast.KindScenario, Keyword: "Scenario", Name: "S",
			Steps: []ast.Step{{
				Keyword: "Given ", Text: "data",
				Argument: &ast.StepArgument{DataTable: &ast.DataTable{
					Rows: []ast.TableRow{
						{Cells: []ast.TableCell{{Value: "a"}, {Value: "b"}}},
						{Location: location.NewLine(5), Cells: []ast.TableCell{{Value: "c"}}},
					},
				}},
			}},
		}}},
	}}

	_, err := Write(doc)
	require.ErrorContains(t, err, "ragged table: row at line 5 has 1 cells, expected 2")
}

func TestWriteExamplesBodyWithoutHeader(t *testing.T) {
	doc := &ast.Document{Feature: &ast.Feature{
		Keyword: "Feature", Name: "F", Language: "en",
		Children: []ast.FeatureChild{{Scenario: &ast.Scenario{
			Kind: ast.KindScenarioOutline, Keyword: "Scenario Outline", Name: "S",
			Examples: []ast.Examples{{
				Keyword:   "Examples",
				Location:  location.NewLine(3),
				TableBody: []ast.TableRow{{Cells: []ast.TableCell{{Value: "x"}}}},
			}},
		}}},
	}}

	_, err := Write(doc)
	require.ErrorContains(t, err, "body rows but no header")
}

func TestWriteRules(t *testing.T) {
	out := parseAndWrite(t, "Feature: F\n"+
		"  Rule: admins\n"+
		"    Scenario: inside\n"+
		"      Then allowed\n")

	require.Equal(t, "Feature: F\n"+
		"\n"+
		"  Rule: admins\n"+
		"\n"+
		"    Scenario: inside\n"+
		"      Then allowed\n", out)
}
