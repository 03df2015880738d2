package dialect

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForFallsBackToEnglish(t *testing.T) {
	d := For("zz")
	require.NotNil(t, d)
	require.Equal(t, "en", d.Language)

	require.Same(t, For("en"), For("no-such-language"))
}

func TestForNormalizesTags(t *testing.T) {
	require.Same(t, For("fr"), For(" FR "))
	require.Equal(t, "fr", For(" FR ").Language)
}

func TestHeaderKeywordsLongestFirst(t *testing.T) {
	var outlineIdx, scenarioIdx int
	for i, hk := range For("en").HeaderKeywords() {
		switch hk.Keyword {
		case "Scenario Outline":
			outlineIdx = i
		case "Scenario":
			scenarioIdx = i
		}
	}
	require.Less(t, outlineIdx, scenarioIdx)
}

func TestStepKeywordTypes(t *testing.T) {
	types := map[string]KeywordType{}
	for _, sk := range For("en").StepKeywords() {
		types[sk.Keyword] = sk.Type
	}

	require.Equal(t, KeywordContext, types["Given "])
	require.Equal(t, KeywordAction, types["When "])
	require.Equal(t, KeywordOutcome, types["Then "])
	require.Equal(t, KeywordConjunction, types["And "])
	require.Equal(t, KeywordConjunction, types["But "])
	// The bullet appears in every semantic group, so it has no single one.
	require.Equal(t, KeywordUnknown, types["* "])
}

func TestStepKeywordsListedOnce(t *testing.T) {
	seen := map[string]bool{}
	for _, sk := range For("en").StepKeywords() {
		require.False(t, seen[sk.Keyword], "keyword %q listed twice", sk.Keyword)
		seen[sk.Keyword] = true
	}
}

func TestRegister(t *testing.T) {
	t.Run("accepts_new_dialect", func(t *testing.T) {
		err := Register(&Dialect{
			Language: "xx-test",
			Name:     "Testish",
			Feature:  []string{"Featurex"},
			Scenario: []string{"Scenariox"},
			Given:    []string{"Givenx "},
		})
		require.NoError(t, err)
		require.Equal(t, "Testish", For("xx-test").Name)
		require.Equal(t, "xx-test", For("XX-Test").Language)
	})

	t.Run("rejects_nil_and_untagged", func(t *testing.T) {
		require.Error(t, Register(nil))
		require.Error(t, Register(&Dialect{Feature: []string{"F"}}))
	})

	t.Run("rejects_replacing_english", func(t *testing.T) {
		err := Register(&Dialect{Language: "EN", Feature: []string{"F"}})
		require.Error(t, err)
		require.Equal(t, "Feature", For("en").Feature[0])
	})

	t.Run("rejects_missing_feature_keywords", func(t *testing.T) {
		require.Error(t, Register(&Dialect{Language: "yy-test"}))
		require.Equal(t, "en", For("yy-test").Language)
	})
}

func TestLanguagesSortedAndComplete(t *testing.T) {
	tags := Languages()
	require.Contains(t, tags, "en")
	require.Contains(t, tags, "fr")
	require.True(t, sort.StringsAreSorted(tags))
}
