// Package dialect holds the table of localized Gherkin keywords.
//
// A Dialect maps every grammar construct (Feature, Background, Scenario,
// Scenario Outline, Rule, Examples, the step keywords) to the ordered set of
// literal spellings that may introduce a line of that kind in one language.
// Lookup is total: unknown language tags fall back to English so that an
// unrecognized `# language:` directive never aborts tokenization.
package dialect

import (
	"sort"
	"strings"
	"sync"

	"gitlab.com/tozd/go/errors"
)

// Default is the language in effect when no `# language:` directive is
// present.
const Default = "en"

// KeywordType classifies step keywords semantically.
type KeywordType string

const (
	KeywordContext     KeywordType = "context"
	KeywordAction      KeywordType = "action"
	KeywordOutcome     KeywordType = "outcome"
	KeywordConjunction KeywordType = "conjunction"
	KeywordUnknown     KeywordType = "unknown"
)

// Construct identifies a header-line grammar construct.
type Construct int

const (
	ConstructFeature Construct = iota
	ConstructRule
	ConstructBackground
	ConstructScenario
	ConstructScenarioOutline
	ConstructExamples
)

func (c Construct) String() string {
	switch c {
	case ConstructFeature:
		return "Feature"
	case ConstructRule:
		return "Rule"
	case ConstructBackground:
		return "Background"
	case ConstructScenario:
		return "Scenario"
	case ConstructScenarioOutline:
		return "Scenario Outline"
	case ConstructExamples:
		return "Examples"
	}
	return "unknown"
}

// HeaderKeyword is one spelling that introduces a `<keyword>:` header line.
type HeaderKeyword struct {
	Keyword   string
	Construct Construct
}

// StepKeyword is one spelling that introduces a step line. The keyword
// includes any trailing space it must be followed by.
type StepKeyword struct {
	Keyword string
	Type    KeywordType
}

// Dialect is the keyword table for one language.
type Dialect struct {
	Language string
	Name     string

	Feature         []string
	Rule            []string
	Background      []string
	Scenario        []string
	ScenarioOutline []string
	Examples        []string

	// Step keyword spellings include their trailing space where one is
	// required (all but apostrophe-terminated spellings like "Lorsqu'").
	Given []string
	When  []string
	Then  []string
	And   []string
	But   []string

	headersOnce sync.Once
	headers     []HeaderKeyword
	stepsOnce   sync.Once
	steps       []StepKeyword
}

// HeaderKeywords returns every header spelling of the dialect ordered
// longest-first, so that "Scenario Outline" is tried before "Scenario".
func (d *Dialect) HeaderKeywords() []HeaderKeyword {
	d.headersOnce.Do(func() {
		add := func(c Construct, kws []string) {
			for _, kw := range kws {
				d.headers = append(d.headers, HeaderKeyword{Keyword: kw, Construct: c})
			}
		}
		add(ConstructFeature, d.Feature)
		add(ConstructRule, d.Rule)
		add(ConstructBackground, d.Background)
		add(ConstructScenarioOutline, d.ScenarioOutline)
		add(ConstructScenario, d.Scenario)
		add(ConstructExamples, d.Examples)
		sort.SliceStable(d.headers, func(i, j int) bool {
			return len(d.headers[i].Keyword) > len(d.headers[j].Keyword)
		})
	})
	return d.headers
}

// StepKeywords returns every step spelling of the dialect ordered
// longest-first. A spelling listed under more than one semantic group (the
// `* ` bullet) classifies as KeywordUnknown; And/But spellings classify as
// KeywordConjunction.
func (d *Dialect) StepKeywords() []StepKeyword {
	d.stepsOnce.Do(func() {
		types := map[string]KeywordType{}
		add := func(t KeywordType, kws []string) {
			for _, kw := range kws {
				if existing, ok := types[kw]; ok && existing != t {
					types[kw] = KeywordUnknown
					continue
				}
				types[kw] = t
			}
		}
		add(KeywordContext, d.Given)
		add(KeywordAction, d.When)
		add(KeywordOutcome, d.Then)
		add(KeywordConjunction, d.And)
		add(KeywordConjunction, d.But)
		seen := map[string]bool{}
		for _, kws := range [][]string{d.Given, d.When, d.Then, d.And, d.But} {
			for _, kw := range kws {
				if seen[kw] {
					continue
				}
				seen[kw] = true
				d.steps = append(d.steps, StepKeyword{Keyword: kw, Type: types[kw]})
			}
		}
		sort.SliceStable(d.steps, func(i, j int) bool {
			return len(d.steps[i].Keyword) > len(d.steps[j].Keyword)
		})
	})
	return d.steps
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Dialect{}
)

func init() {
	for _, d := range builtin {
		registry[d.Language] = d
	}
}

// For returns the dialect for a language tag, falling back to English for
// unknown tags. The fallback is a policy choice, not an error: a document
// with an unrecognized directive still tokenizes with English keywords.
func For(language string) *Dialect {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if d, ok := registry[normalize(language)]; ok {
		return d
	}
	return registry[Default]
}

// Register adds a dialect to the table, replacing any existing entry for the
// same tag. The English entry cannot be replaced.
func Register(d *Dialect) error {
	if d == nil || d.Language == "" {
		return errors.New("dialect must carry a language tag")
	}
	tag := normalize(d.Language)
	if tag == Default {
		return errors.Errorf("dialect %q is builtin and cannot be replaced", Default)
	}
	if len(d.Feature) == 0 {
		return errors.Errorf("dialect %q has no Feature keywords", d.Language)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[tag] = d
	return nil
}

// Languages returns the registered language tags in sorted order.
func Languages() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	tags := make([]string, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func normalize(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}
