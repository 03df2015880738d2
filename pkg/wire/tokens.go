package wire

import (
	"encoding/json"

	"github.com/moonrockz/gherkin/pkg/token"
)

type jsonToken struct {
	Type        string       `json:"type"`
	Location    jsonLocation `json:"location"`
	Keyword     string       `json:"keyword,omitempty"`
	KeywordType string       `json:"keywordType,omitempty"`
	Name        string       `json:"name,omitempty"`
	Text        string       `json:"text,omitempty"`
	Delimiter   string       `json:"delimiter,omitempty"`
	MediaType   string       `json:"mediaType,omitempty"`
	Cells       []string     `json:"cells,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Language    string       `json:"language,omitempty"`
}

// MarshalTokens encodes a token stream for tooling that inspects the raw
// lexical view of a document.
func MarshalTokens(tokens []token.Token) ([]byte, error) {
	out := make([]jsonToken, len(tokens))
	for i, t := range tokens {
		jt := jsonToken{
			Type:        t.Type.String(),
			Location:    toJSONLocation(t.Location),
			Keyword:     t.Keyword,
			KeywordType: string(t.KeywordType),
			Name:        t.Name,
			Text:        t.Text,
			Delimiter:   t.Delimiter,
			MediaType:   t.MediaType,
			Language:    t.Language,
		}
		for _, c := range t.Cells {
			jt.Cells = append(jt.Cells, c.Value)
		}
		for _, tag := range t.Tags {
			jt.Tags = append(jt.Tags, tag.Name)
		}
		out[i] = jt
	}
	return json.MarshalIndent(out, "", "  ")
}
