package translationhelps

import (
	"encoding/json"
	"strings"
)

// ContentType tags which representation the upstream chose.
type ContentType string

const (
	ContentJSON     ContentType = "json"
	ContentMarkdown ContentType = "markdown"
)

// RawResponse is the normalized upstream response: exactly one of JSON
// or Text is populated, per ContentType.
type RawResponse struct {
	ContentType ContentType
	JSON        json.RawMessage
	Text        string
}

// Empty reports whether the response carries no usable content.
func (r *RawResponse) Empty() bool {
	if r == nil {
		return true
	}
	switch r.ContentType {
	case ContentJSON:
		s := strings.TrimSpace(string(r.JSON))
		return s == "" || s == "null" || s == "{}" || s == "[]"
	default:
		return strings.TrimSpace(r.Text) == ""
	}
}

// normalizeResponse classifies a body by Content-Type header. Anything
// that does not look like JSON is treated as markdown; the upstream also
// serves markdown as text/plain.
func normalizeResponse(contentType string, body []byte) *RawResponse {
	if strings.Contains(contentType, "json") {
		return &RawResponse{ContentType: ContentJSON, JSON: json.RawMessage(body)}
	}
	return &RawResponse{ContentType: ContentMarkdown, Text: string(body)}
}

// apiVerse is one verse in a JSON scripture response.
type apiVerse struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// apiMatch is one located occurrence in a JSON filter/search response.
type apiMatch struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

// apiScripture is the JSON shape of a fetch-scripture response.
type apiScripture struct {
	Reference string            `json:"reference"`
	Resource  string            `json:"resource"`
	Language  string            `json:"language"`
	Text      string            `json:"text"`
	Verses    []apiVerse        `json:"verses"`
	Book      string            `json:"book"`
	Chapter   int               `json:"chapter"`
	Metadata  map[string]string `json:"metadata"`
	Matches   []apiMatch        `json:"matches"`
}

// apiResource is one item in a JSON resource-list response.
type apiResource struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Reference string `json:"reference"`
	// Some endpoints use alternate field names for the same data.
	Note     string `json:"note"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Term     string `json:"term"`
}

// apiResourceList tolerates both a bare array and an object wrapper.
type apiResourceList struct {
	Items []apiResource `json:"items"`
	Notes []apiResource `json:"notes"`
}

// apiSearchSection is one section of a JSON search response.
type apiSearchSection struct {
	Markdown   string         `json:"markdown"`
	Matches    []apiMatch     `json:"matches"`
	TotalCount int            `json:"totalCount"`
	Breakdown  map[string]int `json:"breakdown"`
}

// apiSearch is the JSON shape of a search response.
type apiSearch struct {
	Query     string            `json:"query"`
	Scope     string            `json:"scope"`
	ScopeType string            `json:"scopeType"`
	Scripture *apiSearchSection `json:"scripture"`
	Notes     *apiSearchSection `json:"notes"`
	Questions *apiSearchSection `json:"questions"`
	Words     *apiSearchSection `json:"words"`
	Academy   *apiSearchSection `json:"academy"`
}
