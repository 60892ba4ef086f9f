package domain

// Verse is a single numbered verse within a passage.
type Verse struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// ScripturePassage is the scripture text for one reference in one
// translation resource. Produced by the content fetcher; rendering
// consumes it read-only.
type ScripturePassage struct {
	Reference string            `json:"reference"`
	Resource  string            `json:"resource"`
	Language  string            `json:"language"`
	Text      string            `json:"text"`
	Verses    []Verse           `json:"verses,omitempty"`
	Book      string            `json:"book,omitempty"`
	Chapter   int               `json:"chapter,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// ScriptureMatch is one located occurrence of a filter term, returned
// when a resource tool runs in locate mode instead of retrieve mode.
type ScriptureMatch struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}
