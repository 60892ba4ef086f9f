package domain

// SearchSection is one section of a full-text search aggregate. Markdown
// carries the upstream's rendered summary; Matches the structured hits.
// Breakdown buckets match counts by book for UI summarization.
type SearchSection struct {
	Markdown   string           `json:"markdown,omitempty"`
	Matches    []ScriptureMatch `json:"matches"`
	TotalCount int              `json:"totalCount"`
	Breakdown  map[string]int   `json:"breakdown,omitempty"`
}

// SearchResults is the aggregate returned by a full-text search tool
// call. Absent sections are nil; present sections may still be empty.
type SearchResults struct {
	Query     string         `json:"query"`
	Scope     string         `json:"scope,omitempty"`
	ScopeType string         `json:"scopeType,omitempty"`
	Scripture *SearchSection `json:"scripture,omitempty"`
	Notes     *SearchSection `json:"notes,omitempty"`
	Questions *SearchSection `json:"questions,omitempty"`
	Words     *SearchSection `json:"words,omitempty"`
	Academy   *SearchSection `json:"academy,omitempty"`
}

// TotalMatches sums the match counts across all present sections.
func (r *SearchResults) TotalMatches() int {
	total := 0
	for _, s := range []*SearchSection{r.Scripture, r.Notes, r.Questions, r.Words, r.Academy} {
		if s != nil {
			total += s.TotalCount
		}
	}
	return total
}
