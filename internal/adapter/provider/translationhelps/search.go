package translationhelps

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/klappy/unfoldingtheword/internal/domain"
)

// SearchRequest is one full-text search. Scope narrows the search to a
// book or testament; ScopeType names what Scope is ("book", "testament",
// empty for everything).
type SearchRequest struct {
	Query        string
	Scope        string
	ScopeType    string
	Language     string
	Organization string
}

// searchHit recognizes "- **Book C:V** text" list lines in markdown
// search responses.
var searchHit = regexp.MustCompile(`^[-*]\s+\*\*([1-3]?\s?[A-Za-z ]+?)\s+(\d{1,3}):(\d{1,3})\*\*[:\s]*(.*)$`)

// Search runs a full-text search across the upstream corpus and returns
// the per-section aggregate.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*domain.SearchResults, error) {
	params := c.scopeParams(req.Language, req.Organization)
	params.Set("query", req.Query)
	if req.Scope != "" {
		params.Set("scope", req.Scope)
		params.Set("scopeType", firstNonEmpty(req.ScopeType, "book"))
	}

	raw, err := c.fetchWithFallback(ctx, EndpointSearch, params)
	if err != nil {
		return nil, err
	}

	if raw.ContentType == ContentJSON {
		return searchFromJSON(raw.JSON, req)
	}
	return searchFromMarkdown(raw.Text, req), nil
}

func searchFromJSON(data json.RawMessage, req SearchRequest) (*domain.SearchResults, error) {
	var api apiSearch
	if err := json.Unmarshal(data, &api); err != nil {
		return nil, fmt.Errorf("translationhelps: decode search json: %w", err)
	}

	results := &domain.SearchResults{
		Query:     firstNonEmpty(api.Query, req.Query),
		Scope:     firstNonEmpty(api.Scope, req.Scope),
		ScopeType: firstNonEmpty(api.ScopeType, req.ScopeType),
	}
	results.Scripture = sectionFromJSON(api.Scripture)
	results.Notes = sectionFromJSON(api.Notes)
	results.Questions = sectionFromJSON(api.Questions)
	results.Words = sectionFromJSON(api.Words)
	results.Academy = sectionFromJSON(api.Academy)
	return results, nil
}

func sectionFromJSON(api *apiSearchSection) *domain.SearchSection {
	if api == nil {
		return nil
	}
	sec := &domain.SearchSection{
		Markdown:   api.Markdown,
		Matches:    []domain.ScriptureMatch{},
		TotalCount: api.TotalCount,
		Breakdown:  api.Breakdown,
	}
	for _, m := range api.Matches {
		sec.Matches = append(sec.Matches, domain.ScriptureMatch{Book: m.Book, Chapter: m.Chapter, Verse: m.Verse, Text: m.Text})
	}
	if sec.TotalCount == 0 {
		sec.TotalCount = len(sec.Matches)
	}
	return sec
}

// searchFromMarkdown scrapes hit lines out of a markdown search
// response. Everything lands in the scripture section; the markdown
// dialect does not distinguish sections reliably enough to split.
func searchFromMarkdown(text string, req SearchRequest) *domain.SearchResults {
	sec := &domain.SearchSection{
		Markdown:  strings.TrimSpace(text),
		Matches:   []domain.ScriptureMatch{},
		Breakdown: map[string]int{},
	}

	for _, line := range strings.Split(text, "\n") {
		m := searchHit.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		chapter, _ := strconv.Atoi(m[2])
		verse, _ := strconv.Atoi(m[3])
		book := strings.TrimSpace(m[1])
		if canonical, ok := domain.CanonicalBook(book); ok {
			book = canonical
		}
		sec.Matches = append(sec.Matches, domain.ScriptureMatch{
			Book:    book,
			Chapter: chapter,
			Verse:   verse,
			Text:    strings.TrimSpace(m[4]),
		})
		sec.Breakdown[book]++
	}

	sec.TotalCount = len(sec.Matches)
	if len(sec.Breakdown) == 0 {
		sec.Breakdown = nil
	}

	return &domain.SearchResults{
		Query:     req.Query,
		Scope:     req.Scope,
		ScopeType: req.ScopeType,
		Scripture: sec,
	}
}
