package translationhelps

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/klappy/unfoldingtheword/internal/domain"
)

// ScriptureRequest identifies one passage fetch. Filter switches the
// call from retrieve mode to locate mode.
type ScriptureRequest struct {
	Reference    string
	Language     string
	Organization string
	Resource     string
	Filter       string
}

// versePrefix recognizes "1 In the beginning..." verse lines in
// markdown scripture responses.
var versePrefix = regexp.MustCompile(`^\s*(\d{1,3})[.)]?\s+(.*)$`)

// FetchScripture fetches a passage. In retrieve mode (no Filter) the
// matches slice is nil. In locate mode the passage may still be
// returned, and matches carries the located occurrences: the upstream's
// own structured matches when it sent JSON, otherwise a case-insensitive
// scan of the parsed verses.
func (c *Client) FetchScripture(ctx context.Context, req ScriptureRequest) (*domain.ScripturePassage, []domain.ScriptureMatch, error) {
	params := c.scopeParams(req.Language, req.Organization)
	params.Set("reference", req.Reference)
	if req.Resource != "" {
		params.Set("resource", req.Resource)
	} else {
		params.Set("resource", c.defaultRes)
	}
	if req.Filter != "" {
		params.Set("filter", req.Filter)
	}

	raw, err := c.fetchWithFallback(ctx, EndpointScripture, params)
	if err != nil {
		return nil, nil, err
	}

	if raw.ContentType == ContentJSON {
		return c.scriptureFromJSON(raw.JSON, req)
	}
	return c.scriptureFromMarkdown(raw.Text, req)
}

func (c *Client) scriptureFromJSON(data json.RawMessage, req ScriptureRequest) (*domain.ScripturePassage, []domain.ScriptureMatch, error) {
	var api apiScripture
	if err := json.Unmarshal(data, &api); err != nil {
		return nil, nil, fmt.Errorf("translationhelps: decode scripture json: %w", err)
	}

	passage := &domain.ScripturePassage{
		Reference: firstNonEmpty(api.Reference, req.Reference),
		Resource:  firstNonEmpty(api.Resource, req.Resource, c.defaultRes),
		Language:  firstNonEmpty(api.Language, req.Language, c.defaultLang),
		Text:      api.Text,
		Book:      api.Book,
		Chapter:   api.Chapter,
		Metadata:  api.Metadata,
	}
	for _, v := range api.Verses {
		passage.Verses = append(passage.Verses, domain.Verse{Number: v.Number, Text: v.Text})
	}
	if passage.Text == "" && len(passage.Verses) > 0 {
		passage.Text = joinVerses(passage.Verses)
	}

	if req.Filter == "" {
		return passage, nil, nil
	}

	// Locate mode: trust the upstream's structured matches when present,
	// otherwise fall back to scanning the text we received.
	if len(api.Matches) > 0 {
		matches := make([]domain.ScriptureMatch, 0, len(api.Matches))
		for _, m := range api.Matches {
			matches = append(matches, domain.ScriptureMatch{Book: m.Book, Chapter: m.Chapter, Verse: m.Verse, Text: m.Text})
		}
		return passage, matches, nil
	}
	return passage, scanForMatches(passage, req), nil
}

func (c *Client) scriptureFromMarkdown(text string, req ScriptureRequest) (*domain.ScripturePassage, []domain.ScriptureMatch, error) {
	passage := &domain.ScripturePassage{
		Reference: req.Reference,
		Resource:  firstNonEmpty(req.Resource, c.defaultRes),
		Language:  firstNonEmpty(req.Language, c.defaultLang),
		Text:      strings.TrimSpace(text),
		Verses:    parseVerseLines(text),
	}
	if ref, ok := domain.ParseReference(req.Reference); ok {
		passage.Book = ref.Book
		passage.Chapter = ref.Chapter
	}

	if req.Filter == "" {
		return passage, nil, nil
	}
	return passage, scanForMatches(passage, req), nil
}

// parseVerseLines extracts numbered verses from a markdown passage.
// Lines without a leading verse number continue the previous verse.
func parseVerseLines(text string) []domain.Verse {
	var verses []domain.Verse
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if m := versePrefix.FindStringSubmatch(trimmed); m != nil {
			num := 0
			fmt.Sscanf(m[1], "%d", &num)
			verses = append(verses, domain.Verse{Number: num, Text: strings.TrimSpace(m[2])})
			continue
		}
		if len(verses) > 0 {
			verses[len(verses)-1].Text += " " + trimmed
		}
	}
	return verses
}

// scanForMatches is the plain-text locate fallback: every verse whose
// text case-insensitively contains the filter term becomes a match.
func scanForMatches(passage *domain.ScripturePassage, req ScriptureRequest) []domain.ScriptureMatch {
	needle := strings.ToLower(req.Filter)
	book, chapter := passage.Book, passage.Chapter
	if book == "" {
		if ref, ok := domain.ParseReference(req.Reference); ok {
			book, chapter = ref.Book, ref.Chapter
		}
	}

	matches := []domain.ScriptureMatch{}
	for _, v := range passage.Verses {
		if strings.Contains(strings.ToLower(v.Text), needle) {
			matches = append(matches, domain.ScriptureMatch{
				Book:    book,
				Chapter: chapter,
				Verse:   v.Number,
				Text:    v.Text,
			})
		}
	}
	return matches
}

func joinVerses(verses []domain.Verse) string {
	parts := make([]string, 0, len(verses))
	for _, v := range verses {
		parts = append(parts, fmt.Sprintf("%d %s", v.Number, v.Text))
	}
	return strings.Join(parts, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
