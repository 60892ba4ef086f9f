package translationhelps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/internal/markdown"
)

// ResourceRequest identifies one resource fetch. Reference is a
// scripture reference for notes/questions/word-links; Term is the word
// or article slug for fetch-translation-word and fetch-translation-academy.
type ResourceRequest struct {
	Reference    string
	Term         string
	Language     string
	Organization string
	Filter       string
}

// FetchNotes fetches translation notes for a reference.
func (c *Client) FetchNotes(ctx context.Context, req ResourceRequest) ([]domain.Resource, error) {
	return c.fetchResourceList(ctx, EndpointNotes, req, domain.KindTranslationNote, markdown.ParseNotes)
}

// FetchQuestions fetches translation questions for a reference.
func (c *Client) FetchQuestions(ctx context.Context, req ResourceRequest) ([]domain.Resource, error) {
	return c.fetchResourceList(ctx, EndpointQuestions, req, domain.KindTranslationQuestion, markdown.ParseQuestions)
}

// FetchWordLinks fetches the word links for a reference.
func (c *Client) FetchWordLinks(ctx context.Context, req ResourceRequest) ([]domain.Resource, error) {
	return c.fetchResourceList(ctx, EndpointWordLinks, req, domain.KindTranslationWord, markdown.ParseWordLinks)
}

// FetchWord fetches one translation-word definition article by term.
func (c *Client) FetchWord(ctx context.Context, req ResourceRequest) ([]domain.Resource, error) {
	return c.fetchArticle(ctx, EndpointWord, req, domain.KindTranslationWord, markdown.ParseWordLinks)
}

// FetchAcademy fetches one translation-academy article by slug.
func (c *Client) FetchAcademy(ctx context.Context, req ResourceRequest) ([]domain.Resource, error) {
	return c.fetchArticle(ctx, EndpointAcademy, req, domain.KindAcademyArticle, markdown.ParseAcademy)
}

type markdownParser func(doc, fallbackRef string) []domain.Resource

func (c *Client) fetchResourceList(ctx context.Context, endpoint string, req ResourceRequest, kind domain.ResourceKind, parse markdownParser) ([]domain.Resource, error) {
	params := c.scopeParams(req.Language, req.Organization)
	params.Set("reference", req.Reference)
	if req.Filter != "" {
		params.Set("filter", req.Filter)
	}
	return c.resourcesFrom(ctx, endpoint, params, req.Reference, kind, parse)
}

func (c *Client) fetchArticle(ctx context.Context, endpoint string, req ResourceRequest, kind domain.ResourceKind, parse markdownParser) ([]domain.Resource, error) {
	params := c.scopeParams(req.Language, req.Organization)
	params.Set("term", req.Term)
	return c.resourcesFrom(ctx, endpoint, params, req.Reference, kind, parse)
}

// resourcesFrom runs the shared fetch-decode path. An upstream failure
// degrades to an empty list: resource fetches are enrichment, never a
// reason to fail the whole orchestration.
func (c *Client) resourcesFrom(ctx context.Context, endpoint string, params url.Values, fallbackRef string, kind domain.ResourceKind, parse markdownParser) ([]domain.Resource, error) {
	raw, err := c.fetchWithFallback(ctx, endpoint, params)
	if err != nil {
		if _, ok := err.(*UpstreamError); ok {
			c.log.WarnContext(ctx, "resource fetch degraded to empty",
				"endpoint", endpoint, "error", err.Error())
			return []domain.Resource{}, nil
		}
		return nil, err
	}

	if raw.ContentType == ContentMarkdown {
		return parse(raw.Text, fallbackRef), nil
	}
	return resourcesFromJSON(raw.JSON, fallbackRef, kind)
}

// resourcesFromJSON maps a JSON resource payload, tolerating a bare
// array, an {items: []} wrapper, or a single object.
func resourcesFromJSON(data json.RawMessage, fallbackRef string, kind domain.ResourceKind) ([]domain.Resource, error) {
	var items []apiResource

	if err := json.Unmarshal(data, &items); err != nil {
		var wrapper apiResourceList
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("translationhelps: decode resource json: %w", err)
		}
		items = wrapper.Items
		if len(items) == 0 {
			items = wrapper.Notes
		}
		if len(items) == 0 {
			var single apiResource
			if err := json.Unmarshal(data, &single); err == nil && (single.Content != "" || single.Note != "" || single.Answer != "") {
				items = []apiResource{single}
			}
		}
	}

	resources := make([]domain.Resource, 0, len(items))
	for i, item := range items {
		res := domain.Resource{
			ID:        item.ID,
			Kind:      kind,
			Title:     firstNonEmpty(item.Title, item.Question, item.Term),
			Content:   firstNonEmpty(item.Content, item.Note, item.Answer),
			Reference: firstNonEmpty(item.Reference, fallbackRef),
		}
		if res.ID == "" {
			res.ID = fmt.Sprintf("%s-%d", kind, i+1)
		}
		if res.Title == "" {
			res.Title = res.Reference
		}
		if res.Content == "" {
			continue
		}
		resources = append(resources, res)
	}
	return resources, nil
}
