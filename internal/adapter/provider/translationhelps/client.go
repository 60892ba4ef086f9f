// Package translationhelps fetches scripture and study resources from
// the upstream translation-helps content API. The upstream freely
// answers either JSON or markdown for the same logical endpoint; the
// client normalizes both into a RawResponse and the typed fetch methods
// map them onto domain records.
package translationhelps

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/klappy/unfoldingtheword/internal/config"
)

// Upstream endpoint paths.
const (
	EndpointScripture = "fetch-scripture"
	EndpointNotes     = "fetch-translation-notes"
	EndpointQuestions = "fetch-translation-questions"
	EndpointWordLinks = "fetch-translation-word-links"
	EndpointWord      = "fetch-translation-word"
	EndpointAcademy   = "fetch-translation-academy"
	EndpointSearch    = "search"
)

// maxErrorBody bounds how much of an upstream error body is retained.
const maxErrorBody = 512

// UpstreamError is the typed failure for a non-2xx upstream response.
// Body is truncated; it is for logs and diagnostics, never for users.
type UpstreamError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("translationhelps: %s returned status %d", e.Endpoint, e.Status)
}

// upstreamRecorder receives one observation per upstream request.
// Satisfied by *metrics.Metrics; nil disables instrumentation.
type upstreamRecorder interface {
	RecordUpstreamRequest(endpoint, status string, duration time.Duration)
}

// Client is the HTTP client for the translation-helps API.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	log         *slog.Logger
	metrics     upstreamRecorder
	defaultLang string
	defaultOrg  string
	defaultRes  string
}

// NewClient creates a Client from ContentConfig.
func NewClient(cfg config.ContentConfig, logger *slog.Logger, m upstreamRecorder) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		log:         logger.With("adapter", "translationhelps"),
		metrics:     m,
		defaultLang: cfg.DefaultLanguage,
		defaultOrg:  cfg.DefaultOrganization,
		defaultRes:  cfg.DefaultResource,
	}
}

// DefaultLanguage returns the configured fallback language.
func (c *Client) DefaultLanguage() string { return c.defaultLang }

// DefaultOrganization returns the configured fallback organization.
func (c *Client) DefaultOrganization() string { return c.defaultOrg }

// Fetch performs one GET against the named endpoint. On non-2xx it
// returns a *UpstreamError carrying the status and a truncated body;
// it never panics past this boundary. Idempotent per call.
func (c *Client) Fetch(ctx context.Context, endpoint string, params url.Values) (*RawResponse, error) {
	reqURL := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	c.log.DebugContext(ctx, "upstream request", slog.String("endpoint", endpoint), slog.String("params", params.Encode()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("translationhelps: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/markdown;q=0.9, text/plain;q=0.8")

	start := time.Now()
	resp, err := c.doWithRetry(ctx, req, endpoint)
	if err != nil {
		c.recordRequest(endpoint, "error", time.Since(start))
		c.log.ErrorContext(ctx, "upstream request failed",
			slog.String("endpoint", endpoint), slog.String("error", err.Error()))
		return nil, fmt.Errorf("translationhelps: %s: %w", endpoint, err)
	}
	c.recordRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("translationhelps: %s: read body: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		trunc := string(body)
		if len(trunc) > maxErrorBody {
			trunc = trunc[:maxErrorBody]
		}
		return nil, &UpstreamError{Endpoint: endpoint, Status: resp.StatusCode, Body: trunc}
	}

	raw := normalizeResponse(resp.Header.Get("Content-Type"), body)

	c.log.DebugContext(ctx, "upstream response",
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.String("content_type", string(raw.ContentType)),
		slog.Int("bytes", len(body)),
	)

	return raw, nil
}

func (c *Client) recordRequest(endpoint, status string, duration time.Duration) {
	if c.metrics != nil {
		c.metrics.RecordUpstreamRequest(endpoint, status, duration)
	}
}

// doWithRetry executes the request with a single retry on 5xx or
// network errors.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, endpoint string) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "upstream retry", slog.String("endpoint", endpoint), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	return c.httpClient.Do(req)
}

// scopeParams builds the common language/organization parameters,
// substituting configured defaults for blanks.
func (c *Client) scopeParams(language, organization string) url.Values {
	params := url.Values{}
	if language == "" {
		language = c.defaultLang
	}
	if organization == "" {
		organization = c.defaultOrg
	}
	params.Set("language", language)
	params.Set("organization", organization)
	return params
}

// fetchWithFallback fetches with the requested scope and, when the
// localized fetch fails or comes back empty, retries once against the
// default language/organization. Upstream failures are absorbed here if
// the fallback succeeds; callers only see an error when both attempts
// fail.
func (c *Client) fetchWithFallback(ctx context.Context, endpoint string, params url.Values) (*RawResponse, error) {
	raw, err := c.Fetch(ctx, endpoint, params)
	if err == nil && !raw.Empty() {
		return raw, nil
	}

	lang, org := params.Get("language"), params.Get("organization")
	if lang == c.defaultLang && org == c.defaultOrg {
		return raw, err
	}

	c.log.InfoContext(ctx, "falling back to default scope",
		slog.String("endpoint", endpoint),
		slog.String("language", lang),
		slog.String("organization", org),
	)

	fallback := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			fallback.Add(k, v)
		}
	}
	fallback.Set("language", c.defaultLang)
	fallback.Set("organization", c.defaultOrg)

	fbRaw, fbErr := c.Fetch(ctx, endpoint, fallback)
	if fbErr != nil {
		// Prefer the original error; it reflects the requested scope.
		if err != nil {
			return nil, err
		}
		return raw, nil
	}
	return fbRaw, nil
}
