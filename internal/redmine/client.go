// Package redmine is a minimal read-only client for the Redmine wiki API.
//
// Only the two endpoints the mirror needs are covered: the wiki page index
// and individual pages with content included. Authentication uses the
// X-Redmine-API-Key header. The client never writes anything back.
package redmine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	apiKeyHeader   = "X-Redmine-API-Key"
	requestTimeout = 30 * time.Second

	// maxErrorBody caps how much of a failed response is captured for
	// error reporting.
	maxErrorBody = 8 << 10
)

// PageStub is one entry of the wiki page index.
type PageStub struct {
	Title     string `json:"title"`
	Version   int    `json:"version"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}

// Page is a wiki page fetched with its content.
type Page struct {
	Title     string `json:"title"`
	Text      string `json:"text"`
	Version   int    `json:"version"`
	UpdatedOn string `json:"updated_on"`
}

// StatusError is returned when the service answers with a non-200 status.
// The response body is captured for diagnostics.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
}

// DecodeError is returned when a response body cannot be parsed as the
// expected structure.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("parse JSON from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Client talks to one Redmine instance.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a client for the given base URL. A trailing slash on the base
// URL is tolerated.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// BaseURL returns the normalized service address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetHTTPClient overrides the underlying HTTP client, mainly for tests.
func (c *Client) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

// ListPages fetches the wiki page index for a project.
func (c *Client) ListPages(ctx context.Context, project string) ([]PageStub, error) {
	u := fmt.Sprintf("%s/projects/%s/wiki/index.json", c.baseURL, url.PathEscape(project))

	var payload struct {
		WikiPages []PageStub `json:"wiki_pages"`
	}
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}
	return payload.WikiPages, nil
}

// FetchPage fetches one wiki page including its raw content.
func (c *Client) FetchPage(ctx context.Context, project, title string) (*Page, error) {
	u := fmt.Sprintf("%s/projects/%s/wiki/%s.json?include=content",
		c.baseURL, url.PathEscape(project), url.PathEscape(title))

	var payload struct {
		WikiPage Page `json:"wiki_page"`
	}
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}
	return &payload.WikiPage, nil
}

// getJSON performs an authenticated GET and decodes the JSON response into v.
func (c *Client) getJSON(ctx context.Context, u string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{URL: u, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &DecodeError{URL: u, Err: err}
	}
	return nil
}
