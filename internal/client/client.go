// Package client is a small HTTP client for a running conet server. The CLI
// uses it in --remote mode to query a shared instance instead of talking to
// OpenAlex directly.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/conetlab/conet/internal/graph"
	"github.com/conetlab/conet/internal/service"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// ErrServer indicates the server rejected or failed the request.
var ErrServer = errors.New("conet server error")

// StatusError carries the HTTP status and server-provided message of a
// failed request. It wraps ErrServer.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("conet server error (status %d): %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error { return ErrServer }

// Client talks to a conet server's JSON API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// decodeError turns an error response into a StatusError, preferring the
// server's JSON error message over the raw body.
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := string(body)

	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: msg}
}

type searchResponse struct {
	Results []service.AuthorResult `json:"results"`
}

// SearchAuthors queries the server's author search.
func (c *Client) SearchAuthors(ctx context.Context, query string, limit int) ([]service.AuthorResult, error) {
	params := url.Values{}
	params.Set("query", query)

	var out searchResponse
	if err := c.get(ctx, "/api/search_authors", params, &out); err != nil {
		return nil, err
	}
	if limit > 0 && len(out.Results) > limit {
		out.Results = out.Results[:limit]
	}
	return out.Results, nil
}

// Graph fetches the co-authorship graph around an author.
func (c *Client) Graph(ctx context.Context, authorID string, depth, maxNodes int) (*graph.Graph, error) {
	params := url.Values{}
	params.Set("author_id", authorID)
	if depth > 0 {
		params.Set("depth", strconv.Itoa(depth))
	}
	if maxNodes > 0 {
		params.Set("max_nodes", strconv.Itoa(maxNodes))
	}

	var out graph.Graph
	if err := c.get(ctx, "/api/graph", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ShortestPath fetches the shortest co-authorship path between two authors.
func (c *Client) ShortestPath(ctx context.Context, authorA, authorB string) (*service.PathResult, error) {
	params := url.Values{}
	params.Set("author_a", authorA)
	params.Set("author_b", authorB)

	var out service.PathResult
	if err := c.get(ctx, "/api/shortest_path", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Author fetches resolved metadata for a single author. Placeholder text
// the server may substitute for unknown fields is passed through as-is.
func (c *Client) Author(ctx context.Context, authorID string) (graph.AuthorDetails, error) {
	params := url.Values{}
	params.Set("author_id", authorID)

	var out struct {
		ID          string `json:"id"`
		Label       string `json:"label"`
		Institution string `json:"institution"`
		WorksCount  string `json:"works_count"`
		URL         string `json:"url"`
	}
	if err := c.get(ctx, "/api/author", params, &out); err != nil {
		return graph.AuthorDetails{}, err
	}

	works, _ := strconv.Atoi(out.WorksCount)
	return graph.AuthorDetails{
		ID:          out.ID,
		Label:       out.Label,
		Institution: out.Institution,
		WorksCount:  works,
		URL:         out.URL,
	}, nil
}
