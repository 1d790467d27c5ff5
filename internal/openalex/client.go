package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the OpenAlex API base URL.
	BaseURL = "https://api.openalex.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 20 * time.Second

	// RateLimit is 10 requests per second, the documented courtesy limit.
	RateLimit = 10.0

	// WorksSelect limits work payloads to the authorship lists, which is all
	// the graph builder consumes.
	WorksSelect = "authorships"

	// Default limits for the search and works endpoints.
	DefaultAuthorSearchLimit = 10
	DefaultWorksLimit        = 30
)

// Client is a rate-limited HTTP client for the OpenAlex API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMailto sets the contact address sent with each request, which places
// the client in the OpenAlex polite pool.
func WithMailto(mailto string) ClientOption {
	return func(c *Client) {
		c.mailto = mailto
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a new OpenAlex API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	if m := os.Getenv("OPENALEX_MAILTO"); m != "" {
		c.mailto = m
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get performs a rate-limited GET against the API and decodes into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if c.mailto != "" {
		params.Set("mailto", c.mailto)
	}
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
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrInvalidResponse, path, err)
	}
	return nil
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response) error {
	switch {
	case resp.StatusCode == 404:
		return ErrNotFound
	case resp.StatusCode == 429:
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}
	return nil
}

// SearchAuthors searches for authors by name.
func (c *Client) SearchAuthors(ctx context.Context, query string, limit int) (*AuthorsResponse, error) {
	if limit <= 0 {
		limit = DefaultAuthorSearchLimit
	}

	params := url.Values{}
	params.Set("search", query)
	params.Set("per-page", strconv.Itoa(limit))

	var out AuthorsResponse
	if err := c.get(ctx, "/authors", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAuthor fetches a single author by identifier.
func (c *Client) GetAuthor(ctx context.Context, authorID string) (*Author, error) {
	id := NormalizeID(authorID)
	if id == "" {
		return nil, fmt.Errorf("%w: empty author id", ErrNotFound)
	}

	var out Author
	if err := c.get(ctx, "/authors/"+id, url.Values{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetWorks fetches works authored by the given author, authorships only.
func (c *Client) GetWorks(ctx context.Context, authorID string, limit int) (*WorksResponse, error) {
	id := NormalizeID(authorID)
	if limit <= 0 {
		limit = DefaultWorksLimit
	}

	params := url.Values{}
	params.Set("filter", "authorships.author.id:"+id)
	params.Set("per-page", strconv.Itoa(limit))
	params.Set("select", WorksSelect)

	var out WorksResponse
	if err := c.get(ctx, "/works", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
