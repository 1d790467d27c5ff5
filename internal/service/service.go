// Package service implements the author search and graph operations shared
// by the HTTP server and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/conetlab/conet/internal/graph"
	"github.com/conetlab/conet/internal/openalex"
)

// ErrEmptyQuery is returned before any request is made for blank input.
var ErrEmptyQuery = errors.New("query must not be empty")

// MinQueryLength is the shortest accepted search query.
const MinQueryLength = 2

// AuthorResult is one entry in a search response.
type AuthorResult struct {
	ShortID     string `json:"short_id"`
	DisplayName string `json:"display_name"`
	Institution string `json:"institution,omitempty"`
	WorksCount  int    `json:"works_count,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Service executes author searches, graph builds, and path queries against
// OpenAlex.
type Service struct {
	client        *openalex.Client
	source        graph.Source
	logger        *slog.Logger
	maxExpansions int
}

// New constructs a Service. cache may be nil to disable author caching.
func New(logger *slog.Logger, client *openalex.Client, cache graph.DetailsCache, maxExpansions int) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if maxExpansions <= 0 {
		maxExpansions = graph.DefaultMaxExpansions
	}
	return &Service{
		client:        client,
		source:        graph.NewAPISource(client, cache),
		logger:        logger,
		maxExpansions: maxExpansions,
	}
}

// SearchAuthors finds authors matching a name query. Blank or too-short
// queries are rejected without issuing a request.
func (s *Service) SearchAuthors(ctx context.Context, query string, limit int) ([]AuthorResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if len(query) < MinQueryLength {
		return nil, fmt.Errorf("%w: need at least %d characters", ErrEmptyQuery, MinQueryLength)
	}

	resp, err := s.client.SearchAuthors(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching authors: %w", err)
	}

	results := make([]AuthorResult, 0, len(resp.Results))
	for _, a := range resp.Results {
		results = append(results, AuthorResult{
			ShortID:     a.ShortID(),
			DisplayName: a.DisplayName,
			Institution: a.InstitutionName(),
			WorksCount:  a.WorksCount,
			URL:         a.ID,
		})
	}

	s.logger.Debug("author search", "query", query, "results", len(results))
	return results, nil
}

// Graph builds a co-authorship graph around the given author.
func (s *Service) Graph(ctx context.Context, authorID string, depth, maxNodes int) (*graph.Graph, error) {
	if strings.TrimSpace(authorID) == "" {
		return nil, ErrEmptyQuery
	}

	g, err := graph.Build(ctx, s.source, authorID, depth, maxNodes)
	if err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}

	s.logger.Info("graph built",
		"author", openalex.NormalizeID(authorID),
		"depth", graph.ClampDepth(depth),
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
	)
	return g, nil
}

// ShortestPath finds the shortest co-author chain between two authors.
// When the search budget runs out before the target is reached, the result
// is an empty path with Truncated set.
func (s *Service) ShortestPath(ctx context.Context, authorA, authorB string) (*PathResult, error) {
	if strings.TrimSpace(authorA) == "" || strings.TrimSpace(authorB) == "" {
		return nil, ErrEmptyQuery
	}

	p, err := graph.ShortestPath(ctx, s.source, authorA, authorB, s.maxExpansions)
	if errors.Is(err, graph.ErrSearchExhausted) {
		s.logger.Warn("shortest path search exhausted",
			"author_a", authorA, "author_b", authorB, "budget", s.maxExpansions)
		return &PathResult{Path: []string{}, Truncated: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding shortest path: %w", err)
	}

	return &PathResult{Path: p.IDs}, nil
}

// PathResult is the outcome of a shortest-path query. An empty Path means
// no path was found; Truncated marks searches stopped by the expansion
// budget rather than an exhausted frontier.
type PathResult struct {
	Path      []string `json:"path"`
	Truncated bool     `json:"truncated,omitempty"`
}

// Author resolves a single author's details.
func (s *Service) Author(ctx context.Context, authorID string) (graph.AuthorDetails, error) {
	if strings.TrimSpace(authorID) == "" {
		return graph.AuthorDetails{}, ErrEmptyQuery
	}
	return s.source.AuthorDetails(ctx, authorID)
}
