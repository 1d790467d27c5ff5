package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/conetlab/conet/internal/graph"
	"github.com/conetlab/conet/internal/openalex"
	"github.com/conetlab/conet/internal/service"
	"github.com/conetlab/conet/internal/view"
)

type stubService struct {
	searchResults []service.AuthorResult
	searchErr     error
	graph         *graph.Graph
	graphErr      error
	path          *service.PathResult
	pathErr       error
	details       graph.AuthorDetails
	detailsErr    error

	lastQuery    string
	lastDepth    int
	lastMaxNodes int
}

func (s *stubService) SearchAuthors(_ context.Context, query string, _ int) ([]service.AuthorResult, error) {
	s.lastQuery = query
	return s.searchResults, s.searchErr
}

func (s *stubService) Graph(_ context.Context, _ string, depth, maxNodes int) (*graph.Graph, error) {
	s.lastDepth = depth
	s.lastMaxNodes = maxNodes
	return s.graph, s.graphErr
}

func (s *stubService) ShortestPath(context.Context, string, string) (*service.PathResult, error) {
	return s.path, s.pathErr
}

func (s *stubService) Author(context.Context, string) (graph.AuthorDetails, error) {
	return s.details, s.detailsErr
}

func testRouter(t *testing.T, svc GraphService) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(logger, NewAPIHandlers(logger, svc), nil)
}

func doRequest(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return out
}

func testGraph() *graph.Graph {
	return &graph.Graph{
		Nodes: []graph.Node{
			{ID: "A1", Label: "Ada Lovelace", IsCenter: true, WorksCount: 12},
			{ID: "A2", Label: "Charles Babbage"},
		},
		Edges: []graph.Edge{{Source: "A1", Target: "A2", Weight: 3}},
	}
}

func TestHandleSearchAuthors(t *testing.T) {
	svc := &stubService{searchResults: []service.AuthorResult{
		{ShortID: "A1", DisplayName: "Ada Lovelace", Institution: "UCL", WorksCount: 12},
	}}
	rec := doRequest(t, testRouter(t, svc), "/api/search_authors?query=lovelace")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.lastQuery != "lovelace" {
		t.Errorf("query passed to service = %q, want %q", svc.lastQuery, "lovelace")
	}
	body := decodeBody[searchResponse](t, rec)
	if len(body.Results) != 1 || body.Results[0].ShortID != "A1" {
		t.Errorf("unexpected results: %+v", body.Results)
	}
}

func TestHandleSearchAuthorsEmptyResults(t *testing.T) {
	rec := doRequest(t, testRouter(t, &stubService{}), "/api/search_authors?query=nobody")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"results":[]`) {
		t.Errorf("nil results should encode as empty array, got %s", rec.Body.String())
	}
}

func TestHandleSearchAuthorsErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty query", service.ErrEmptyQuery, http.StatusBadRequest},
		{"not found", openalex.ErrNotFound, http.StatusNotFound},
		{"rate limited", openalex.ErrRateLimited, http.StatusTooManyRequests},
		{"upstream failure", errors.New("connection refused"), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, testRouter(t, &stubService{searchErr: tt.err}), "/api/search_authors?query=x")
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if body := decodeBody[map[string]string](t, rec); body["error"] == "" {
				t.Error("error response missing error field")
			}
		})
	}
}

func TestHandleGraphParams(t *testing.T) {
	svc := &stubService{graph: testGraph()}
	rec := doRequest(t, testRouter(t, svc), "/api/graph?author_id=A1&depth=2&max_nodes=50")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.lastDepth != 2 || svc.lastMaxNodes != 50 {
		t.Errorf("depth/max_nodes = %d/%d, want 2/50", svc.lastDepth, svc.lastMaxNodes)
	}
}

func TestHandleGraphDefaults(t *testing.T) {
	svc := &stubService{graph: testGraph()}
	doRequest(t, testRouter(t, svc), "/api/graph?author_id=A1&depth=bogus")

	if svc.lastDepth != graph.DefaultDepth {
		t.Errorf("depth = %d, want default %d", svc.lastDepth, graph.DefaultDepth)
	}
	if svc.lastMaxNodes != graph.DefaultMaxNodes {
		t.Errorf("max_nodes = %d, want default %d", svc.lastMaxNodes, graph.DefaultMaxNodes)
	}
}

func TestHandleShortestPath(t *testing.T) {
	svc := &stubService{path: &service.PathResult{Path: []string{"A1", "A2"}}}
	rec := doRequest(t, testRouter(t, svc), "/api/shortest_path?author_a=A1&author_b=A2")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody[service.PathResult](t, rec)
	if len(body.Path) != 2 {
		t.Errorf("path = %v, want two hops", body.Path)
	}
}

func TestHandleAuthorPlaceholders(t *testing.T) {
	svc := &stubService{details: graph.AuthorDetails{ID: "A9", Label: "Grace Hopper"}}
	rec := doRequest(t, testRouter(t, svc), "/api/author?author_id=A9")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody[authorResponse](t, rec)
	if body.Institution != "Unknown institution" {
		t.Errorf("institution = %q, want placeholder", body.Institution)
	}
	if body.WorksCount != "?" {
		t.Errorf("works_count = %q, want placeholder", body.WorksCount)
	}
}

func TestHandleView(t *testing.T) {
	svc := &stubService{graph: testGraph()}
	rec := doRequest(t, testRouter(t, svc), "/api/view?author_id=A1")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody[viewResponse](t, rec)
	if body.ViewID == "" {
		t.Error("view_id is empty")
	}
	if body.Center != "A1" {
		t.Errorf("center = %q, want A1", body.Center)
	}
	if body.NodeCount != 2 || body.EdgeCount != 1 {
		t.Errorf("counts = %d/%d, want 2/1", body.NodeCount, body.EdgeCount)
	}
	if body.Data == nil || len(body.Data.Nodes) != 2 {
		t.Fatalf("payload missing nodes: %+v", body.Data)
	}
	for _, n := range body.Data.Nodes {
		if n.ID == "A1" && n.Size != view.HighlightNodeSize {
			t.Errorf("center node size = %v, want %v", n.Size, view.HighlightNodeSize)
		}
		if n.ID == "A2" && n.Size != view.BaseNodeSize {
			t.Errorf("base node size = %v, want %v", n.Size, view.BaseNodeSize)
		}
	}
}

func TestHandleViewWithPath(t *testing.T) {
	svc := &stubService{
		graph: testGraph(),
		path:  &service.PathResult{Path: []string{"A1", "A2"}},
	}
	rec := doRequest(t, testRouter(t, svc), "/api/view?author_id=A1&path_a=A1&path_b=A2")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody[viewResponse](t, rec)
	if len(body.Path) != 2 {
		t.Fatalf("path = %v, want [A1 A2]", body.Path)
	}
	var edgeWidth float64
	for _, e := range body.Data.Edges {
		edgeWidth = e.Width
	}
	if edgeWidth != view.HighlightEdgeWidth {
		t.Errorf("path edge width = %v, want %v", edgeWidth, view.HighlightEdgeWidth)
	}
	for _, n := range body.Data.Nodes {
		if n.Color != view.HighlightNodeColor {
			t.Errorf("node %s color = %q, want highlight", n.ID, n.Color)
		}
	}
}

func TestHandleViewNoPathFound(t *testing.T) {
	svc := &stubService{
		graph: testGraph(),
		path:  &service.PathResult{Path: nil, Truncated: false},
	}
	rec := doRequest(t, testRouter(t, svc), "/api/view?author_id=A1&path_a=A1&path_b=A9")

	body := decodeBody[viewResponse](t, rec)
	if body.Message != "No path found." {
		t.Errorf("message = %q, want %q", body.Message, "No path found.")
	}
	for _, n := range body.Data.Nodes {
		if n.ID == "A2" && n.Color != view.BaseNodeColor {
			t.Errorf("non-center node should keep base color, got %q", n.Color)
		}
	}
}

func TestHandleIndex(t *testing.T) {
	rec := doRequest(t, testRouter(t, &stubService{}), "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}
	for _, want := range []string{"vis-network", "/api/view", "/api/search_authors"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("index page missing %q", want)
		}
	}
}

func TestHealthz(t *testing.T) {
	rec := doRequest(t, testRouter(t, &stubService{}), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
