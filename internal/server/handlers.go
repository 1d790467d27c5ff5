package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/conetlab/conet/internal/graph"
	"github.com/conetlab/conet/internal/openalex"
	"github.com/conetlab/conet/internal/service"
	"github.com/conetlab/conet/internal/view"
)

// GraphService is the surface of the service layer the handlers exercise.
type GraphService interface {
	SearchAuthors(ctx context.Context, query string, limit int) ([]service.AuthorResult, error)
	Graph(ctx context.Context, authorID string, depth, maxNodes int) (*graph.Graph, error)
	ShortestPath(ctx context.Context, authorA, authorB string) (*service.PathResult, error)
	Author(ctx context.Context, authorID string) (graph.AuthorDetails, error)
}

// APIHandlers collects the HTTP handlers and their dependencies.
type APIHandlers struct {
	logger *slog.Logger
	svc    GraphService
}

// NewAPIHandlers constructs the handler set.
func NewAPIHandlers(logger *slog.Logger, svc GraphService) *APIHandlers {
	return &APIHandlers{logger: logger, svc: svc}
}

type searchResponse struct {
	Results []service.AuthorResult `json:"results"`
}

func (h *APIHandlers) handleSearchAuthors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	results, err := h.svc.SearchAuthors(r.Context(), query, openalex.DefaultAuthorSearchLimit)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if results == nil {
		results = []service.AuthorResult{}
	}
	respondJSON(w, http.StatusOK, searchResponse{Results: results})
}

func (h *APIHandlers) handleGraph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	authorID := q.Get("author_id")
	depth := intParam(q.Get("depth"), graph.DefaultDepth)
	maxNodes := intParam(q.Get("max_nodes"), graph.DefaultMaxNodes)

	g, err := h.svc.Graph(r.Context(), authorID, depth, maxNodes)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, g)
}

func (h *APIHandlers) handleShortestPath(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	res, err := h.svc.ShortestPath(r.Context(), q.Get("author_a"), q.Get("author_b"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

type authorResponse struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Institution string `json:"institution"`
	WorksCount  string `json:"works_count"`
	URL         string `json:"url,omitempty"`
}

func (h *APIHandlers) handleAuthor(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Author(r.Context(), r.URL.Query().Get("author_id"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, authorResponse{
		ID:          d.ID,
		Label:       d.Label,
		Institution: view.InstitutionOrPlaceholder(d.Institution),
		WorksCount:  view.WorksCountOrPlaceholder(d.WorksCount),
		URL:         d.URL,
	})
}

// viewResponse bundles everything the viewer page needs for one render:
// the styled widget payload plus path metadata and a status message.
type viewResponse struct {
	ViewID    string           `json:"view_id"`
	Center    string           `json:"center"`
	NodeCount int              `json:"node_count"`
	EdgeCount int              `json:"edge_count"`
	Path      []string         `json:"path,omitempty"`
	Message   string           `json:"message,omitempty"`
	Data      *view.VisPayload `json:"data"`
}

// handleView builds a graph, loads it into a view session, optionally
// highlights the shortest path between two authors, and returns the styled
// widget payload. All view-state logic runs server-side; the page script
// only hands the payload to the widget.
func (h *APIHandlers) handleView(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	authorID := q.Get("author_id")
	depth := intParam(q.Get("depth"), graph.DefaultDepth)
	maxNodes := intParam(q.Get("max_nodes"), graph.DefaultMaxNodes)
	pathA := q.Get("path_a")
	pathB := q.Get("path_b")

	g, err := h.svc.Graph(r.Context(), authorID, depth, maxNodes)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	snap, err := view.NewSnapshot(g)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sess := view.NewSession()
	if err := sess.Load(sess.Begin(view.ActionLoad), snap); err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer sess.Dispose()

	resp := viewResponse{
		ViewID:    sess.ID(),
		Center:    snap.CenterID(),
		NodeCount: snap.NodeCount(),
		EdgeCount: snap.EdgeCount(),
	}

	if pathA != "" && pathB != "" {
		res, err := h.svc.ShortestPath(r.Context(), pathA, pathB)
		if err != nil {
			h.respondServiceError(w, err)
			return
		}
		if len(res.Path) == 0 {
			resp.Message = "No path found."
		} else if err := sess.HighlightPath(sess.Begin(view.ActionPath), res.Path); err != nil {
			h.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Path = res.Path
	}

	resp.Data = snap.VisPayload()
	respondJSON(w, http.StatusOK, resp)
}

// respondServiceError maps service and upstream errors onto HTTP statuses.
func (h *APIHandlers) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyQuery):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case openalex.IsNotFound(err):
		h.respondError(w, http.StatusNotFound, err.Error())
	case openalex.IsRateLimited(err):
		h.respondError(w, http.StatusTooManyRequests, err.Error())
	default:
		h.logger.Error("request failed", "error", err)
		h.respondError(w, http.StatusBadGateway, "upstream request failed")
	}
}

func (h *APIHandlers) respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// intParam parses an integer query parameter, falling back on absence or
// garbage. Range clamping happens downstream.
func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
