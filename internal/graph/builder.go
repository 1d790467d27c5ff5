package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/conetlab/conet/internal/openalex"
)

const (
	// Depth bounds for graph expansion.
	MinDepth     = 1
	MaxDepth     = 3
	DefaultDepth = 1

	// Node count bounds for a single graph.
	MinNodes        = 20
	MaxNodes        = 1200
	DefaultMaxNodes = 300
)

// ClampDepth forces depth into the supported range.
func ClampDepth(depth int) int {
	if depth < MinDepth {
		return MinDepth
	}
	if depth > MaxDepth {
		return MaxDepth
	}
	return depth
}

// ClampMaxNodes forces the node budget into the supported range.
func ClampMaxNodes(n int) int {
	if n <= 0 {
		return DefaultMaxNodes
	}
	if n < MinNodes {
		return MinNodes
	}
	if n > MaxNodes {
		return MaxNodes
	}
	return n
}

type queueEntry struct {
	id    string
	level int
}

// edgeKey is an unordered endpoint pair.
type edgeKey struct {
	a, b string
}

func newEdgeKey(x, y string) edgeKey {
	if x > y {
		x, y = y, x
	}
	return edgeKey{a: x, b: y}
}

// Build expands a co-authorship graph breadth-first from the given center
// author. Expansion stops at depth hops from the center or when maxNodes
// authors have been collected, whichever comes first. Placeholder nodes
// discovered through authorships are resolved to full details afterwards;
// a resolution failure leaves the placeholder label in place.
func Build(ctx context.Context, src Source, authorID string, depth, maxNodes int) (*Graph, error) {
	root := openalex.NormalizeID(authorID)
	if root == "" {
		return nil, fmt.Errorf("empty author id")
	}
	depth = ClampDepth(depth)
	maxNodes = ClampMaxNodes(maxNodes)

	rootDetails, err := src.AuthorDetails(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("resolving center author %s: %w", root, err)
	}

	nodes := map[string]*Node{
		root: {
			ID:          root,
			Label:       rootDetails.Label,
			Institution: rootDetails.Institution,
			Level:       0,
			IsCenter:    true,
			WorksCount:  rootDetails.WorksCount,
			URL:         rootDetails.URL,
		},
	}
	weights := make(map[edgeKey]float64)
	visited := make(map[string]bool)
	unresolved := make(map[string]bool)
	queue := []queueEntry{{id: root, level: 0}}

	for len(queue) > 0 && len(nodes) < maxNodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := queue[0]
		queue = queue[1:]
		if visited[entry.id] {
			continue
		}
		visited[entry.id] = true

		if entry.level >= depth {
			continue
		}

		works, err := src.WorkAuthorships(ctx, entry.id)
		if err != nil {
			// A single unreadable author shouldn't sink the whole graph.
			continue
		}

		for _, authors := range works {
			for _, coID := range authors {
				if coID == "" || coID == entry.id {
					continue
				}

				if _, known := nodes[coID]; !known {
					if len(nodes) >= maxNodes {
						continue
					}
					nodes[coID] = &Node{
						ID:    coID,
						Label: coID,
						Level: entry.level + 1,
					}
					unresolved[coID] = true
					queue = append(queue, queueEntry{id: coID, level: entry.level + 1})
				}

				weights[newEdgeKey(entry.id, coID)]++
			}
		}
	}

	resolvePlaceholders(ctx, src, nodes, unresolved)

	return assemble(nodes, weights), nil
}

// resolvePlaceholders fetches full details for nodes discovered only through
// authorship lists. Failures keep the bare ID label.
func resolvePlaceholders(ctx context.Context, src Source, nodes map[string]*Node, unresolved map[string]bool) {
	for id := range unresolved {
		if ctx.Err() != nil {
			return
		}
		d, err := src.AuthorDetails(ctx, id)
		if err != nil {
			continue
		}
		n := nodes[id]
		n.Label = d.Label
		n.Institution = d.Institution
		n.WorksCount = d.WorksCount
		n.URL = d.URL
	}
}

// assemble orders the node and edge sets deterministically and drops any
// edge whose endpoint fell outside the node budget.
func assemble(nodes map[string]*Node, weights map[edgeKey]float64) *Graph {
	g := &Graph{
		Nodes: make([]Node, 0, len(nodes)),
		Edges: make([]Edge, 0, len(weights)),
	}

	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		g.Nodes = append(g.Nodes, *nodes[id])
	}

	keys := make([]edgeKey, 0, len(weights))
	for k := range weights {
		if _, ok := nodes[k.a]; !ok {
			continue
		}
		if _, ok := nodes[k.b]; !ok {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})
	for _, k := range keys {
		g.Edges = append(g.Edges, Edge{Source: k.a, Target: k.b, Weight: weights[k]})
	}

	return g
}
