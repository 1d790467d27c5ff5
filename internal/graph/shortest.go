package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/conetlab/conet/internal/openalex"
)

// DefaultMaxExpansions bounds how many authors a shortest-path search may
// expand before giving up. Each expansion costs one works request, so an
// unbounded search over a connected co-authorship network would never stop.
const DefaultMaxExpansions = 500

// ErrSearchExhausted is returned when the expansion budget runs out before
// the target author is reached.
var ErrSearchExhausted = errors.New("shortest path search budget exhausted")

// ShortestPath finds the shortest co-author chain between two authors by
// breadth-first search over the live works feed. It returns an empty path
// when the frontier empties without reaching the target, and
// ErrSearchExhausted when the expansion budget runs out first.
func ShortestPath(ctx context.Context, src Source, authorA, authorB string, maxExpansions int) (*Path, error) {
	start := openalex.NormalizeID(authorA)
	target := openalex.NormalizeID(authorB)
	if start == "" || target == "" {
		return nil, fmt.Errorf("empty author id")
	}
	if maxExpansions <= 0 {
		maxExpansions = DefaultMaxExpansions
	}

	if start == target {
		return &Path{IDs: []string{start}}, nil
	}

	parent := map[string]string{start: ""}
	queue := []string{start}
	expansions := 0

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := queue[0]
		queue = queue[1:]

		if current == target {
			return &Path{IDs: reconstruct(parent, current)}, nil
		}

		if expansions >= maxExpansions {
			return nil, ErrSearchExhausted
		}
		expansions++

		works, err := src.WorkAuthorships(ctx, current)
		if err != nil {
			continue
		}

		for _, authors := range works {
			for _, coID := range authors {
				if coID == "" || coID == current {
					continue
				}
				if _, seen := parent[coID]; seen {
					continue
				}
				parent[coID] = current
				if coID == target {
					return &Path{IDs: reconstruct(parent, coID)}, nil
				}
				queue = append(queue, coID)
			}
		}
	}

	return &Path{IDs: []string{}}, nil
}

// reconstruct walks the parent map back to the start and reverses.
func reconstruct(parent map[string]string, end string) []string {
	var path []string
	for cur := end; cur != ""; cur = parent[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
