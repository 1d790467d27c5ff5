package view

import (
	"fmt"

	"github.com/conetlab/conet/internal/graph"
)

// NodeState is a node plus its current visual attributes. The visual fields
// are derived from the node's structural role and the active highlight; they
// are recomputed on every reset.
type NodeState struct {
	graph.Node
	Color string
	Size  float64
}

// EdgeState is an edge plus its current visual attributes. Identity is the
// ordered (source, target) pair, but path matching treats edges as
// undirected.
type EdgeState struct {
	graph.Edge
	ID    string
	Color string
	Width float64
}

// Snapshot is the set of nodes and edges currently loaded, keyed by node ID
// and edge ID. A snapshot is replaced wholesale on every load; highlighting
// mutates visual attributes only, never membership.
type Snapshot struct {
	nodes    map[string]*NodeState
	edges    map[string]*EdgeState
	nodeIDs  []string // insertion order, for deterministic rendering
	edgeIDs  []string
	centerID string
}

// EdgeID returns the identity of an edge with the given ordered endpoints.
func EdgeID(source, target string) string {
	return source + "->" + target
}

// NewSnapshot builds a styled snapshot from a graph. It enforces the
// structural invariants: every edge endpoint must exist in the node set and
// exactly one node must be the center.
func NewSnapshot(g *graph.Graph) (*Snapshot, error) {
	if g == nil {
		return nil, fmt.Errorf("nil graph")
	}

	s := &Snapshot{
		nodes:   make(map[string]*NodeState, len(g.Nodes)),
		edges:   make(map[string]*EdgeState, len(g.Edges)),
		nodeIDs: make([]string, 0, len(g.Nodes)),
		edgeIDs: make([]string, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		if _, dup := s.nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %s", n.ID)
		}
		if n.IsCenter {
			if s.centerID != "" {
				return nil, fmt.Errorf("multiple center nodes: %s and %s", s.centerID, n.ID)
			}
			s.centerID = n.ID
		}
		s.nodes[n.ID] = &NodeState{Node: n}
		s.nodeIDs = append(s.nodeIDs, n.ID)
	}

	for _, e := range g.Edges {
		if _, ok := s.nodes[e.Source]; !ok {
			return nil, fmt.Errorf("edge %s-%s references unknown node %s", e.Source, e.Target, e.Source)
		}
		if _, ok := s.nodes[e.Target]; !ok {
			return nil, fmt.Errorf("edge %s-%s references unknown node %s", e.Source, e.Target, e.Target)
		}
		id := EdgeID(e.Source, e.Target)
		if _, dup := s.edges[id]; dup {
			return nil, fmt.Errorf("duplicate edge %s", id)
		}
		s.edges[id] = &EdgeState{Edge: e, ID: id}
		s.edgeIDs = append(s.edgeIDs, id)
	}

	s.Reset()
	return s, nil
}

// Reset recomputes every derived visual attribute: the center node gets the
// highlight color and size, all other nodes the base style, and every edge
// the base color with its weight-derived width.
func (s *Snapshot) Reset() {
	for _, n := range s.nodes {
		if n.IsCenter {
			n.Color = HighlightNodeColor
			n.Size = HighlightNodeSize
		} else {
			n.Color = BaseNodeColor
			n.Size = BaseNodeSize
		}
	}
	for _, e := range s.edges {
		e.Color = BaseEdgeColor
		e.Width = EdgeWidth(e.Weight)
	}
}

// Node returns the state for a node ID, or nil if absent.
func (s *Snapshot) Node(id string) *NodeState {
	return s.nodes[id]
}

// FindEdge locates the edge between two endpoints, matching either
// direction. Returns nil when no such edge is loaded.
func (s *Snapshot) FindEdge(a, b string) *EdgeState {
	if e, ok := s.edges[EdgeID(a, b)]; ok {
		return e
	}
	if e, ok := s.edges[EdgeID(b, a)]; ok {
		return e
	}
	return nil
}

// CenterID returns the ID of the center node, or "" for an empty snapshot.
func (s *Snapshot) CenterID() string {
	return s.centerID
}

// NodeCount returns the number of loaded nodes.
func (s *Snapshot) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of loaded edges.
func (s *Snapshot) EdgeCount() int { return len(s.edges) }

// Nodes returns the node states in insertion order.
func (s *Snapshot) Nodes() []*NodeState {
	out := make([]*NodeState, 0, len(s.nodeIDs))
	for _, id := range s.nodeIDs {
		out = append(out, s.nodes[id])
	}
	return out
}

// Edges returns the edge states in insertion order.
func (s *Snapshot) Edges() []*EdgeState {
	out := make([]*EdgeState, 0, len(s.edgeIDs))
	for _, id := range s.edgeIDs {
		out = append(out, s.edges[id])
	}
	return out
}

// HighlightPath applies a path highlight: a full reset of every node and
// edge to base style, then the highlight style for each path node and for
// the edge of each consecutive pair. Node IDs absent from the snapshot and
// pairs with no loaded edge are skipped silently, so a path computed against
// a different graph degrades instead of failing. A path of length 0 or 1
// produces only the reset.
func (s *Snapshot) HighlightPath(path []string) {
	s.Reset()

	for _, id := range path {
		if n := s.nodes[id]; n != nil {
			n.Color = HighlightNodeColor
			n.Size = HighlightNodeSize
		}
	}

	for i := 0; i+1 < len(path); i++ {
		if e := s.FindEdge(path[i], path[i+1]); e != nil {
			e.Color = HighlightEdgeColor
			e.Width = HighlightEdgeWidth
		}
	}
}
