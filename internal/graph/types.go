// Package graph builds co-authorship graphs around an author by walking
// the OpenAlex works feed breadth-first.
package graph

// Node is an author in the co-authorship graph.
type Node struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Institution string `json:"institution,omitempty"`
	Level       int    `json:"level"`
	IsCenter    bool   `json:"is_center,omitempty"`
	WorksCount  int    `json:"works_count,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Edge is an undirected co-authorship link. Weight counts shared works.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// Graph is a snapshot of nodes and edges around a center author.
// Exactly one node has IsCenter set, and every edge references nodes
// present in Nodes.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Path is an ordered chain of author IDs. Empty means no path was found.
type Path struct {
	IDs []string `json:"path"`
}

// AuthorDetails is the resolved metadata for a single author.
type AuthorDetails struct {
	ID          string
	Label       string
	Institution string
	WorksCount  int
	URL         string
}
