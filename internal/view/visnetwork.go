package view

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// VisNode is a node in the vis-network data model.
type VisNode struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Title string  `json:"title,omitempty"` // hover tooltip
	Color string  `json:"color"`
	Size  float64 `json:"size"`
	Shape string  `json:"shape"`
}

// VisEdge is an edge in the vis-network data model.
type VisEdge struct {
	ID    string  `json:"id"`
	From  string  `json:"from"`
	To    string  `json:"to"`
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// VisPayload is the complete widget data model for one rendered snapshot.
type VisPayload struct {
	Nodes []VisNode `json:"nodes"`
	Edges []VisEdge `json:"edges"`
}

// VisPayload maps the snapshot's current state, styling included, onto the
// vis-network widget's data model.
func (s *Snapshot) VisPayload() *VisPayload {
	p := &VisPayload{
		Nodes: make([]VisNode, 0, s.NodeCount()),
		Edges: make([]VisEdge, 0, s.EdgeCount()),
	}

	for _, n := range s.Nodes() {
		p.Nodes = append(p.Nodes, VisNode{
			ID:    n.ID,
			Label: n.Label,
			Title: nodeTooltip(n),
			Color: n.Color,
			Size:  n.Size,
			Shape: "dot",
		})
	}

	for _, e := range s.Edges() {
		p.Edges = append(p.Edges, VisEdge{
			ID:    e.ID,
			From:  e.Source,
			To:    e.Target,
			Color: e.Color,
			Width: e.Width,
		})
	}

	return p
}

// MarshalJSONString renders the payload as a JSON string for embedding.
func (p *VisPayload) MarshalJSONString() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshaling vis-network payload: %w", err)
	}
	return string(b), nil
}

// nodeTooltip builds the hover text shown for a node, with placeholder text
// for missing optional fields.
func nodeTooltip(n *NodeState) string {
	var sb strings.Builder
	sb.WriteString(n.Label)
	sb.WriteString("\n")
	sb.WriteString(InstitutionOrPlaceholder(n.Institution))
	sb.WriteString("\nWorks: ")
	sb.WriteString(WorksCountOrPlaceholder(n.WorksCount))
	return sb.String()
}

// InstitutionOrPlaceholder returns the institution name or the standard
// placeholder for authors with no known institution.
func InstitutionOrPlaceholder(inst string) string {
	if inst == "" {
		return "Unknown institution"
	}
	return inst
}

// WorksCountOrPlaceholder formats a works count, with "?" when unknown.
func WorksCountOrPlaceholder(count int) string {
	if count <= 0 {
		return "?"
	}
	return strconv.Itoa(count)
}
