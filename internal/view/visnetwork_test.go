package view

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestVisPayloadMapping(t *testing.T) {
	s := triangleless(t)
	p := s.VisPayload()

	if len(p.Nodes) != 3 || len(p.Edges) != 2 {
		t.Fatalf("payload size = %d nodes / %d edges", len(p.Nodes), len(p.Edges))
	}

	center := p.Nodes[0]
	if center.ID != "A" {
		t.Fatalf("expected insertion order, first node = %s", center.ID)
	}
	if center.Color != HighlightNodeColor || center.Size != HighlightNodeSize {
		t.Errorf("center style = %s/%v", center.Color, center.Size)
	}
	if center.Shape != "dot" {
		t.Errorf("shape = %q", center.Shape)
	}

	e := p.Edges[0]
	if e.From != "A" || e.To != "B" {
		t.Errorf("edge endpoints = %s -> %s", e.From, e.To)
	}
	if e.Width != EdgeWidth(2) {
		t.Errorf("edge width = %v", e.Width)
	}
}

func TestVisPayloadTooltipPlaceholders(t *testing.T) {
	s := triangleless(t)
	p := s.VisPayload()

	// No institution or works count was set on any node.
	for _, n := range p.Nodes {
		if !strings.Contains(n.Title, "Unknown institution") {
			t.Errorf("tooltip %q missing institution placeholder", n.Title)
		}
		if !strings.Contains(n.Title, "Works: ?") {
			t.Errorf("tooltip %q missing works placeholder", n.Title)
		}
	}
}

func TestVisPayloadJSONRoundTrip(t *testing.T) {
	s := triangleless(t)
	raw, err := s.VisPayload().MarshalJSONString()
	if err != nil {
		t.Fatalf("MarshalJSONString: %v", err)
	}

	var decoded VisPayload
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if len(decoded.Nodes) != 3 {
		t.Errorf("decoded %d nodes", len(decoded.Nodes))
	}
}

func TestGenerateHTML(t *testing.T) {
	s := triangleless(t)
	html, err := GenerateHTML(s, DefaultHTMLOptions())
	if err != nil {
		t.Fatalf("GenerateHTML: %v", err)
	}

	for _, want := range []string{
		"vis-network",
		"stabilizationIterationsDone",
		"physics: { enabled: false }",
		"Babbage",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("generated HTML missing %q", want)
		}
	}
}

func TestGenerateHTMLNilSnapshot(t *testing.T) {
	if _, err := GenerateHTML(nil, DefaultHTMLOptions()); err == nil {
		t.Fatal("expected error for nil snapshot")
	}
}

func TestPlaceholders(t *testing.T) {
	if got := InstitutionOrPlaceholder(""); got != "Unknown institution" {
		t.Errorf("InstitutionOrPlaceholder(\"\") = %q", got)
	}
	if got := InstitutionOrPlaceholder("MIT"); got != "MIT" {
		t.Errorf("InstitutionOrPlaceholder = %q", got)
	}
	if got := WorksCountOrPlaceholder(0); got != "?" {
		t.Errorf("WorksCountOrPlaceholder(0) = %q", got)
	}
	if got := WorksCountOrPlaceholder(42); got != "42" {
		t.Errorf("WorksCountOrPlaceholder(42) = %q", got)
	}
}
