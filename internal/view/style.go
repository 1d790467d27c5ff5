// Package view holds the interactive view state for a loaded co-authorship
// graph: the current snapshot, its visual styling, and path highlighting.
package view

import "math"

// Visual constants for the rendered graph.
const (
	BaseNodeColor      = "#4dabf7"
	HighlightNodeColor = "#e8590c"
	BaseEdgeColor      = "#adb5bd"
	HighlightEdgeColor = "#e8590c"

	BaseNodeSize      = 12.0
	HighlightNodeSize = 20.0

	HighlightEdgeWidth = 4.0
	MaxEdgeWidth       = 6.0
)

// EdgeWidth maps a co-authorship weight onto a stroke width. The encoding
// is monotonic and saturates at MaxEdgeWidth so heavy edges don't dominate
// the layout. Non-positive weights render at width 1.
func EdgeWidth(weight float64) float64 {
	if weight <= 0 {
		return 1
	}
	return math.Min(MaxEdgeWidth, 1+math.Log(1+weight))
}
