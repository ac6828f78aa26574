package vizgraph

import (
	"math"
)

// Bounds is the tight bounding box of all node rectangles.
// It is derived from node positions, never stored on the graph.
type Bounds struct {
	MinX   float64 `json:"minX"`
	MinY   float64 `json:"minY"`
	MaxX   float64 `json:"maxX"`
	MaxY   float64 `json:"maxY"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func BoundingBox(g *Graph) Bounds {
	if len(g.Nodes) == 0 {
		return Bounds{}
	}
	minX := math.Inf(1)
	minY := math.Inf(1)
	maxX := math.Inf(-1)
	maxY := math.Inf(-1)
	for _, n := range g.Nodes {
		tl := n.Box.TopLeft
		minX = math.Min(minX, tl.X)
		minY = math.Min(minY, tl.Y)
		maxX = math.Max(maxX, tl.X+n.Box.Width)
		maxY = math.Max(maxY, tl.Y+n.Box.Height)
	}
	return Bounds{
		MinX:   minX,
		MinY:   minY,
		MaxX:   maxX,
		MaxY:   maxY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}
