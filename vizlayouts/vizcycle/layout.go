// Package vizcycle arranges nodes on a ring, for diagrams whose semantics
// are a repeating loop.
package vizcycle

import (
	"context"
	"math"

	"github.com/nobu007/speech-to-visuals-sub001/lib/geo"
	"github.com/nobu007/speech-to-visuals-sub001/vizgraph"
)

// RADIUS_FACTOR scales the ring against the smaller canvas dimension.
const RADIUS_FACTOR = 0.3

// Layout places all nodes on a circle centered on the canvas, in the stable
// order established by the layered pass so graph-adjacent nodes tend to sit
// next to each other on the ring. Edges become straight chords.
func Layout(ctx context.Context, g *vizgraph.Graph, config vizgraph.LayoutConfig) error {
	nodes := g.OrderedNodes()
	if len(nodes) == 0 {
		return nil
	}

	radius := Radius(config)
	center := geo.NewPoint(config.CanvasWidth/2, config.CanvasHeight/2)

	// start from the top of the ring
	angleOffset := -math.Pi / 2
	n := float64(len(nodes))
	for i, node := range nodes {
		angle := angleOffset + 2*math.Pi*float64(i)/n
		x := center.X + radius*math.Cos(angle)
		y := center.Y + radius*math.Sin(angle)
		node.MoveTo(x-node.Box.Width/2, y-node.Box.Height/2)
	}

	for _, e := range g.Edges {
		routeChord(e)
	}
	return nil
}

// Radius is the configured ring radius for a canvas.
func Radius(config vizgraph.LayoutConfig) float64 {
	return math.Min(config.CanvasWidth, config.CanvasHeight) * RADIUS_FACTOR
}

// routeChord connects two ring positions with a straight segment, clipped
// at each node's rectangle border.
func routeChord(e *vizgraph.Edge) {
	if e.Src == e.Dst {
		e.RouteStraight()
		return
	}
	srcCenter := e.Src.Center()
	dstCenter := e.Dst.Center()

	start := clipAtBorder(e.Src.Box, srcCenter, dstCenter)
	end := clipAtBorder(e.Dst.Box, dstCenter, srcCenter)
	e.Route = []*geo.Point{start, end}
}

// clipAtBorder walks the segment from inside the box toward outside and
// returns the border crossing, or inside if the segment never leaves.
func clipAtBorder(box *geo.Box, inside, outside *geo.Point) *geo.Point {
	intersections := box.Intersections(*geo.NewSegment(inside, outside))
	if len(intersections) == 0 {
		return inside
	}
	best := intersections[0]
	for _, p := range intersections[1:] {
		if p.DistanceTo(outside) < best.DistanceTo(outside) {
			best = p
		}
	}
	return best
}
