package vizgraph

import (
	"math"

	"github.com/nobu007/speech-to-visuals-sub001/lib/geo"
)

// AttachPoint returns the midpoint of the side of box that faces toward.
// The side is picked from the dominant axis of the center-to-target vector so
// routes leave rectangles perpendicular to their border.
func AttachPoint(box *geo.Box, toward *geo.Point) *geo.Point {
	center := box.Center()
	dx := toward.X - center.X
	dy := toward.Y - center.Y

	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			return geo.NewPoint(box.TopLeft.X+box.Width, center.Y)
		}
		return geo.NewPoint(box.TopLeft.X, center.Y)
	}
	if dy >= 0 {
		return geo.NewPoint(center.X, box.TopLeft.Y+box.Height)
	}
	return geo.NewPoint(center.X, box.TopLeft.Y)
}

// RouteStraight connects src and dst border midpoints with a single segment.
func (e *Edge) RouteStraight() {
	e.Route = []*geo.Point{
		AttachPoint(e.Src.Box, e.Dst.Center()),
		AttachPoint(e.Dst.Box, e.Src.Center()),
	}
}

// RouteWithBends threads the edge through the given intermediate points.
func (e *Edge) RouteWithBends(bends []*geo.Point) {
	if len(bends) == 0 {
		e.RouteStraight()
		return
	}
	route := make([]*geo.Point, 0, len(bends)+2)
	route = append(route, AttachPoint(e.Src.Box, bends[0]))
	route = append(route, bends...)
	route = append(route, AttachPoint(e.Dst.Box, bends[len(bends)-1]))
	e.Route = route
}

// Reattach recomputes the endpoints of an existing route after its nodes
// moved, preserving any interior bend points.
func (e *Edge) Reattach() {
	if len(e.Route) <= 2 {
		e.RouteStraight()
		return
	}
	bends := e.Route[1 : len(e.Route)-1]
	e.RouteWithBends(bends)
}

// ReattachEdges re-routes every edge of the graph in place.
func ReattachEdges(g *Graph) {
	for _, e := range g.Edges {
		e.Reattach()
	}
}
