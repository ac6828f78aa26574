// Package viztimeline re-spaces nodes evenly along the horizontal axis, for
// diagrams whose semantics are a temporal sequence.
package viztimeline

import (
	"context"
	"sort"

	"github.com/nobu007/speech-to-visuals-sub001/vizgraph"
)

// Layout sorts nodes by their current main-axis coordinate, which the
// layered pass made a proxy for temporal order, then places their centers at
// even intervals across the canvas width, vertically centered.
func Layout(ctx context.Context, g *vizgraph.Graph, config vizgraph.LayoutConfig) error {
	if len(g.Nodes) == 0 {
		return nil
	}

	nodes := make([]*vizgraph.Node, len(g.Nodes))
	copy(nodes, g.Nodes)
	sort.SliceStable(nodes, func(i, j int) bool {
		ci, cj := nodes[i].Center(), nodes[j].Center()
		if config.RankDirection == vizgraph.RankLeftToRight {
			return ci.X < cj.X
		}
		return ci.Y < cj.Y
	})

	centerY := config.CanvasHeight / 2
	if len(nodes) == 1 {
		nodes[0].MoveTo(config.CanvasWidth/2-nodes[0].Box.Width/2, centerY-nodes[0].Box.Height/2)
	} else {
		interval := Interval(config, len(nodes))
		for i, n := range nodes {
			cx := config.MarginX + float64(i)*interval
			n.MoveTo(cx-n.Box.Width/2, centerY-n.Box.Height/2)
		}
	}

	for _, e := range g.Edges {
		e.RouteStraight()
	}
	return nil
}

// Interval is the constant center-to-center gap for n nodes on a canvas.
func Interval(config vizgraph.LayoutConfig, n int) float64 {
	return (config.CanvasWidth - 2*config.MarginX) / float64(n-1)
}
